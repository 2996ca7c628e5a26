package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcue-backend/internal/tasks"
)

type listerFunc func(ctx context.Context, ownerID int) ([]tasks.Task, error)

func (f listerFunc) List(ctx context.Context, ownerID int) ([]tasks.Task, error) {
	return f(ctx, ownerID)
}

type completerFunc func(ctx context.Context, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func fixedTasks(list []tasks.Task) listerFunc {
	return func(ctx context.Context, ownerID int) ([]tasks.Task, error) {
		return list, nil
	}
}

func TestRecommend_ParsesReply(t *testing.T) {
	list := []tasks.Task{{Title: "Pay bills", Details: "d", Deadline: "2026-09-01"}}
	rec := NewRecommender(fixedTasks(list), completerFunc(func(ctx context.Context, prompt string) (string, error) {
		assert.Contains(t, prompt, "Pay bills")
		return "- Task Name: Pay bills\n- Reason: Due today", nil
	}))

	result, err := rec.Recommend(context.Background(), 1, "short break")
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Pay bills", result.Recommendations[0].Name)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Message)
}

func TestRecommend_ZeroTasksSkipsInference(t *testing.T) {
	called := false
	rec := NewRecommender(fixedTasks(nil), completerFunc(func(ctx context.Context, prompt string) (string, error) {
		called = true
		return "", nil
	}))

	result, err := rec.Recommend(context.Background(), 1, "anything")
	require.NoError(t, err)
	assert.False(t, called)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, "no tasks available", result.Message)
}

func TestRecommend_UnmatchedReplyIsEmptyNotError(t *testing.T) {
	list := []tasks.Task{{Title: "A"}}
	rec := NewRecommender(fixedTasks(list), completerFunc(func(ctx context.Context, prompt string) (string, error) {
		return "Nothing fits your context right now.", nil
	}))

	result, err := rec.Recommend(context.Background(), 1, "ctx")
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 1, result.Skipped)
}

func TestRecommend_CancelAndReplace(t *testing.T) {
	list := []tasks.Task{{Title: "A"}}

	firstStarted := make(chan struct{})
	rec := NewRecommender(fixedTasks(list), completerFunc(func(ctx context.Context, prompt string) (string, error) {
		select {
		case <-firstStarted:
			// second call: return immediately
			return "- Task Name: A\n- Reason: r", nil
		default:
		}
		close(firstStarted)
		select {
		case <-ctx.Done():
			return "", &InferenceError{Msg: "cancelled", Err: ctx.Err()}
		case <-time.After(5 * time.Second):
			return "", &InferenceError{Msg: "first call was never cancelled"}
		}
	}))

	firstDone := make(chan error, 1)
	go func() {
		_, err := rec.Recommend(context.Background(), 1, "first")
		firstDone <- err
	}()

	<-firstStarted

	result, err := rec.Recommend(context.Background(), 1, "second")
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)

	firstErr := <-firstDone
	var infErr *InferenceError
	require.ErrorAs(t, firstErr, &infErr)
	assert.Contains(t, infErr.Error(), "cancelled")
}

func TestRecommend_IndependentUsersDoNotCancelEachOther(t *testing.T) {
	list := []tasks.Task{{Title: "A"}}
	rec := NewRecommender(fixedTasks(list), completerFunc(func(ctx context.Context, prompt string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", &InferenceError{Msg: "unexpected cancel", Err: err}
		}
		return "- Task Name: A\n- Reason: r", nil
	}))

	_, err1 := rec.Recommend(context.Background(), 1, "ctx")
	_, err2 := rec.Recommend(context.Background(), 2, "ctx")
	assert.NoError(t, err1)
	assert.NoError(t, err2)
}
