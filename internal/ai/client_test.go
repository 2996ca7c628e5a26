package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New("test-key", "test-model")
	c.BaseURL = srv.URL
	return c
}

func TestClientComplete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "- Task Name: A\n- Reason: b"}},
			},
		})
	})

	out, err := c.Complete(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "- Task Name: A\n- Reason: b", out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
}

func TestClientComplete_HTTPErrorIsInferenceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := c.Complete(context.Background(), "p")
	require.Error(t, err)

	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.Contains(t, infErr.Error(), "429")
}

func TestClientComplete_EmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := c.Complete(context.Background(), "p")
	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
}

func TestClientComplete_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Complete(ctx, "p")
	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.True(t, errors.Is(err, context.Canceled))
}
