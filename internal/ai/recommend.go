package ai

import (
	"context"
	"sync"

	"smartcue-backend/internal/tasks"
)

// TaskLister supplies the current task list for a user.
type TaskLister interface {
	List(ctx context.Context, ownerID int) ([]tasks.Task, error)
}

// Completer is the inference round trip.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is one recommendation cycle's outcome. An empty Recommendations
// slice with a zero Skipped count means the model matched no blocks; that
// is distinct from a request failure, which surfaces as an error.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Skipped         int              `json:"skipped"`
	Message         string           `json:"message,omitempty"`
}

// Recommender runs recommendation cycles. At most one cycle per user is
// in flight: a new submission cancels the previous one (cancel-and-replace).
type Recommender struct {
	tasks  TaskLister
	client Completer

	mu       sync.Mutex
	inflight map[int]*call
}

type call struct {
	cancel context.CancelFunc
}

func NewRecommender(lister TaskLister, client Completer) *Recommender {
	return &Recommender{
		tasks:    lister,
		client:   client,
		inflight: make(map[int]*call),
	}
}

func (r *Recommender) Recommend(ctx context.Context, ownerID int, contextText string) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := &call{cancel: cancel}
	r.mu.Lock()
	if prev := r.inflight[ownerID]; prev != nil {
		prev.cancel()
	}
	r.inflight[ownerID] = c
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.inflight[ownerID] == c {
			delete(r.inflight, ownerID)
		}
		r.mu.Unlock()
	}()

	list, err := r.tasks.List(ctx, ownerID)
	if err != nil {
		return Result{}, err
	}
	if len(list) == 0 {
		return Result{
			Recommendations: []Recommendation{},
			Message:         "no tasks available",
		}, nil
	}

	raw, err := r.client.Complete(ctx, BuildPrompt(list, contextText))
	if err != nil {
		return Result{}, err
	}

	recs, skipped := ParseRecommendations(raw)
	if recs == nil {
		recs = []Recommendation{}
	}
	return Result{Recommendations: recs, Skipped: skipped}, nil
}
