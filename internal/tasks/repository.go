package tasks

import "context"

// Repository persists tasks. ListByOwner returns newest-created-first.
// Ownership rules live in Service, not here.
type Repository interface {
	Insert(ctx context.Context, t Task) error
	Get(ctx context.Context, id string) (Task, error)
	Save(ctx context.Context, t Task) error
	Remove(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID int) ([]Task, error)
}
