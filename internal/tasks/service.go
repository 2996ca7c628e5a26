package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service enforces validation and ownership on top of a Repository and
// invalidates the live feed after every successful mutation.
type Service struct {
	repo Repository
	hub  *Hub
	now  func() time.Time
}

func NewService(repo Repository, hub *Hub) *Service {
	return &Service{
		repo: repo,
		hub:  hub,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerID int, in Input) (Task, error) {
	if err := validate(in); err != nil {
		return Task{}, err
	}

	now := s.now().UTC()
	t := Task{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Title:      in.Title,
		Details:    in.Details,
		Deadline:   in.Deadline,
		Complexity: in.Complexity,
		Duration:   in.Duration,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		return Task{}, err
	}

	s.invalidate(ctx, ownerID)
	return t, nil
}

func (s *Service) Update(ctx context.Context, ownerID int, id string, in Input) (Task, error) {
	cur, err := s.repo.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if cur.OwnerID != ownerID {
		return Task{}, ErrNotOwner
	}
	if err := validate(in); err != nil {
		return Task{}, err
	}

	next := cur
	next.Title = in.Title
	next.Details = in.Details
	next.Deadline = in.Deadline
	next.Complexity = in.Complexity
	next.Duration = in.Duration
	next.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, next); err != nil {
		return Task{}, err
	}

	s.invalidate(ctx, ownerID)
	return next, nil
}

func (s *Service) Delete(ctx context.Context, ownerID int, id string) error {
	cur, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if cur.OwnerID != ownerID {
		return ErrNotOwner
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, ownerID)
	return nil
}

func (s *Service) List(ctx context.Context, ownerID int) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) invalidate(ctx context.Context, ownerID int) {
	if s.hub != nil {
		s.hub.Invalidate(ctx, ownerID)
	}
}
