package tasks

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// FeedChannel is the NOTIFY channel carrying owner ids of changed task
// lists. Other processes LISTEN on it to refresh their feed hubs.
const FeedChannel = "smartcue_tasks"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, t Task) error {
	const q = `
		INSERT INTO tasks (
			id, user_id, title, details, deadline, complexity,
			duration_minutes, duration_hours, duration_days,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.OwnerID, t.Title, t.Details, t.Deadline, t.Complexity,
		t.Duration.Minutes, t.Duration.Hours, t.Duration.Days,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	r.notify(ctx, t.OwnerID)
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Task, error) {
	const q = `
		SELECT id, user_id, title, details, deadline, complexity,
		       duration_minutes, duration_hours, duration_days,
		       created_at, updated_at
		FROM tasks
		WHERE id = $1
	`
	t, err := scanTask(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	return t, err
}

func (r *PostgresRepository) Save(ctx context.Context, t Task) error {
	const q = `
		UPDATE tasks
		SET title=$1, details=$2, deadline=$3, complexity=$4,
		    duration_minutes=$5, duration_hours=$6, duration_days=$7,
		    updated_at=$8
		WHERE id=$9
	`
	res, err := r.db.ExecContext(ctx, q,
		t.Title, t.Details, t.Deadline, t.Complexity,
		t.Duration.Minutes, t.Duration.Hours, t.Duration.Days,
		t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	r.notify(ctx, t.OwnerID)
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, id string) error {
	var ownerID int
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM tasks WHERE id=$1 RETURNING user_id
	`, id).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	r.notify(ctx, ownerID)
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int) ([]Task, error) {
	const q = `
		SELECT id, user_id, title, details, deadline, complexity,
		       duration_minutes, duration_hours, duration_days,
		       created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// notify wakes feed hubs in every process, including this one. Failures
// are ignored: the write already succeeded and the local hub is poked by
// the service anyway.
func (r *PostgresRepository) notify(ctx context.Context, ownerID int) {
	_, _ = r.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", FeedChannel, strconv.Itoa(ownerID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var deadline time.Time
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Details, &deadline, &t.Complexity,
		&t.Duration.Minutes, &t.Duration.Hours, &t.Duration.Days,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return Task{}, err
	}
	t.Deadline = deadline.Format(time.DateOnly)
	return t, nil
}
