package db

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	details TEXT NOT NULL,
	deadline DATE NOT NULL,
	complexity TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	duration_hours INTEGER NOT NULL DEFAULT 0,
	duration_days INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS tasks_user_created_idx
	ON tasks (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS analytics_events (
	id BIGSERIAL PRIMARY KEY,
	event_name TEXT NOT NULL,
	event_time TIMESTAMPTZ NOT NULL,
	user_id INTEGER NOT NULL,
	session_id TEXT,
	platform TEXT,
	app_version TEXT,
	device_locale TEXT,
	source_event_key TEXT UNIQUE,
	properties JSONB
);
`

// EnsureSchema creates the tables on startup. Idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
