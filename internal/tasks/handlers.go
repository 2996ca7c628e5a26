package tasks

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"smartcue-backend/internal/analytics"
	"smartcue-backend/internal/auth"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeTaskError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotOwner):
		http.Error(w, "task belongs to another user", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	default:
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
	}
}

func ListTasksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := svc.List(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []Task{}
		}
		writeJSON(w, list)
	}
}

func CreateTaskHandler(svc *Service, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), uid, in)
		if err != nil {
			writeTaskError(w, err)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		_ = analytics.Log(r.Context(), dbx, env, "task_created", map[string]any{
			"task_id":      t.ID,
			"title_len":    len(t.Title),
			"details_len":  len(t.Details),
			"complexity":   t.Complexity,
			"has_deadline": t.Deadline != "",
		}, analytics.SourceEventKeyFromRequest(r))

		writeJSON(w, t)
	}
}

func UpdateTaskHandler(svc *Service, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID string `json:"task_id"`
			Input
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.TaskID == "" {
			http.Error(w, "task_id required", http.StatusBadRequest)
			return
		}

		t, err := svc.Update(r.Context(), uid, body.TaskID, body.Input)
		if err != nil {
			writeTaskError(w, err)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		_ = analytics.Log(r.Context(), dbx, env, "task_updated", map[string]any{
			"task_id":     t.ID,
			"title_len":   len(t.Title),
			"details_len": len(t.Details),
		}, analytics.SourceEventKeyFromRequest(r))

		writeJSON(w, t)
	}
}

func DeleteTaskHandler(svc *Service, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			var body struct {
				TaskID string `json:"task_id"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			id = body.TaskID
		}
		if id == "" {
			http.Error(w, "task_id required", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), uid, id); err != nil {
			if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNotOwner) {
				log.Printf("[WARN] delete failed task_id=%s: %v", id, err)
			}
			writeTaskError(w, err)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		_ = analytics.Log(r.Context(), dbx, env, "task_deleted", map[string]any{
			"task_id": id,
		}, analytics.SourceEventKeyFromRequest(r))

		writeJSON(w, map[string]any{"ok": true})
	}
}
