package ai

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"smartcue-backend/internal/analytics"
	"smartcue-backend/internal/auth"
)

// RecommendHandler runs one recommendation cycle for the signed-in user.
// A failed cycle returns 502 and must not disturb whatever result the
// client is showing; the handler itself holds no state between requests.
func RecommendHandler(rec *Recommender, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Context string `json:"context"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		result, err := rec.Recommend(r.Context(), uid, body.Context)
		if err != nil {
			var infErr *InferenceError
			if errors.As(err, &infErr) {
				log.Printf("[WARN] recommendation failed user=%d: %v", uid, infErr)
				http.Error(w, "recommendation failed", http.StatusBadGateway)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		_ = analytics.Log(r.Context(), dbx, env, "recommendation_requested", map[string]any{
			"context_len": len(body.Context),
			"recommended": len(result.Recommendations),
			"skipped":     result.Skipped,
			"no_tasks":    result.Message != "",
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}
