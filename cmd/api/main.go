package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/lib/pq"
	"github.com/rs/cors"

	"smartcue-backend/internal/ai"
	"smartcue-backend/internal/auth"
	"smartcue-backend/internal/config"
	"smartcue-backend/internal/db"
	"smartcue-backend/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Config error:", err)
	}

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Failed to connect DB:", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(context.Background(), database); err != nil {
		log.Fatal("❌ Schema error:", err)
	}

	log.Println("✅ Connected to PostgreSQL!")

	// ----- TASK STORE + LIVE FEED -----

	repo := tasks.NewPostgresRepository(database)
	hub := tasks.NewHub(repo.ListByOwner)
	svc := tasks.NewService(repo, hub)

	listener := pq.NewListener(cfg.ConnString(), 2*time.Second, time.Minute, nil)
	if err := listener.Listen(tasks.FeedChannel); err != nil {
		log.Fatal("❌ LISTEN failed:", err)
	}
	feedEvents := make(chan string, 16)
	go func() {
		for n := range listener.Notify {
			if n != nil {
				feedEvents <- n.Extra
			}
		}
	}()
	go hub.Run(context.Background(), feedEvents)

	// ----- RECOMMENDATIONS -----

	aiClient := ai.New(cfg.OpenAIKey, cfg.OpenAIModel)
	if cfg.OpenAIBaseURL != "" {
		aiClient.BaseURL = cfg.OpenAIBaseURL
	}
	recommender := ai.NewRecommender(svc, aiClient)

	// ----- ROUTES -----

	secret := []byte(cfg.JWTSecret)
	mw := auth.New(secret)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/auth/register", auth.RegisterHandler(database, secret))
	mux.HandleFunc("/auth/login", auth.LoginHandler(database, secret))
	mux.HandleFunc("/auth/me", mw.Wrap(auth.MeHandler(database)))
	mux.HandleFunc("/auth/logout", mw.Wrap(auth.LogoutHandler()))
	mux.HandleFunc("/auth/account", mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			auth.DeleteAccountHandler(database)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/tasks", mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			tasks.ListTasksHandler(svc)(w, r)
		case http.MethodPost:
			tasks.CreateTaskHandler(svc, database)(w, r)
		case http.MethodPut:
			tasks.UpdateTaskHandler(svc, database)(w, r)
		case http.MethodDelete:
			tasks.DeleteTaskHandler(svc, database)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/tasks/stream", tasks.StreamHandler(hub, secret))

	mux.HandleFunc("/recommend", mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			ai.RecommendHandler(recommender, database)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Platform", "X-App-Version", "X-Session-Id"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	log.Println("🚀 SmartCue API is running on " + cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}
