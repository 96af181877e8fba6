package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"docscabinet/internal/auth"
	"docscabinet/internal/config"
	"docscabinet/internal/db"
	"docscabinet/internal/handlers"
	"docscabinet/internal/logs"
	mw "docscabinet/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logs.New(logs.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	dbConn, err := db.Connect(cfg.DatabaseURL, db.PoolSettings{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		logger.Fatalf("db migrate: %v", err)
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.NewHandler(dbConn, issuer, logger)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.Recoverer(logger))

	r.Get("/healthz", liveness)
	r.Get("/readyz", readiness(dbConn))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/users/login", h.Auth.Login)
		r.Post("/users", h.Auth.SignUp)
		r.Post("/users/", h.Auth.SignUp)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(issuer))

			r.Get("/users", h.Users.List)
			r.Get("/users/{id}", h.Users.Get)
			r.Put("/users/{id}", h.Users.Update)
			r.Delete("/users/{id}", h.Users.Delete)
			r.Get("/users/{id}/documents", h.Users.ListDocuments)

			r.Post("/documents", h.Documents.Create)
			r.Get("/documents", h.Documents.List)
			r.Get("/documents/{id}", h.Documents.Get)
			r.Put("/documents/{id}", h.Documents.Update)
			r.Delete("/documents/{id}", h.Documents.Delete)

			r.Get("/search/users", h.Users.Search)
			r.Get("/search/documents", h.Documents.Search)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}

func liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func readiness(dbConn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := dbConn.Ping(); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}
}
