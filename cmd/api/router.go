package main

import (
	"context"
	"database/sql"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cyberkittens/cyberkittens-go/internal/config"
	"github.com/cyberkittens/cyberkittens-go/internal/crypto"
	"github.com/cyberkittens/cyberkittens-go/internal/handler"
	"github.com/cyberkittens/cyberkittens-go/internal/middleware"
	"github.com/cyberkittens/cyberkittens-go/internal/repository"
	"github.com/cyberkittens/cyberkittens-go/internal/service"
)

// newRouter builds the full HTTP handler over db. Background work started for
// the router (rate limiter eviction) stops when ctx is done.
func newRouter(ctx context.Context, db *sql.DB, cfg config.Config) chi.Router {
	codec := crypto.NewTokenCodec(cfg.JWTSecret, cfg.JWTExpiry)

	authService := service.NewAuthService(repository.NewUserRepository(db), codec)
	kittenService := service.NewKittenService(repository.NewKittenRepository(db))

	authHandler := handler.NewAuthHandler(authService)
	kittenHandler := handler.NewKittenHandler(kittenService)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(middleware.Prometheus)
	}
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.Authenticate(codec))

	r.Get("/", handler.HandleHome)
	r.Get("/health", handler.HandleHealth)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		if cfg.AuthRateLimitRPS > 0 && cfg.AuthRateLimitBurst > 0 {
			r.Use(middleware.RateLimit(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst))
		}
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})

	r.Route("/kittens", func(r chi.Router) {
		r.Post("/", kittenHandler.HandleCreateKitten)
		r.Get("/{id}", kittenHandler.HandleGetKitten)
		r.Delete("/{id}", kittenHandler.HandleDeleteKitten)
	})

	return r
}
