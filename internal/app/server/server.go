package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/analytics"
	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/goals"
	"perftrack/internal/domain/identity"
	"perftrack/internal/domain/reviews"
	"perftrack/internal/domain/skills"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db"
	analyticshandler "perftrack/internal/transport/http/handlers/analytics"
	authhandler "perftrack/internal/transport/http/handlers/auth"
	employeeshandler "perftrack/internal/transport/http/handlers/employees"
	goalshandler "perftrack/internal/transport/http/handlers/goals"
	reviewshandler "perftrack/internal/transport/http/handlers/reviews"
	skillshandler "perftrack/internal/transport/http/handlers/skills"
	"perftrack/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

// New connects, migrates, seeds and builds the router. The caller owns the
// listener; tests mount a.Router on an httptest server instead.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	identitySvc := identity.NewService(identity.NewStore(pool))
	resolver := access.NewResolver(identitySvc)
	goalSvc := goals.NewService(goals.NewStore(pool))
	reviewSvc := reviews.NewService(reviews.NewStore(pool))
	skillSvc := skills.NewService(skills.NewStore(pool))
	analyticsSvc := analytics.NewService(analytics.NewStore(pool), resolver, identitySvc)
	auditSvc := audit.New(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Authenticate(cfg.JWTSecret, identitySvc))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		authHandler := authhandler.NewHandler(identitySvc, auditSvc, cfg.JWTSecret)
		authHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole())

			authHandler.RegisterRoutes(r)
			employeeshandler.NewHandler(identitySvc, auditSvc).RegisterRoutes(r)
			goalshandler.NewHandler(goalSvc, resolver, auditSvc).RegisterRoutes(r)
			reviewshandler.NewHandler(reviewSvc, identitySvc, resolver, auditSvc).RegisterRoutes(r)
			skillshandler.NewHandler(skillSvc, identitySvc, resolver, auditSvc).RegisterRoutes(r)
			analyticshandler.NewHandler(analyticsSvc, auditSvc).RegisterRoutes(r)
		})
	})

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}
