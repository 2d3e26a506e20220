package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dkarlsson/taskhive/internal/infrastructure/http/handlers"
	"github.com/dkarlsson/taskhive/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	AdminHandler  *handlers.AdminHandler
	TaskHandler   *handlers.TaskHandler
	HealthHandler *handlers.HealthHandler
	RequireJWT    func(http.Handler) http.Handler
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	IPRateLimit   func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		// Credential and token exchange routes carry their proof in the body.
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
		// Routes that require a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Get("/profile", cfg.AuthHandler.Profile)
			r.Route("/admin", func(r chi.Router) {
				r.Get("/users", cfg.AdminHandler.ListUsers)
				r.Put("/users/{id}/role", cfg.AdminHandler.UpdateUserRole)
			})
		})
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.TaskHandler.ListAll)
		r.Post("/", cfg.TaskHandler.Create)
		r.Get("/my", cfg.TaskHandler.ListMine)
		r.Get("/search", cfg.TaskHandler.Search)
		r.Get("/completed", cfg.TaskHandler.Completed)
		r.Get("/pending", cfg.TaskHandler.Pending)
		r.Get("/priority/{priority}", cfg.TaskHandler.ByPriority)
		r.Get("/{id}", cfg.TaskHandler.Get)
		r.Put("/{id}", cfg.TaskHandler.Update)
		r.Delete("/{id}", cfg.TaskHandler.Delete)
		r.Patch("/{id}/complete", cfg.TaskHandler.Complete)
		r.Patch("/{id}/incomplete", cfg.TaskHandler.Incomplete)
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
