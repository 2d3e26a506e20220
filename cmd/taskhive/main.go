package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dkarlsson/taskhive/internal/application/auth"
	"github.com/dkarlsson/taskhive/internal/application/task"
	"github.com/dkarlsson/taskhive/internal/config"
	infraauth "github.com/dkarlsson/taskhive/internal/infrastructure/auth"
	httprouter "github.com/dkarlsson/taskhive/internal/infrastructure/http"
	"github.com/dkarlsson/taskhive/internal/infrastructure/http/handlers"
	"github.com/dkarlsson/taskhive/internal/infrastructure/http/middleware"
	"github.com/dkarlsson/taskhive/internal/infrastructure/lockout"
	"github.com/dkarlsson/taskhive/internal/infrastructure/persistence/postgres"
	"github.com/dkarlsson/taskhive/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	accessExp := time.Duration(cfg.JWT.AccessExpiry) * time.Second
	refreshExp := time.Duration(cfg.JWT.RefreshExpiry) * time.Second
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience, accessExp)

	registerUC := auth.NewRegister(userRepo, hasher, issuer, accessExp, refreshExp)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, accessExp, refreshExp)
	refreshUC := auth.NewRefresh(userRepo, issuer, accessExp, refreshExp)
	logoutUC := auth.NewLogout(userRepo)
	profileUC := auth.NewProfile(userRepo)
	listUsersUC := auth.NewListUsers(userRepo)
	updateUserRoleUC := auth.NewUpdateUserRole(userRepo)
	taskSvc := task.NewService(taskRepo)

	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, refreshUC, logoutUC, profileUC, lockoutStore, log)
	adminHandler := handlers.NewAdminHandler(listUsersUC, updateUserRoleUC, log)
	taskHandler := handlers.NewTaskHandler(taskSvc, log)
	healthHandler := handlers.NewHealthHandler(pool)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins)
	requireJWT := middleware.NewAuthValidator(issuer).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		AdminHandler:  adminHandler,
		TaskHandler:   taskHandler,
		HealthHandler: healthHandler,
		RequireJWT:    requireJWT,
		Log:           log,
		Secure:        secureMiddleware,
		CORS:          corsMiddleware,
		IPRateLimit:   ipLimit,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
