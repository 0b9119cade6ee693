package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/topupstore/topup-api/internal/config"
	"github.com/topupstore/topup-api/internal/domain/catalog"
	"github.com/topupstore/topup-api/internal/domain/ledger"
	"github.com/topupstore/topup-api/internal/domain/user"
	"github.com/topupstore/topup-api/internal/middleware"
	"github.com/topupstore/topup-api/internal/pkg/database"
	"github.com/topupstore/topup-api/internal/pkg/jwt"
	"github.com/topupstore/topup-api/internal/pkg/logger"
	"github.com/topupstore/topup-api/internal/pkg/metrics"
	pkgresponse "github.com/topupstore/topup-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Top-up API")

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL, database.DefaultPoolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if cfg.AutoMigrate {
		if err := database.Migrate(db.DB); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	rdb, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)

	// ---------- Services ----------
	userService := user.NewService(userRepo, cfg.AdminEmails)
	catalogService := catalog.NewService(catalogRepo, catalog.NewCache(rdb, cfg.CatalogCacheTTL))
	ledgerService := ledger.NewService(ledgerRepo, userRepo, catalogRepo, ledger.Config{
		MinAddMoneyAmount: cfg.MinAddMoneyAmount,
		RecentOrdersLimit: cfg.RecentOrdersLimit,
	})

	if cfg.SeedCatalog {
		seeded, err := catalogService.SeedDefaults(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed catalog")
		}
		if seeded {
			log.Info().Int("games", len(catalog.DefaultGames)).Msg("Catalog seeded")
		}
	}

	router := newRouter(routerDeps{
		db:             db,
		redis:          rdb,
		jwt:            jwtService,
		users:          user.NewHandler(userService),
		catalog:        catalog.NewHandler(catalogService),
		ledger:         ledger.NewHandler(ledgerService),
		admin:          ledger.NewAdminHandler(ledgerService),
		allowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

type routerDeps struct {
	db             *sqlx.DB
	redis          *redis.Client
	jwt            *jwt.Service
	users          *user.Handler
	catalog        *catalog.Handler
	ledger         *ledger.Handler
	admin          *ledger.AdminHandler
	allowedOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	authMiddleware := middleware.Auth(d.jwt)
	// Token check, then the stored account and its role
	accountChain := []func(http.Handler) http.Handler{authMiddleware, d.users.LoadAccount}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(d.allowedOrigins))
	r.Use(metrics.InstrumentHandler)

	r.Get("/health", healthHandler(d.db, d.redis))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", d.users.Routes(authMiddleware))
		r.Mount("/games", d.catalog.Routes())
		r.Mount("/orders", d.ledger.OrderRoutes(accountChain...))
		r.Mount("/add-money-requests", d.ledger.AddMoneyRoutes(accountChain...))
		r.Mount("/admin", d.admin.Routes(accountChain...))
	})

	return r
}

func healthHandler(db *sqlx.DB, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db, rdb); err != nil {
			log.Warn().Err(err).Msg("Health check failed")
			pkgresponse.ServiceUnavailable(w, "dependency unavailable")
			return
		}
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	}
}
