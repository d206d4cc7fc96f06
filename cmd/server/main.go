package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dentassist/backend/internal/analytics"
	"github.com/dentassist/backend/internal/appointment"
	"github.com/dentassist/backend/internal/config"
	"github.com/dentassist/backend/internal/db"
	"github.com/dentassist/backend/internal/dialog"
	"github.com/dentassist/backend/internal/directory"
	httpapi "github.com/dentassist/backend/internal/http"
	"github.com/dentassist/backend/internal/models"
	"github.com/dentassist/backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "dentassist-backend").Logger()

	ctx := context.Background()

	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
	}

	tenant := models.Tenant{
		ID:       cfg.TenantID,
		Timezone: cfg.TenantTimezone,
		BusinessHours: models.BusinessHours{
			Open:  cfg.BusinessOpen,
			Close: cfg.BusinessClose,
			Days:  []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "samedi"},
		},
	}

	sessions, err := buildSessionStore(cfg, store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build session store")
	}

	var appts appointment.Service
	if cfg.AppointmentsURL == "" {
		appts = appointment.MockService{}
		logger.Info().Msg("using mock appointment service")
	} else {
		appts = appointment.NewHTTPService(cfg.AppointmentsURL)
	}

	var dir directory.Directory
	if store != nil {
		dir = directory.NewPGDirectory(store)
	} else {
		dir = directory.DefaultStatic(cfg.TenantID)
		logger.Info().Msg("using static directory")
	}

	var sink analytics.Sink
	switch cfg.AnalyticsSink {
	case "postgres":
		if store == nil {
			logger.Fatal().Msg("ANALYTICS_SINK=postgres requires DATABASE_URL")
		}
		sink = analytics.PGSink{Store: store, Logger: logger}
	case "off":
		sink = analytics.NopSink{}
	default:
		sink = analytics.LogSink{Logger: logger}
	}

	orch := &dialog.Orchestrator{
		Appointments: appts,
		Directory:    dir,
		Analytics:    sink,
		Logger:       logger,
	}

	router := httpapi.Router(cfg, store, sessions, orch, dir, tenant, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}

func buildSessionStore(cfg config.Config, store *db.Store, logger zerolog.Logger) (session.Store, error) {
	switch cfg.SessionBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, cfg.SessionTTL), nil
	case "postgres":
		if store == nil {
			logger.Fatal().Msg("SESSION_BACKEND=postgres requires DATABASE_URL")
		}
		return &session.PostgresStore{Store: store}, nil
	default:
		logger.Info().Msg("using in-memory session store")
		return session.NewMemoryStore(), nil
	}
}
