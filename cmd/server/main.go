// @title                       Visa Assistant API
// @version                     1.0
// @description                 Travel and visa assistance: countries, community, notifications, documents and a chatbot proxy.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/visago/visa-assistant/docs"
	"github.com/visago/visa-assistant/internal/api"
	"github.com/visago/visa-assistant/internal/api/handler"
	"github.com/visago/visa-assistant/internal/api/metrics"
	"github.com/visago/visa-assistant/internal/core/ports"
	"github.com/visago/visa-assistant/internal/core/service"
	"github.com/visago/visa-assistant/internal/fixtures"
	"github.com/visago/visa-assistant/internal/infrastructure/backend"
	"github.com/visago/visa-assistant/internal/infrastructure/config"
	"github.com/visago/visa-assistant/internal/infrastructure/db/memory"
	mongodb "github.com/visago/visa-assistant/internal/infrastructure/db/mongo"
	redisdb "github.com/visago/visa-assistant/internal/infrastructure/db/redis"
	"github.com/visago/visa-assistant/internal/infrastructure/llm"
	"github.com/visago/visa-assistant/internal/infrastructure/queue"
	"github.com/visago/visa-assistant/internal/infrastructure/storage"
	"github.com/visago/visa-assistant/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// the logger is not configured yet
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "visa-assistant",
	})

	fx, err := fixtures.Load(cfg.Fixtures.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fixtures")
	}

	ready := map[string]handler.Pinger{}
	var cleanups []func(context.Context)

	// --- Session store ---
	var store ports.LocalStore = memory.NewStore()
	if cfg.Redis.Addr != "" {
		rs, err := redisdb.Open(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Session.Prefix,
			TTL:      cfg.Session.TTL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		store = rs
		ready["redis"] = rs
		cleanups = append(cleanups, func(context.Context) { _ = rs.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in redis")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions kept in memory")
	}

	// --- Document metadata ---
	var docRepo ports.DocumentRepository = memory.NewDocumentRepository()
	if cfg.Mongo.URI != "" {
		repo, err := mongodb.Open(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "visa-assistant"})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open mongodb document repository")
		}
		docRepo = repo
		ready["mongodb"] = repo
		cleanups = append(cleanups, func(ctx context.Context) { _ = repo.Close(ctx) })
		log.Info().Str("database", cfg.Mongo.Database).Msg("document metadata stored in mongodb")
	} else {
		log.Warn().Msg("MONGO_URI not set, document metadata kept in memory")
	}

	disk, err := storage.NewDisk(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}

	// --- Backend ---
	be := backend.NewClient(backend.Config{
		BaseURL:      cfg.Backend.URL,
		ProbePath:    cfg.Backend.ProbePath,
		Timeout:      cfg.Backend.Timeout,
		ProbeTimeout: cfg.Backend.ProbeTimeout,
	}, log)
	if cfg.Backend.URL == "" {
		log.Warn().Msg("BACKEND_URL not set, serving bundled data only")
	}

	// --- Services ---
	remote := service.Remote{Backend: be, Record: metrics.RecordBackendCall, Log: log}
	authService := service.NewAuthService(remote, fx, store, cfg.JWT.Secret, cfg.JWT.TTL)
	notificationService := service.NewNotificationService(remote, store)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	dispatcher := queue.NewDispatcher(cfg.Notifications.Workers, notificationService, log)
	dispatcher.Start(workerCtx)

	router := api.NewRouter(api.Deps{
		Log:       log,
		JWTSecret: cfg.JWT.Secret,
		BodyLimit: cfg.BodyLimit,
		Origins:   cfg.CORSOrigins,

		Probe:         be,
		Auth:          authService,
		Countries:     service.NewCountryService(remote, fx),
		Currency:      service.NewCurrencyService(fx.Rates(), log),
		Community:     service.NewCommunityService(remote, store, dispatcher),
		Notifications: notificationService,
		Preferences:   service.NewPreferenceService(store, cfg.Session.DefaultCountry, log),
		Chat: service.NewChatService(llm.NewClient(llm.Config{
			URL:     cfg.Chat.URL,
			APIKey:  cfg.Chat.APIKey,
			Timeout: cfg.Chat.Timeout,
		}), service.ChatConfig{
			Model:        cfg.Chat.Model,
			Temperature:  cfg.Chat.Temperature,
			MaxTokens:    cfg.Chat.MaxTokens,
			SystemPrompt: cfg.Chat.SystemPrompt,
		}, log),
		Documents: service.NewDocumentService(docRepo, disk, service.DocumentConfig{
			MaxFiles:    cfg.Uploads.MaxFiles,
			MaxFileSize: cfg.Uploads.MaxFileSize,
		}, log),

		Ready: ready,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	httpLog := logger.Component("http")
	go func() {
		httpLog.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpLog.Fatal().Err(err).Msg("listen")
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	stopWorkers()
	for _, fn := range cleanups {
		fn(shutdownCtx)
	}

	log.Info().Msg("server exited")
}
