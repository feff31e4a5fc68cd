package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/config"
	"github.com/Dosada05/tournament-bracket/db"
	_ "github.com/Dosada05/tournament-bracket/docs"
	"github.com/Dosada05/tournament-bracket/handlers"
	"github.com/Dosada05/tournament-bracket/middleware"
	"github.com/Dosada05/tournament-bracket/repositories"
	api "github.com/Dosada05/tournament-bracket/routes"
	"github.com/Dosada05/tournament-bracket/services"
	"github.com/Dosada05/tournament-bracket/storage"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 15 * time.Second
	hubRoom         = "tournament"
)

// @title Tournament Bracket API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("store", cfg.StoreBackend))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализация хранилища
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", slog.String("backend", cfg.StoreBackend), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := closeStore.Close(); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()
	tournamentRepo := repositories.NewTournamentRepository(store, cfg.StoreKeyPrefix)

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(registry)

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(hubRoom, logger)

	// Инициализация сервиса турнира
	session := services.NewTournamentSession(services.SessionConfig{
		Repository:   tournamentRepo,
		Generator:    brackets.NewSingleEliminationGenerator(logger),
		Publisher:    wsHub,
		Identity:     middleware.LocalUser(cfg.DefaultPlayerName),
		Metrics:      metrics,
		Logger:       logger,
		WinningScore: cfg.WinningScore,
	})
	if _, err := session.Load(ctx); err != nil {
		logger.Error("failed to restore tournament", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация обработчиков HTTP
	tournamentHandler := handlers.NewTournamentHandler(session)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, session, cfg.AllowedOrigins, logger)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, tournamentHandler, webSocketHandler, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      []byte(cfg.JWTSecretKey),
		Registry:       registry,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return wsHub.Run(gctx)
	})

	g.Go(func() error {
		return session.ListenResults(gctx, wsHub.Results())
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Ожидание сигнала завершения
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.KVStore, io.Closer, error) {
	noop := closerFunc(func() error { return nil })

	switch cfg.StoreBackend {
	case config.BackendRedis:
		store, err := storage.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis store connected")
		return store, closerFunc(store.Close), nil

	case config.BackendPostgres:
		dbConn, err := db.Connect(ctx, cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		store := repositories.NewPostgresKVStore(dbConn, "")
		if err := store.EnsureSchema(ctx); err != nil {
			_ = dbConn.Close()
			return nil, nil, err
		}
		logger.Info("database connection established")
		return store, dbConn, nil

	case config.BackendR2:
		store, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2StoreConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Cloudflare R2 store initialized", slog.String("bucket", cfg.R2BucketName))
		return store, noop, nil

	default:
		return storage.NewMemoryStore(), noop, nil
	}
}
