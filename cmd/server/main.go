package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"reservationsClient/internal/config"
	authport "reservationsClient/internal/modules/auth/application/port"
	authusecase "reservationsClient/internal/modules/auth/application/usecase"
	authinfra "reservationsClient/internal/modules/auth/infrastructure"
	authtransport "reservationsClient/internal/modules/auth/interface"
	"reservationsClient/internal/modules/realtime/application/handler"
	realtimeusecase "reservationsClient/internal/modules/realtime/application/usecase"
	"reservationsClient/internal/modules/realtime/infrastructure"
	realtimetransport "reservationsClient/internal/modules/realtime/interface"
	reservationusecase "reservationsClient/internal/modules/reservations/application/usecase"
	"reservationsClient/internal/modules/reservations/domain"
	reservationinfra "reservationsClient/internal/modules/reservations/infrastructure"
	reservationtransport "reservationsClient/internal/modules/reservations/interface"
	"reservationsClient/internal/platform/broker"
	"reservationsClient/internal/shared/httputil"
	"reservationsClient/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging, cfg.App)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("backend resolved", slog.String("baseUrl", cfg.REST.BaseURL()), slog.Duration("timeout", cfg.REST.Timeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		slog.Error("session store setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	rest := httputil.NewRESTClient(cfg.REST.BaseURL(), cfg.REST.Timeout, nil, logger)

	sessions := authusecase.NewSessionManager(store, authinfra.NewAccountHTTPClient(rest),
		authusecase.WithStorageKeys(cfg.Session.TokenKey, cfg.Session.UserKey))
	state := sessions.InitializeAuth(ctx)
	slog.Info("session initialized", slog.String("state", string(state)))

	hub := infrastructure.NewHub()
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)
	notifier := realtimeusecase.NewReservationNotifier(broadcastUC, nil)

	repo := reservationusecase.NewRepository(
		reservationinfra.NewReservationHTTPClient(rest, cfg.App.ItemsPerPage),
		sessions,
		reservationusecase.WithPublisher(notifier),
		reservationusecase.WithPageSize(cfg.App.ItemsPerPage),
	)

	registry := infrastructure.NewHandlerRegistry()
	for _, topic := range cfg.Kafka.ReservationTopics {
		registry.Register(handler.NewReservationStreamHandler(topic, cfg.Websocket.AllowedActions, broadcastUC, repo))
	}
	consumers := broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, registry.Topics())

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	rules := domain.NewRules(cfg.App.MaxGuests)
	validator := httputil.NewRequestValidator()
	authtransport.RegisterLoginRules(validator)
	reservationtransport.RegisterReservationRules(validator, rules)
	e.Validator = validator

	sessionHandler := authtransport.NewSessionHandler(sessions)
	api := e.Group("/api")
	sessionHandler.Register(api)
	reservationtransport.NewReservationHandler(repo, rules).Register(api, sessionHandler.RequireAuth)
	api.GET("/app", reservationtransport.NewAppHandler(reservationtransport.AppInfo{
		Title:                   cfg.App.Title,
		Version:                 cfg.App.Version,
		ItemsPerPage:            cfg.App.ItemsPerPage,
		MaxGuestsPerReservation: cfg.App.MaxGuests,
	}))
	realtimetransport.NewWebsocketHandler(hub, repo, sessions, cfg.Websocket.AllowedActions).Register(e)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
	consumers.Wait()
}

func newSessionStore(ctx context.Context, cfg *config.Config) (authport.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreFile:
		slog.Info("session store", slog.String("kind", "file"), slog.String("path", cfg.Session.File))
		return authinfra.NewFileStore(cfg.Session.File), func() {}, nil
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		slog.Info("session store", slog.String("kind", "redis"), slog.String("addr", cfg.Redis.Addr))
		return authinfra.NewRedisStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil
	default:
		slog.Info("session store", slog.String("kind", "memory"))
		return authinfra.NewMemoryStore(), func() {}, nil
	}
}

func setupLogging(cfg config.LoggingConfig, app config.AppConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
		App:       app.Title,
		Version:   app.Version,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
