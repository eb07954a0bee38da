// Package app собирает приложение членского портала: хранилище,
// миграции, кеш, сессии, OAuth-реестр, брокер и HTTP-сервер.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/membership-portal/internal/cache"
	"github.com/magabrotheeeer/membership-portal/internal/config"
	"github.com/magabrotheeeer/membership-portal/internal/lib/session"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/migrations"
	"github.com/magabrotheeeer/membership-portal/internal/oauth"
	"github.com/magabrotheeeer/membership-portal/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/membership-portal/internal/services/auth"
	consultantservice "github.com/magabrotheeeer/membership-portal/internal/services/consultants"
	eventservice "github.com/magabrotheeeer/membership-portal/internal/services/events"
	subservice "github.com/magabrotheeeer/membership-portal/internal/services/subscription"
	"github.com/magabrotheeeer/membership-portal/internal/storage/repository"
)

// App хранит собранный HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует все слои приложения и возвращает готовый App.
// Недоступный брокер сообщений не считается фатальной ошибкой:
// события платежей в этом случае только логируются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = db.Seed(ctx); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(cfg.Session.SecretKey, cfg.Session.SessionTTL)
	providers := oauth.NewRegistry(cfg.OAuth)

	var publisher subservice.EventPublisher
	if cfg.RabbitMQConnection != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
		if err != nil {
			logger.Warn("rabbitmq is unavailable, payment events will not be published", sl.Err(err))
		} else if pub, err := rabbitmq.NewPublisher(conn); err != nil {
			logger.Warn("failed to init rabbitmq publisher", sl.Err(err))
		} else {
			publisher = pub
		}
	}

	authService := authservice.NewAuthService(db, logger)
	subscriptionService := subservice.NewSubscriptionService(db, db, publisher, logger)
	eventService := eventservice.NewEventService(db, cacheRedis, logger)
	consultantService := consultantservice.NewConsultantService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, sessions, providers,
		authService, subscriptionService, eventService, consultantService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
