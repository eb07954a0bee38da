package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/admin/manage"
	adminportal "github.com/magabrotheeeer/membership-portal/internal/http/handlers/admin/portal"
	adminsubscriptions "github.com/magabrotheeeer/membership-portal/internal/http/handlers/admin/subscriptions"
	adminusers "github.com/magabrotheeeer/membership-portal/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/auth/oauthcallback"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/auth/oauthlogin"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/auth/register"
	consultantlist "github.com/magabrotheeeer/membership-portal/internal/http/handlers/consultants/list"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/events/export"
	eventlist "github.com/magabrotheeeer/membership-portal/internal/http/handlers/events/list"
	eventread "github.com/magabrotheeeer/membership-portal/internal/http/handlers/events/read"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/home"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/subscription/change"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/subscription/my"
	"github.com/magabrotheeeer/membership-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/membership-portal/internal/lib/session"
	"github.com/magabrotheeeer/membership-portal/internal/oauth"
	authservice "github.com/magabrotheeeer/membership-portal/internal/services/auth"
	consultantservice "github.com/magabrotheeeer/membership-portal/internal/services/consultants"
	eventservice "github.com/magabrotheeeer/membership-portal/internal/services/events"
	subservice "github.com/magabrotheeeer/membership-portal/internal/services/subscription"
	"github.com/magabrotheeeer/membership-portal/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	sessions *session.Manager, providers oauth.Registry,
	authService *authservice.AuthService, subscriptionService *subservice.SubscriptionService,
	eventService *eventservice.EventService, consultantService *consultantservice.ConsultantService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.Session(sessions),
	)

	// Открытые конечные точки
	r.Get("/", home.New(logger, eventService).ServeHTTP)
	registerHandler := register.New(logger, authService, sessions)
	r.Get("/register", registerHandler.Form)
	r.Post("/register", registerHandler.ServeHTTP)
	r.Get("/login/{provider}", oauthlogin.New(logger, providers).ServeHTTP)
	r.Get("/auth/{provider}/callback",
		oauthcallback.New(logger, providers, authService, sessions, subscriptionService).ServeHTTP)
	r.Get("/logout", logout.New(logger, sessions).ServeHTTP)
	r.Get("/events", eventlist.New(logger, eventService).ServeHTTP)
	r.Get("/events/{id}", eventread.New(logger, eventService).ServeHTTP)
	r.Get("/events/{id}/ics", export.New(logger, eventService).ServeHTTP)
	r.Get("/consultants", consultantlist.New(logger, consultantService).ServeHTTP)

	// Зона для вошедших пользователей
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireUser(logger))
		r.Use(middlewarectx.RateLimit(logger))
		r.Get("/my_subscription", my.New(logger, subscriptionService).ServeHTTP)
		r.Post("/my_subscription", change.New(logger, subscriptionService).ServeHTTP)

		// Кабинет требует активную подписку
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SubscriptionGate(logger, subscriptionService))
			r.Get("/dashboard", dashboard.New(logger, eventService).ServeHTTP)
		})
	})

	// Административная консоль
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAdmin(logger))
		r.Get("/admin", adminportal.New(logger).ServeHTTP)
		r.Get("/admin/users", adminusers.New(logger, db).ServeHTTP)
		r.Get("/admin/subscriptions", adminsubscriptions.New(logger, subscriptionService).ServeHTTP)
		r.Post("/admin/subscriptions", manage.New(logger, subscriptionService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
