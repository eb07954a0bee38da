// Package oauthcallback реализует HTTP-обработчик возврата от OAuth-провайдера.
//
// Handler проверяет state, обменивает код на профиль, сводит профиль
// к учётной записи по почте, открывает сессию и перенаправляет
// в личный кабинет.
package oauthcallback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/auth/oauthlogin"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/lib/session"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
	"github.com/magabrotheeeer/membership-portal/internal/oauth"
)

// Handler обрабатывает возврат пользователя от внешнего провайдера.
type Handler struct {
	log       *slog.Logger
	providers oauth.Registry
	service   Service
	sessions  *session.Manager
	gate      Gate
}

// Service описывает интерфейс сведения OAuth-профиля к учётной записи.
type Service interface {
	ResolveOAuthUser(ctx context.Context, provider string, profile oauth.Profile) (*models.User, error)
}

// Gate описывает интерфейс проверки подписки после входа.
type Gate interface {
	Validate(ctx context.Context, userID int) error
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, providers oauth.Registry, service Service, sessions *session.Manager, gate Gate) *Handler {
	return &Handler{
		log:       log,
		providers: providers,
		service:   service,
		sessions:  sessions,
		gate:      gate,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.oauthcallback"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, "provider")
	provider, err := h.providers.Lookup(name)
	if err != nil {
		log.Error("unsupported provider", slog.String("provider", name))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unsupported provider"))
		return
	}

	if cookie, err := r.Cookie(oauthlogin.StateCookie); err == nil {
		if cookie.Value != r.URL.Query().Get("state") {
			log.Error("state mismatch", slog.String("provider", name))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid state"))
			return
		}
	}

	profile, err := provider.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		if errors.Is(err, models.ErrMissingCode) {
			log.Error("authorization code is missing", slog.String("provider", name))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("authorization code is missing"))
			return
		}
		log.Error("failed to exchange authorization code", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication failed"))
		return
	}

	user, err := h.service.ResolveOAuthUser(r.Context(), provider.Name(), *profile)
	if err != nil {
		log.Error("failed to resolve user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign in"))
		return
	}

	if err := h.sessions.Login(w, user.ID, user.Email, user.Role); err != nil {
		log.Error("failed to open session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign in"))
		return
	}

	// Кабинет сам откажет при отсутствии подписки, тут только фиксируем факт.
	if err := h.gate.Validate(r.Context(), user.ID); err != nil {
		log.Warn("subscription check failed at login", slog.Int("user_id", user.ID), sl.Err(err))
	}

	log.Info("user signed in", slog.Int("user_id", user.ID), slog.String("provider", name))
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
