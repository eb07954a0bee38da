// Package oauthlogin реализует HTTP-обработчик начала OAuth-входа.
//
// Handler находит провайдера по имени из URL, генерирует state,
// сохраняет его в cookie и перенаправляет на страницу авторизации.
package oauthlogin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
	"github.com/magabrotheeeer/membership-portal/internal/oauth"
)

// StateCookie — имя cookie с ожидаемым значением state.
const StateCookie = "oauth_state"

// Handler обрабатывает запросы начала входа через внешнего провайдера.
type Handler struct {
	log       *slog.Logger
	providers oauth.Registry
}

// New создает новый Handler с переданным логгером и реестром провайдеров.
func New(log *slog.Logger, providers oauth.Registry) *Handler {
	return &Handler{
		log:       log,
		providers: providers,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.oauthlogin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, "provider")
	provider, err := h.providers.Lookup(name)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedProvider) {
			log.Error("unsupported provider", slog.String("provider", name))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unsupported provider"))
			return
		}
		log.Error("failed to resolve provider", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("redirecting to provider", slog.String("provider", provider.Name()))
	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusFound)
}
