package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/magabrotheeeer/membership-portal/internal/lib/session"
)

// Handler завершает сессию пользователя и возвращает на главную.
type Handler struct {
	log      *slog.Logger
	sessions *session.Manager
}

// New создает новый Handler с переданным логгером и менеджером сессий.
func New(log *slog.Logger, sessions *session.Manager) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.sessions.Logout(w)
	log.Info("user signed out")
	http.Redirect(w, r, "/", http.StatusFound)
}
