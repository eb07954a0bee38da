// Package list реализует HTTP-обработчик каталога мероприятий.
//
// Полный список из кеша делится на предстоящие и прошедшие.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
	events "github.com/magabrotheeeer/membership-portal/internal/services/events"
)

// Handler обрабатывает запросы списка мероприятий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения списка мероприятий.
type Service interface {
	List(ctx context.Context) ([]*models.Event, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	all, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load events"))
		return
	}

	upcoming, past := events.SplitUpcoming(all, time.Now())

	log.Info("events listed", slog.Int("upcoming", len(upcoming)), slog.Int("past", len(past)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"upcoming": upcoming,
		"past":     past,
	}))
}
