// Package home реализует HTTP-обработчик главной страницы портала.
//
// Handler отдаёт последние мероприятия из кеша, отфильтрованные
// до предстоящих, — данные для публичной витрины.
package home

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

// Handler обрабатывает запросы главной страницы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения последних мероприятий.
type Service interface {
	Recent(ctx context.Context) ([]*models.Event, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	recent, err := h.service.Recent(r.Context())
	if err != nil {
		log.Error("failed to load recent events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load events"))
		return
	}

	upcoming, _ := events.SplitUpcoming(recent, time.Now())

	log.Info("homepage events loaded", slog.Int("count", len(upcoming)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"events": upcoming,
	}))
}
