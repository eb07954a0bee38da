// Package list реализует HTTP-обработчик каталога консультантов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// Handler обрабатывает запросы списка консультантов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения каталога консультантов.
type Service interface {
	List(ctx context.Context) ([]*models.Consultant, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.consultants.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	consultants, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list consultants", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load consultants"))
		return
	}

	log.Info("consultants listed", "count", len(consultants))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"consultants": consultants,
	}))
}
