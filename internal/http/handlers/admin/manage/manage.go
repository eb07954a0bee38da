// Package manage реализует HTTP-обработчик административных действий
// над подписками: activate, deactivate, refund.
package manage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// Request — входные данные административного действия.
type Request struct {
	SubscriptionID int    `json:"subscription_id" validate:"required"`
	Action         string `json:"action" validate:"required,oneof=activate deactivate refund"`
}

// Handler обрабатывает запросы управления подписками.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс административных операций над подпиской.
type Service interface {
	Activate(ctx context.Context, subscriptionID int) error
	Deactivate(ctx context.Context, subscriptionID int) error
	Refund(ctx context.Context, subscriptionID int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.manage"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var err error
	switch req.Action {
	case "activate":
		err = h.service.Activate(r.Context(), req.SubscriptionID)
	case "deactivate":
		err = h.service.Deactivate(r.Context(), req.SubscriptionID)
	case "refund":
		err = h.service.Refund(r.Context(), req.SubscriptionID)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("subscription not found", slog.Int("subscription_id", req.SubscriptionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
			return
		}
		log.Error("failed to apply action", slog.String("action", req.Action), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update subscription"))
		return
	}

	log.Info("subscription updated",
		slog.Int("subscription_id", req.SubscriptionID),
		slog.String("action", req.Action))
	http.Redirect(w, r, "/admin/subscriptions", http.StatusFound)
}
