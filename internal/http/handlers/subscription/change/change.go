// Package change реализует HTTP-обработчик действий над своей подпиской.
//
// Принимает действие upgrade или cancel и после выполнения возвращает
// на страницу подписки.
package change

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/magabrotheeeer/membership-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// Request — входные данные действия над подпиской.
type Request struct {
	Action string `json:"action" validate:"required,oneof=upgrade cancel"`
}

// Handler обрабатывает запросы изменения подписки текущего пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изменения подписки.
type Service interface {
	Upgrade(ctx context.Context, userID int) error
	Cancel(ctx context.Context, userID int) error
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
	const op = "handlers.subscription.change"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.CurrentUserID(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

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
	case "upgrade":
		err = h.service.Upgrade(r.Context(), userID)
	case "cancel":
		err = h.service.Cancel(r.Context(), userID)
	}
	if err != nil {
		if errors.Is(err, models.ErrNoSubscription) {
			log.Error("subscription not found", slog.Int("user_id", userID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
			return
		}
		log.Error("failed to apply action", slog.String("action", req.Action), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update subscription"))
		return
	}

	log.Info("subscription updated", slog.Int("user_id", userID), slog.String("action", req.Action))
	http.Redirect(w, r, "/my_subscription", http.StatusFound)
}
