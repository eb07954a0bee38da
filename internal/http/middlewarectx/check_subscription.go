package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// SubscriptionValidator определяет интерфейс шлюза подписки.
type SubscriptionValidator interface {
	Validate(ctx context.Context, userID int) error
}

// SubscriptionGate создает middleware для проверки подписки пользователя.
// Отсутствие подписки и неактивная подписка отдаются разными сообщениями,
// оба случая — 403 Forbidden.
func SubscriptionGate(log *slog.Logger, gate SubscriptionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := CurrentUserID(r.Context())
			if !ok {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			err := gate.Validate(r.Context(), userID)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, models.ErrNoSubscription):
				log.Error("no subscription, access denied", slog.Int("user_id", userID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("no subscription found for this user"))
			case errors.Is(err, models.ErrInactiveSubscription):
				log.Error("inactive subscription, access denied", slog.Int("user_id", userID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("your subscription is not active"))
			default:
				log.Error("failed to validate subscription", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
			}
		})
	}
}
