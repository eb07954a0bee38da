// Package middlewarectx содержит HTTP middleware членского портала.
//
// Session читает подписанную cookie и кладёт идентичность в контекст.
// RequireUser и RequireAdmin охраняют закрытые маршруты, SubscriptionGate
// проверяет активность подписки, RateLimit ограничивает частоту запросов.
package middlewarectx

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/membership-portal/internal/lib/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// Email — ключ для почты пользователя в контексте
	Email Key = "email"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// Session возвращает middleware, который разбирает сессионную cookie.
//
// Валидная сессия добавляет идентификатор, почту и роль в контекст
// запроса; отсутствие или невалидность cookie запрос не прерывает —
// отказ принимают RequireUser и RequireAdmin ниже по цепочке.
func Session(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.CurrentUser(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUserID возвращает идентификатор пользователя из контекста.
func CurrentUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserID).(int)
	return id, ok && id != 0
}
