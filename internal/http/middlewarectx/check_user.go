package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/magabrotheeeer/membership-portal/internal/http/response"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// RequireUser возвращает middleware, пропускающий только запросы
// с установленной сессией. Без сессии возвращается 401 Unauthorized.
func RequireUser(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := CurrentUserID(r.Context()); !ok {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin возвращает middleware, пропускающий только администраторов.
// Неадминистратор получает 403 Forbidden.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != models.RoleAdmin {
				log.Error("unauthorized access to admin area")
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("unauthorized access"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
