// Package session реализует менеджер серверной сессии поверх подписанной cookie.
//
// Сессия хранит идентификатор пользователя, почту и роль в JWT (HS256),
// записанном в cookie. Login устанавливает cookie, Logout очищает её,
// CurrentUser возвращает активную идентичность или ошибку.
//
// Серверной инвалидации сессии нет: смена роли пользователя не отзывает
// уже выданные cookie до истечения их срока жизни.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// CookieName имя cookie с подписанной сессией.
const CookieName = "session"

// Claims описывает данные идентичности, хранящиеся в сессионной cookie.
type Claims struct {
	UserID               int    `json:"user_id"` // Идентификатор пользователя
	Email                string `json:"email"`   // Электронная почта
	Role                 string `json:"role"`    // Роль пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// IsAdmin возвращает true, если сессия принадлежит администратору.
func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Manager подписывает и проверяет сессионные cookie секретным ключом.
type Manager struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	sessionTTL time.Duration // Время жизни сессии.
}

// NewManager создаёт новый менеджер сессий с заданным ключом и TTL.
func NewManager(secretKey string, ttl time.Duration) *Manager {
	return &Manager{
		secretKey:  secretKey,
		sessionTTL: ttl,
	}
}

// Login устанавливает сессию пользователя: подписывает claims
// и записывает их в cookie ответа.
func (m *Manager) Login(w http.ResponseWriter, userID int, email, role string) error {
	token, err := m.generateToken(userID, email, role)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout очищает сессионную cookie.
func (m *Manager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser возвращает идентичность из сессионной cookie запроса
// или ошибку, если сессии нет либо подпись не прошла проверку.
func (m *Manager) CurrentUser(r *http.Request) (*Claims, error) {
	const op = "session.CurrentUser"
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m.parseToken(cookie.Value)
}

func (m *Manager) generateToken(userID int, email, role string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

func (m *Manager) parseToken(tokenStr string) (*Claims, error) {
	const op = "session.parseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
