package oauthcallback

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/membership-portal/internal/config"
	"github.com/magabrotheeeer/membership-portal/internal/http/handlers/auth/oauthlogin"
	"github.com/magabrotheeeer/membership-portal/internal/lib/session"
	"github.com/magabrotheeeer/membership-portal/internal/models"
	"github.com/magabrotheeeer/membership-portal/internal/oauth"
)

// MockService реализует интерфейс oauthcallback.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ResolveOAuthUser(ctx context.Context, provider string, profile oauth.Profile) (*models.User, error) {
	args := m.Called(ctx, provider, profile)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGate реализует интерфейс oauthcallback.Gate
type MockGate struct {
	mock.Mock
}

func (m *MockGate) Validate(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

func newHandler() *Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	providers := oauth.NewRegistry(config.OAuth{
		Google: config.OAuthClient{ClientID: "id", ClientSecret: "secret", RedirectURI: "http://localhost/cb"},
	})
	return New(logger, providers, new(MockService), session.NewManager("test-secret", time.Hour), new(MockGate))
}

func requestWithProvider(name, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("provider", name)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCallbackHandler_UnsupportedProvider(t *testing.T) {
	handler := newHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithProvider("github", "/auth/github/callback"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported provider")
}

func TestCallbackHandler_MissingCode(t *testing.T) {
	handler := newHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithProvider("google", "/auth/google/callback"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "authorization code is missing")
}

func TestCallbackHandler_StateMismatch(t *testing.T) {
	handler := newHandler()

	req := requestWithProvider("google", "/auth/google/callback?code=abc&state=attacker")
	req.AddCookie(&http.Cookie{Name: oauthlogin.StateCookie, Value: "expected"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid state")
}
