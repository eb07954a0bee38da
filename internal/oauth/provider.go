// Package oauth реализует адаптеры четырёх OAuth-провайдеров.
//
// Каждый адаптер умеет строить URL авторизации и обменивать код
// на профиль пользователя. Google и Microsoft используют готовые
// endpoint-ы из реестра oauth2, Facebook и X — статические URL.
// Реестр провайдеров собирается один раз при старте приложения.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// Profile содержит данные, полученные от провайдера после обмена кода.
type Profile struct {
	ExternalID string // Идентификатор пользователя у провайдера
	Email      string // Электронная почта
	FirstName  string // Имя
	LastName   string // Фамилия
}

// Provider обслуживает один OAuth-провайдер: URL авторизации
// и обмен кода на профиль через userinfo-endpoint.
type Provider struct {
	name        string
	cfg         *oauth2.Config
	userInfoURL string
	mapProfile  func(map[string]any) Profile
}

// Name возвращает имя провайдера, используемое в маршрутах.
func (p *Provider) Name() string {
	return p.name
}

// AuthCodeURL возвращает URL страницы авторизации провайдера.
func (p *Provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// Exchange меняет код авторизации на профиль пользователя.
// Пустой код или отказ провайдера приводят к ошибке; вызывающая
// сторона показывает её пользователю, повторов не делается.
func (p *Provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	const op = "oauth.Exchange"
	if code == "" {
		return nil, fmt.Errorf("%s: %w", op, models.ErrMissingCode)
	}
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := p.cfg.Client(ctx, token).Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: userinfo returned status %d", op, resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := p.mapProfile(raw)
	if profile.ExternalID == "" {
		return nil, fmt.Errorf("%s: provider returned no user id", op)
	}
	if profile.FirstName == "" {
		profile.FirstName = "OAuth"
	}
	if profile.LastName == "" {
		profile.LastName = "User"
	}
	return &profile, nil
}

// Registry карта провайдеров по имени, построенная один раз при старте.
type Registry map[string]*Provider

// Lookup возвращает провайдера по имени из маршрута.
func (r Registry) Lookup(name string) (*Provider, error) {
	p, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("oauth.Lookup: %w: %s", models.ErrUnsupportedProvider, name)
	}
	return p, nil
}

func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
