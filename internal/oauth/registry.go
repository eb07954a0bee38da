package oauth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/magabrotheeeer/membership-portal/internal/config"
)

// Статические URL провайдера X: стандартного discovery у него нет.
const (
	xAuthURL     = "https://provider-x.com/oauth2/authorize"
	xTokenURL    = "https://provider-x.com/oauth2/token"
	xUserInfoURL = "https://provider-x.com/oauth2/userinfo"
)

const (
	facebookAuthURL     = "https://www.facebook.com/v18.0/dialog/oauth"
	facebookTokenURL    = "https://graph.facebook.com/v18.0/oauth/access_token"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,email,first_name,last_name"
)

// NewRegistry собирает адаптеры всех четырёх провайдеров из конфига.
func NewRegistry(cfg config.OAuth) Registry {
	google := &Provider{
		name: "google",
		cfg: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURI,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		mapProfile: func(m map[string]any) Profile {
			return Profile{
				ExternalID: str(m, "sub", "id"),
				Email:      str(m, "email"),
				FirstName:  str(m, "given_name"),
				LastName:   str(m, "family_name"),
			}
		},
	}

	microsoft := &Provider{
		name: "microsoft",
		cfg: &oauth2.Config{
			ClientID:     cfg.Microsoft.ClientID,
			ClientSecret: cfg.Microsoft.ClientSecret,
			RedirectURL:  cfg.Microsoft.RedirectURI,
			Endpoint:     endpoints.Microsoft,
			Scopes:       []string{"User.Read"},
		},
		userInfoURL: "https://graph.microsoft.com/v1.0/me",
		mapProfile: func(m map[string]any) Profile {
			return Profile{
				ExternalID: str(m, "id"),
				Email:      str(m, "mail", "userPrincipalName"),
				FirstName:  str(m, "givenName"),
				LastName:   str(m, "surname"),
			}
		},
	}

	facebook := &Provider{
		name: "facebook",
		cfg: &oauth2.Config{
			ClientID:     cfg.Facebook.ClientID,
			ClientSecret: cfg.Facebook.ClientSecret,
			RedirectURL:  cfg.Facebook.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:  facebookAuthURL,
				TokenURL: facebookTokenURL,
			},
			Scopes: []string{"email"},
		},
		userInfoURL: facebookUserInfoURL,
		mapProfile: func(m map[string]any) Profile {
			return Profile{
				ExternalID: str(m, "id"),
				Email:      str(m, "email"),
				FirstName:  str(m, "first_name"),
				LastName:   str(m, "last_name"),
			}
		},
	}

	x := &Provider{
		name: "x",
		cfg: &oauth2.Config{
			ClientID:     cfg.X.ClientID,
			ClientSecret: cfg.X.ClientSecret,
			RedirectURL:  cfg.X.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:  xAuthURL,
				TokenURL: xTokenURL,
			},
			Scopes: []string{"email", "profile"},
		},
		userInfoURL: xUserInfoURL,
		mapProfile: func(m map[string]any) Profile {
			return Profile{
				ExternalID: str(m, "id"),
				Email:      str(m, "email"),
				FirstName:  str(m, "first_name"),
				LastName:   str(m, "last_name"),
			}
		},
	}

	return Registry{
		google.name:    google,
		microsoft.name: microsoft,
		facebook.name:  facebook,
		x.name:         x,
	}
}
