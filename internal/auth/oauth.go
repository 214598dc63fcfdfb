package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/ryotashiba/project-management-api/internal/config"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

// Profile is the subset of a provider account the app cares about.
type Profile struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
}

// OAuthManager holds the configured provider set and performs the
// redirect/exchange flow against them.
type OAuthManager struct {
	providers map[string]*oauth2.Config
	client    *http.Client
}

func NewOAuthManager(cfg *config.Config) *OAuthManager {
	providers := map[string]*oauth2.Config{}

	if cfg.GoogleClientID != "" {
		providers["google"] = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectBase + "/api/auth/oauth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	if cfg.GithubClientID != "" {
		providers["github"] = &oauth2.Config{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			RedirectURL:  cfg.OAuthRedirectBase + "/api/auth/oauth/github/callback",
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		}
	}

	return &OAuthManager{
		providers: providers,
		client:    http.DefaultClient,
	}
}

// AuthURL builds the provider redirect URL for the given signed state.
func (m *OAuthManager) AuthURL(provider, state string) (string, error) {
	conf, ok := m.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	return conf.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades an authorization code for the provider profile.
func (m *OAuthManager) Exchange(ctx context.Context, provider, code string) (*Profile, error) {
	conf, ok := m.providers[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	switch provider {
	case "google":
		return m.googleProfile(ctx, conf, token)
	case "github":
		return m.githubProfile(ctx, conf, token)
	default:
		return nil, ErrUnknownProvider
	}
}

func (m *OAuthManager) googleProfile(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (*Profile, error) {
	var info struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := m.fetchJSON(ctx, conf, token, "https://openidconnect.googleapis.com/v1/userinfo", &info); err != nil {
		return nil, err
	}

	return &Profile{
		Provider:   "google",
		ProviderID: info.Sub,
		Email:      info.Email,
		Name:       info.Name,
	}, nil
}

func (m *OAuthManager) githubProfile(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (*Profile, error) {
	var info struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	if err := m.fetchJSON(ctx, conf, token, "https://api.github.com/user", &info); err != nil {
		return nil, err
	}

	email := info.Email
	if email == "" {
		// The profile email may be private; fall back to the emails endpoint.
		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}
		if err := m.fetchJSON(ctx, conf, token, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary {
				email = e.Email
				break
			}
		}
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}

	return &Profile{
		Provider:   "github",
		ProviderID: fmt.Sprintf("%d", info.ID),
		Email:      email,
		Name:       name,
	}, nil
}

func (m *OAuthManager) fetchJSON(ctx context.Context, conf *oauth2.Config, token *oauth2.Token, url string, out interface{}) error {
	client := conf.Client(ctx, token)

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("profile fetch failed: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
