package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kruzhok/knowledge-hub/config"
	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/util/common"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/yandex"
)

const (
	googleProfileURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	yandexProfileURL = "https://login.yandex.ru/info?format=json"

	// Provider calls are blocking, single-attempt and short. Failures
	// bounce the user back to the login page, they never crash a request.
	providerTimeout = 10 * time.Second
)

var (
	ErrUnknownProvider     = common.NewError("unknown oauth provider")
	ErrProviderNotEnabled  = common.NewError("oauth provider is not configured")
	ErrIncompleteProfile   = common.NewError("provider profile is missing required fields")
	ErrProviderUnavailable = common.NewError("identity provider request failed")
)

// OauthProfile is the minimal identity extracted from a provider profile.
type OauthProfile struct {
	ExternalId string
	Email      string
	Name       string
}

type OauthService struct{}

// Enabled reports whether client credentials are configured for a provider.
func (s *OauthService) Enabled(provider string) bool {
	switch provider {
	case model.ProviderGoogle:
		return config.GetGoogleClientID() != "" && config.GetGoogleClientSecret() != ""
	case model.ProviderYandex:
		return config.GetYandexClientID() != "" && config.GetYandexClientSecret() != ""
	}
	return false
}

// AuthCodeURL builds the provider authorization URL carrying the one-time
// state token.
func (s *OauthService) AuthCodeURL(provider string, state string) (string, error) {
	conf, err := s.oauthConfig(provider)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(state), nil
}

// FetchProfile exchanges the authorization code for a token and loads the
// provider profile. Any network or non-success response is returned as a
// recoverable error.
func (s *OauthService) FetchProfile(ctx context.Context, provider string, code string) (*OauthProfile, error) {
	conf, err := s.oauthConfig(provider)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: providerTimeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, client)

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	profile, err := s.fetchProfile(ctx, provider, conf, token)
	if err != nil {
		return nil, err
	}

	if profile.ExternalId == "" {
		return nil, ErrIncompleteProfile
	}
	if provider == model.ProviderGoogle && profile.Email == "" {
		return nil, ErrIncompleteProfile
	}
	return profile, nil
}

func (s *OauthService) oauthConfig(provider string) (*oauth2.Config, error) {
	if !s.Enabled(provider) {
		if provider != model.ProviderGoogle && provider != model.ProviderYandex {
			return nil, ErrUnknownProvider
		}
		return nil, ErrProviderNotEnabled
	}

	redirectURL := fmt.Sprintf("%s/oauth/%s/callback", config.GetBaseURL(), provider)

	switch provider {
	case model.ProviderGoogle:
		return &oauth2.Config{
			ClientID:     config.GetGoogleClientID(),
			ClientSecret: config.GetGoogleClientSecret(),
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		}, nil
	case model.ProviderYandex:
		return &oauth2.Config{
			ClientID:     config.GetYandexClientID(),
			ClientSecret: config.GetYandexClientSecret(),
			Endpoint:     yandex.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       config.GetYandexScope(),
		}, nil
	}
	return nil, ErrUnknownProvider
}

func (s *OauthService) fetchProfile(ctx context.Context, provider string, conf *oauth2.Config, token *oauth2.Token) (*OauthProfile, error) {
	profileURL := googleProfileURL
	if provider == model.ProviderYandex {
		profileURL = yandexProfileURL
	}

	client := conf.Client(ctx, token)
	resp, err := client.Get(profileURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: profile endpoint returned %d", ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if provider == model.ProviderGoogle {
		var raw struct {
			Id    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		return &OauthProfile{ExternalId: raw.Id, Email: raw.Email, Name: raw.Name}, nil
	}

	var raw struct {
		Id           string `json:"id"`
		DefaultEmail string `json:"default_email"`
		DisplayName  string `json:"display_name"`
		RealName     string `json:"real_name"`
		Login        string `json:"login"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	name := raw.RealName
	if name == "" {
		name = raw.DisplayName
	}
	if name == "" {
		name = raw.Login
	}
	return &OauthProfile{ExternalId: raw.Id, Email: raw.DefaultEmail, Name: name}, nil
}
