// Package oauth implements the third-party side of federated login: the
// Google authorization-code flow producing a resolved profile assertion.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/promosynch/promosynch-api/internal/core/ports"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider drives the OAuth2 authorization-code flow against Google
// and fetches the userinfo profile after the code exchange.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider builds a provider with profile+email scopes. The
// redirect URL must match the callback route registered with Google.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
		},
	}
}

// AuthCodeURL returns the consent-screen URL carrying the given state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// FetchProfile exchanges the authorization code and fetches the userinfo
// profile with the resulting token.
func (p *GoogleProvider) FetchProfile(ctx context.Context, code string) (ports.FederatedProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return ports.FederatedProfile{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	resp, err := p.config.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return ports.FederatedProfile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return ports.FederatedProfile{}, fmt.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ports.FederatedProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.ID == "" {
		return ports.FederatedProfile{}, fmt.Errorf("userinfo response missing subject id")
	}

	return ports.FederatedProfile{
		SubjectID:  info.ID,
		GivenName:  info.GivenName,
		FamilyName: info.FamilyName,
		Email:      info.Email,
		Picture:    info.Picture,
	}, nil
}
