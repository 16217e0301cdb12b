package config

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LINE's OAuth 2.1 endpoints. The provider is not in the x/oauth2
// endpoints catalog, so the URLs live here.
var lineEndpoint = oauth2.Endpoint{
	AuthURL:  "https://access.line.me/oauth2/v2.1/authorize",
	TokenURL: "https://api.line.me/oauth2/v2.1/token",
}

// LineProfileURL is LINE's profile API, queried with the access token
// after the code exchange.
const LineProfileURL = "https://api.line.me/v2/profile"

// OAuthConfig holds OAuth provider configurations
type OAuthConfig struct {
	GoogleConfig *oauth2.Config
	LineConfig   *oauth2.Config

	// ClientRedirectURL is the frontend URL that receives the final
	// redirect carrying either the signed-in profile or an error code.
	ClientRedirectURL string
}

// LoadOAuthConfig loads OAuth configuration from environment variables
// REQUIRED environment variables:
// - OAUTH_REDIRECT_URL: Base URL for OAuth callbacks (e.g., https://api.example.com)
// - CLIENT_REDIRECT_URL: Frontend URL that receives the post-login redirect
// - GOOGLE_CLIENT_ID: Google OAuth client ID
// - GOOGLE_CLIENT_SECRET: Google OAuth client secret
// - LINE_CLIENT_ID: LINE Login channel ID
// - LINE_CLIENT_SECRET: LINE Login channel secret
func LoadOAuthConfig() (*OAuthConfig, error) {
	// These must be set - fail fast if missing
	redirectURL := os.Getenv("OAUTH_REDIRECT_URL")
	if redirectURL == "" {
		return nil, fmt.Errorf("OAUTH_REDIRECT_URL environment variable not set - this is REQUIRED for OAuth to work")
	}

	clientRedirectURL := os.Getenv("CLIENT_REDIRECT_URL")
	if clientRedirectURL == "" {
		return nil, fmt.Errorf("CLIENT_REDIRECT_URL environment variable not set")
	}

	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	if googleClientID == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID environment variable not set")
	}

	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if googleClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_SECRET environment variable not set")
	}

	lineClientID := os.Getenv("LINE_CLIENT_ID")
	if lineClientID == "" {
		return nil, fmt.Errorf("LINE_CLIENT_ID environment variable not set")
	}

	lineClientSecret := os.Getenv("LINE_CLIENT_SECRET")
	if lineClientSecret == "" {
		return nil, fmt.Errorf("LINE_CLIENT_SECRET environment variable not set")
	}

	// Build callback URLs
	googleCallbackURL := redirectURL + "/api/v1/auth/google/callback"
	lineCallbackURL := redirectURL + "/api/v1/auth/line/callback"

	return &OAuthConfig{
		GoogleConfig: &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  googleCallbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		LineConfig: &oauth2.Config{
			ClientID:     lineClientID,
			ClientSecret: lineClientSecret,
			RedirectURL:  lineCallbackURL,
			Scopes:       []string{"profile", "openid", "email"},
			Endpoint:     lineEndpoint,
		},
		ClientRedirectURL: clientRedirectURL,
	}, nil
}
