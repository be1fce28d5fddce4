package config

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	GoogleOAuthConfig *oauth2.Config
	OIDCVerifier      *oidc.IDTokenVerifier
)

// InitGoogleOAuth configures Google sign-in. It is a no-op when the client
// credentials are missing so the rest of the API still boots.
func InitGoogleOAuth() {
	clientID := getEnv("GOOGLE_CLIENT_ID", "")
	clientSecret := getEnv("GOOGLE_CLIENT_SECRET", "")
	if clientID == "" || clientSecret == "" {
		Log.Warn("[oauth] GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, Google login disabled")
		return
	}

	redirectURL := getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback")

	GoogleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	provider, err := oidc.NewProvider(context.Background(), "https://accounts.google.com")
	if err != nil {
		Log.Fatal("[oauth] failed to create OIDC provider", "error", err)
	}
	OIDCVerifier = provider.Verifier(&oidc.Config{ClientID: clientID})

	Log.Info("[oauth] Google OAuth initialized")
}
