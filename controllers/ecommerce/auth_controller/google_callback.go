// ════════════════════════════════════════════════════════════
// Path: controllers/ecommerce/auth_controller/google_callback.go
// Google OAuth Callback Handler
// ════════════════════════════════════════════════════════════

package auth_controller

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Verifies the state cookie, exchanges the code, verifies the ID token, creates or links the user, sets the auth cookie and redirects to the frontend.
// @Tags Auth - Google OAuth
// @Produce json
// @Success 307 "Redirect to frontend after successful login"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if config.GoogleOAuthConfig == nil || config.OIDCVerifier == nil {
		redirectToFrontendWithError(c, "Google login is not configured")
		return
	}

	// Step 1: Check state
	state := c.Query("state")
	savedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(savedState)) != 1 {
		config.Log.Warn("[auth.google] state mismatch")
		redirectToFrontendWithError(c, "Invalid state token")
		return
	}
	clearCookie(c, oauthStateCookie)

	code := c.Query("code")
	if code == "" {
		redirectToFrontendWithError(c, "No authorization code")
		return
	}

	// Step 2: Exchange code and verify the ID token
	ctx := c.Request.Context()
	token, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		config.Log.Warn("[auth.google] code exchange failed", "error", err)
		redirectToFrontendWithError(c, "Failed to exchange token")
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		redirectToFrontendWithError(c, "Missing ID token")
		return
	}
	idToken, err := config.OIDCVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		config.Log.Warn("[auth.google] id token verification failed", "error", err)
		redirectToFrontendWithError(c, "Invalid ID token")
		return
	}

	var info models.GoogleUserInfo
	if err := idToken.Claims(&info); err != nil {
		redirectToFrontendWithError(c, "Failed to read user info")
		return
	}
	if !info.EmailVerified {
		redirectToFrontendWithError(c, "Google email is not verified")
		return
	}

	// Step 3: Create or link the account
	user, err := services.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		if errors.Is(err, services.ErrAccountBanned) {
			redirectToFrontendWithError(c, "Account is banned")
			return
		}
		config.Log.Error("[auth.google] failed to resolve user", "error", err)
		redirectToFrontendWithError(c, "Failed to sign in")
		return
	}

	// Step 4: Issue session and redirect
	if _, err := issueSession(c, user, models.ProviderGoogle); err != nil {
		config.Log.Error("[auth.google] failed to issue token", "error", err)
		redirectToFrontendWithError(c, "Failed to sign in")
		return
	}

	config.Log.Info("[auth.google] login successful", "user_id", user.ID.String())
	c.Redirect(http.StatusTemporaryRedirect, config.GetFrontendURL()+"/auth/callback")
}
