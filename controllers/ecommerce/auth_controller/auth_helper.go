package auth_controller

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/utils"
)

const oauthStateCookie = "oauth_state"

func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AuthCookie,
		token,
		int(services.GetJWTService().Expiry().Seconds()),
		"/",
		config.App.CookieDomain,
		config.App.CookieSecure,
		true,
	)
}

func clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", config.App.CookieDomain, config.App.CookieSecure, true)
}

// issueSession signs a token for user, sets the auth cookie and records the
// login event.
func issueSession(c *gin.Context, user *models.User, method string) (*models.AuthResponse, error) {
	token, err := services.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, err
	}
	setAuthCookie(c, token)

	services.TouchLastLogin(c.Request.Context(), user.ID)
	_ = utils.LogLoginEvent(c, user.ID, method)

	return &models.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func redirectToFrontendWithError(c *gin.Context, errorMsg string) {
	redirectURL := config.GetFrontendURL() + "/auth/error?message=" + url.QueryEscape(errorMsg)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
