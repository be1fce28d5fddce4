package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// Login godoc
// @Summary Sign in with email and password
// @Description Verifies the password and returns a JWT in the body and in the auth_token cookie. Banned accounts get 403.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 401 {object} models.ApiResponse "Invalid credentials"
// @Failure 403 {object} models.ApiResponse "Account banned"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req models.LoginRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	user, err := services.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, err, "auth.login", "Failed to sign in")
		return
	}

	resp, err := issueSession(c, user, models.ProviderPassword)
	if err != nil {
		config.Log.Error("[auth.login] failed to issue token", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to sign in"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Signed in", resp))
}
