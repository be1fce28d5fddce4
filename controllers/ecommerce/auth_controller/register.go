package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// Register godoc
// @Summary Create a customer account
// @Description Creates a password account and signs the user in with an HttpOnly auth cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Account details"
// @Success 201 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 409 {object} models.ApiResponse "Email already registered"
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	user, err := services.RegisterUser(c.Request.Context(), req)
	if err != nil {
		helpers.RespondError(c, err, "auth.register", "Failed to create account")
		return
	}

	resp, err := issueSession(c, user, models.ProviderPassword)
	if err != nil {
		config.Log.Error("[auth.register] failed to issue token", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to sign in"))
		return
	}

	config.Log.Info("[auth.register] account created", "user_id", user.ID.String())
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Account created", resp))
}
