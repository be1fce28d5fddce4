package registration_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/utils"
)

// CreateRegistration godoc
// @Summary Register for the program
// @Description Signs up for the configured program. Closed windows answer 403, duplicate emails 409. A confirmation email follows.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param request body models.RegistrationRequest true "Registration"
// @Success 201 {object} models.ApiResponse{data=models.Registration}
// @Failure 403 {object} models.ApiResponse "Registration closed"
// @Failure 409 {object} models.ApiResponse "Already registered"
// @Router /registrations [post]
func CreateRegistration(c *gin.Context) {
	var req models.RegistrationRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	reg, err := services.Register(c.Request.Context(), req, utils.GetClientIP(c))
	if err != nil {
		helpers.RespondError(c, err, "registration", "Failed to register")
		return
	}

	config.Log.Info("[registration] registered", "registration_id", reg.ID.String(), "program", reg.Program)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Registration received", reg))
}
