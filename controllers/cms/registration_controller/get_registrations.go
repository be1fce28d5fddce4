package registration_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetRegistrations godoc
// @Summary List program registrations
// @Tags Admin - Registrations
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending|confirmed|cancelled"
// @Param q query string false "Name, email or phone"
// @Param city query string false "City"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Registration,meta=models.Pagination}
// @Router /admin/registrations [get]
func GetRegistrations(c *gin.Context) {
	var f services.RegistrationFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	regs, total, page, limit, err := services.ListRegistrations(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.registrations", "Failed to fetch registrations")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Registrations retrieved successfully", regs,
		models.NewPagination(page, limit, total)))
}
