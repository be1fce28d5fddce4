package registration_controller

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/services"
)

// ExportRegistrations godoc
// @Summary Export registrations as CSV
// @Description Same filters as the list, without pagination.
// @Tags Admin - Registrations
// @Produce text/csv
// @Security BearerAuth
// @Param status query string false "pending|confirmed|cancelled"
// @Param q query string false "Name, email or phone"
// @Param city query string false "City"
// @Success 200 {file} file "CSV"
// @Router /admin/registrations/export [get]
func ExportRegistrations(c *gin.Context) {
	var f services.RegistrationFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	var buf bytes.Buffer
	n, err := services.ExportRegistrationsCSV(c.Request.Context(), f, &buf)
	if err != nil {
		helpers.RespondError(c, err, "admin.registrations.export", "Failed to export registrations")
		return
	}

	name := config.App.RegistrationProgram + "-registrations-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("X-Total-Count", strconv.Itoa(n))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
