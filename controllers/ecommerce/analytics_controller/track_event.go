package analytics_controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/utils"
)

type trackEventResponse struct {
	EventID  string `json:"event_id"`
	Accepted bool   `json:"accepted"`
}

// TrackEvent godoc
// @Summary Forward a storefront analytics event
// @Description Enriches the event with client IP, user agent, _fbp/_fbc cookies and the signed-in user, hashes identifiers and queues it for the Conversions API.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body models.AnalyticsEventRequest true "Event"
// @Success 202 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Unsupported event"
// @Router /analytics/events [post]
func TrackEvent(c *gin.Context) {
	var req models.AnalyticsEventRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	meta := services.RequestMeta{
		ClientIP:  utils.GetClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	}
	meta.FBP, _ = c.Cookie("_fbp")
	meta.FBC, _ = c.Cookie("_fbc")
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		meta.UserID = userID.String()
	}

	event, err := services.NewAnalyticsEvent(req, meta, time.Now())
	if err != nil {
		helpers.RespondError(c, err, "analytics", "Failed to accept event")
		return
	}

	accepted := false
	if f := services.GetForwarder(); f != nil {
		accepted = f.Enqueue(event)
	}

	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "Event accepted", trackEventResponse{
		EventID:  event.EventID,
		Accepted: accepted,
	}))
}
