package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/services"
)

// CartStream godoc
// @Summary Cart events stream
// @Description Server-sent events for the caller's cart session and, when signed in, their user channel.
// @Tags Storefront - Cart
// @Produce text/event-stream
// @Success 200 "event stream"
// @Router /cart/stream [get]
func CartStream(c *gin.Context) {
	sid, err := helpers.EnsureCartSession(c)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	hub := services.GetHub()
	client := hub.NewClient()
	defer hub.CloseClient(client)

	hub.Subscribe(client, realtime.SessionChannel(sid))
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		hub.Subscribe(client, realtime.UserChannel(userID))
	}

	hub.ServeHTTP(c.Writer, c.Request, client)
}
