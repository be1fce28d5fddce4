package cart_controller

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/services"
)

// CartsStream godoc
// @Summary Live abandoned-cart feed
// @Description Server-sent cart.updated, cart.deleted, cart.reminded and cart.recovered events for every cart.
// @Tags Admin - Carts
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 "event stream"
// @Router /admin/carts/stream [get]
func CartsStream(c *gin.Context) {
	hub := services.GetHub()
	client := hub.NewClient()
	defer hub.CloseClient(client)

	hub.Subscribe(client, realtime.ChannelAdminCarts)
	hub.ServeHTTP(c.Writer, c.Request, client)
}
