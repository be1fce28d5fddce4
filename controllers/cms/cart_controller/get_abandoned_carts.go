package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetAbandonedCarts godoc
// @Summary List abandoned carts
// @Description status=open selects active and reminded carts.
// @Tags Admin - Carts
// @Produce json
// @Security BearerAuth
// @Param status query string false "open|active|reminded|recovered|expired|undeliverable"
// @Param has_email query bool false "Only carts with a customer email"
// @Param from query string false "Last activity from (YYYY-MM-DD)"
// @Param to query string false "Last activity to (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.AbandonedCart,meta=models.Pagination}
// @Router /admin/carts [get]
func GetAbandonedCarts(c *gin.Context) {
	var f models.AbandonedCartFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	carts, total, page, limit, err := services.ListAbandonedCarts(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.carts", "Failed to fetch carts")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Carts retrieved successfully", carts,
		models.NewPagination(page, limit, total)))
}

// GetAbandonedCart godoc
// @Summary Get an abandoned cart
// @Tags Admin - Carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} models.ApiResponse{data=models.AbandonedCart}
// @Router /admin/carts/{id} [get]
func GetAbandonedCart(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := services.GetAbandonedCart(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.cart", "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart retrieved successfully", cart))
}
