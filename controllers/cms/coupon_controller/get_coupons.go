package coupon_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetCoupons godoc
// @Summary List coupons
// @Tags Admin - Coupons
// @Produce json
// @Security BearerAuth
// @Param q query string false "Code contains"
// @Param active query bool false "Active flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Coupon,meta=models.Pagination}
// @Router /admin/coupons [get]
func GetCoupons(c *gin.Context) {
	var f services.CouponFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	coupons, total, page, limit, err := services.ListCoupons(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.coupons", "Failed to fetch coupons")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Coupons retrieved successfully", coupons,
		models.NewPagination(page, limit, total)))
}

// GetCouponByID godoc
// @Summary Get coupon
// @Tags Admin - Coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} models.ApiResponse{data=models.Coupon}
// @Router /admin/coupons/{id} [get]
func GetCouponByID(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := services.GetCoupon(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.coupon", "Failed to fetch coupon")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Coupon retrieved successfully", coupon))
}
