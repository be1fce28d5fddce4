package coupon_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// CreateCoupon godoc
// @Summary Create a coupon
// @Description Codes are stored upper-case and must be unique.
// @Tags Admin - Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CouponRequest true "Coupon"
// @Success 201 {object} models.ApiResponse{data=models.Coupon}
// @Failure 409 {object} models.ApiResponse "Code already exists"
// @Router /admin/coupons [post]
func CreateCoupon(c *gin.Context) {
	var req models.CouponRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	coupon, err := services.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		helpers.RespondError(c, err, "admin.coupon.create", "Failed to create coupon")
		return
	}
	helpers.SetActivityResource(c, coupon.ID)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Coupon created successfully", coupon))
}
