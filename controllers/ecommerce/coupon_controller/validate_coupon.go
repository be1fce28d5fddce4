package coupon_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// ValidateCoupon godoc
// @Summary Validate a coupon code
// @Description Checks existence, active flag, window, usage and minimum order, in that order, and returns the discount for the given subtotal.
// @Tags Storefront - Coupons
// @Accept json
// @Produce json
// @Param request body models.ValidateCouponRequest true "Code and subtotal"
// @Success 200 {object} models.ApiResponse{data=models.ValidateCouponResponse}
// @Failure 422 {object} models.ApiResponse "Coupon not valid"
// @Router /coupons/validate [post]
func ValidateCoupon(c *gin.Context) {
	var req models.ValidateCouponRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	resp, err := services.ValidateCoupon(c.Request.Context(), req)
	if err != nil {
		helpers.RespondError(c, err, "coupon.validate", "Failed to validate coupon")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Coupon is valid", resp))
}
