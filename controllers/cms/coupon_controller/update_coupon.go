package coupon_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateCoupon godoc
// @Summary Update a coupon
// @Tags Admin - Coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body models.UpdateCouponRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse{data=models.Coupon}
// @Router /admin/coupons/{id} [patch]
func UpdateCoupon(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCouponRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	coupon, err := services.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.coupon.update", "Failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Coupon updated successfully", coupon))
}

// DeleteCoupon godoc
// @Summary Delete an unused coupon
// @Description Coupons already used by orders answer 409; deactivate them instead.
// @Tags Admin - Coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Coupon in use"
// @Router /admin/coupons/{id} [delete]
func DeleteCoupon(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := services.DeleteCoupon(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.coupon.delete", "Failed to delete coupon")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Coupon deleted", coupon))
}
