package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/coupon_controller"
)

func SetupCouponRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.GET("", coupon_controller.GetCoupons)
		coupons.GET("/:id", coupon_controller.GetCouponByID)
		coupons.POST("", coupon_controller.CreateCoupon)
		coupons.PATCH("/:id", coupon_controller.UpdateCoupon)
		coupons.DELETE("/:id", coupon_controller.DeleteCoupon)
	}
}
