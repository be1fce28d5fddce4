package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CouponPercent      = "percent"
	CouponFixed        = "fixed"
	CouponFreeShipping = "free_shipping"
)

type Coupon struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Code           string     `json:"code" gorm:"type:varchar(64);uniqueIndex;not null"`
	Description    string     `json:"description" gorm:"type:text"`
	Type           string     `json:"type" gorm:"type:varchar(20);not null"`
	Value          float64    `json:"value" gorm:"type:numeric(12,2);not null;default:0"`
	MinOrderAmount float64    `json:"min_order_amount" gorm:"type:numeric(12,2);not null;default:0"`
	MaxDiscount    float64    `json:"max_discount" gorm:"type:numeric(12,2);not null;default:0"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	UsageLimit     int        `json:"usage_limit" gorm:"not null;default:0"`
	UsedCount      int        `json:"used_count" gorm:"not null;default:0"`
	Active         bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Coupon) TableName() string {
	return "coupons"
}

type CouponRequest struct {
	Code           string     `json:"code" binding:"required,max=64" example:"EID25"`
	Description    string     `json:"description"`
	Type           string     `json:"type" binding:"required,oneof=percent fixed free_shipping" example:"percent"`
	Value          float64    `json:"value" binding:"min=0" example:"25"`
	MinOrderAmount float64    `json:"min_order_amount" binding:"min=0"`
	MaxDiscount    float64    `json:"max_discount" binding:"min=0"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at"`
	UsageLimit     int        `json:"usage_limit" binding:"min=0"`
	Active         *bool      `json:"active"`
}

type UpdateCouponRequest struct {
	Description    *string    `json:"description"`
	Type           *string    `json:"type" binding:"omitempty,oneof=percent fixed free_shipping"`
	Value          *float64   `json:"value" binding:"omitempty,min=0"`
	MinOrderAmount *float64   `json:"min_order_amount" binding:"omitempty,min=0"`
	MaxDiscount    *float64   `json:"max_discount" binding:"omitempty,min=0"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at"`
	UsageLimit     *int       `json:"usage_limit" binding:"omitempty,min=0"`
	Active         *bool      `json:"active"`
}

type ValidateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"min=0"`
	Zone     string  `json:"zone"`
}

type ValidateCouponResponse struct {
	Code         string  `json:"code"`
	Type         string  `json:"type"`
	Discount     float64 `json:"discount"`
	FreeShipping bool    `json:"free_shipping"`
}
