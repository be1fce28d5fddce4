package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
	PaymentStatusFailed = "failed"
)

type ShippingAddress struct {
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" binding:"required"`
	Area       string `json:"area,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

type Order struct {
	ID              uuid.UUID                           `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber     string                              `json:"order_number" gorm:"type:varchar(32);uniqueIndex;not null"`
	UserID          *uuid.UUID                          `json:"user_id,omitempty" gorm:"type:uuid;index"`
	SessionID       string                              `json:"-" gorm:"type:varchar(64)"`
	CustomerName    string                              `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerEmail   string                              `json:"customer_email" gorm:"type:varchar(255);not null;index"`
	CustomerPhone   string                              `json:"customer_phone" gorm:"type:varchar(50);not null"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `json:"shipping_address" gorm:"type:jsonb"`
	Zone            string                              `json:"zone" gorm:"type:varchar(30);not null;index"`
	Status          string                              `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod   string                              `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentStatus   string                              `json:"payment_status" gorm:"type:varchar(20);not null;default:'unpaid';index"`
	PaymentIntentID *string                             `json:"-" gorm:"type:varchar(255);index"`
	CouponID        *uuid.UUID                          `json:"coupon_id,omitempty" gorm:"type:uuid"`
	CouponCode      string                              `json:"coupon_code,omitempty" gorm:"type:varchar(64)"`
	Subtotal        float64                             `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	ShippingFee     float64                             `json:"shipping_fee" gorm:"type:numeric(12,2);not null"`
	Discount        float64                             `json:"discount" gorm:"type:numeric(12,2);not null;default:0"`
	Tax             float64                             `json:"tax" gorm:"type:numeric(12,2);not null;default:0"`
	Total           float64                             `json:"total" gorm:"type:numeric(12,2);not null"`
	Notes           string                              `json:"notes,omitempty" gorm:"type:text"`
	CancelReason    string                              `json:"cancel_reason,omitempty" gorm:"type:text"`
	ConfirmedAt     *time.Time                          `json:"confirmed_at,omitempty"`
	ProcessingAt    *time.Time                          `json:"processing_at,omitempty"`
	ShippedAt       *time.Time                          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time                          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time                          `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time                           `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time                           `json:"updated_at" gorm:"autoUpdateTime"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `json:"item_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Image     string    `json:"image,omitempty" gorm:"type:text"`
	Size      string    `json:"size,omitempty" gorm:"type:varchar(50)"`
	Color     string    `json:"color,omitempty" gorm:"type:varchar(50)"`
	UnitPrice float64   `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	LineTotal float64   `json:"line_total" gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

// ═══════════════════════════════════════════════════════════
// Requests / Responses
// ═══════════════════════════════════════════════════════════

type CreateOrderRequest struct {
	CustomerName    string          `json:"customer_name" binding:"required,max=255"`
	CustomerEmail   string          `json:"customer_email" binding:"required,email"`
	CustomerPhone   string          `json:"customer_phone" binding:"required,max=50"`
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
	Zone            string          `json:"zone" binding:"required,oneof=inside_dhaka outside_dhaka"`
	PaymentMethod   string          `json:"payment_method" binding:"required,oneof=cod card"`
	Items           []CartLineInput `json:"items"`
	CouponCode      string          `json:"coupon_code"`
	Notes           string          `json:"notes" binding:"max=1000"`
}

type CreateOrderResponse struct {
	Order        *Order `json:"order"`
	ClientSecret string `json:"client_secret,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed processing shipped delivered cancelled"`
	Reason string `json:"reason"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type QuoteRequest struct {
	Items      []CartLineInput `json:"items"`
	Zone       string          `json:"zone" binding:"required"`
	CouponCode string          `json:"coupon_code"`
}

type OrderFilter struct {
	Status        string `form:"status"`
	Query         string `form:"q"`
	Zone          string `form:"zone"`
	PaymentStatus string `form:"payment_status"`
	From          string `form:"from"`
	To            string `form:"to"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}
