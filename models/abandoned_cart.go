package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CartStatusActive        = "active"
	CartStatusReminded      = "reminded"
	CartStatusRecovered     = "recovered"
	CartStatusExpired       = "expired"
	CartStatusUndeliverable = "undeliverable"
)

// OpenCartStatuses are the statuses a session may still be editing.
var OpenCartStatuses = []string{CartStatusActive, CartStatusReminded}

// CartLine is one sanitized line of a cart snapshot. Name, price and image are
// copied from the catalog at the time of the snapshot.
type CartLine struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	LineTotal float64   `json:"line_total"`
}

// AbandonedCart is the server-side snapshot of a browser cart.
type AbandonedCart struct {
	ID                uuid.UUID                     `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID         string                        `json:"-" gorm:"type:varchar(64);not null;index;uniqueIndex:idx_abandoned_carts_open_session,where:status = 'active' OR status = 'reminded'"`
	UserID            *uuid.UUID                    `json:"user_id,omitempty" gorm:"type:uuid;index"`
	CustomerName      string                        `json:"customer_name" gorm:"type:varchar(255)"`
	CustomerEmail     string                        `json:"customer_email" gorm:"type:varchar(255);index"`
	CustomerPhone     string                        `json:"customer_phone" gorm:"type:varchar(50)"`
	Zone              string                        `json:"zone" gorm:"type:varchar(30)"`
	Lines             datatypes.JSONSlice[CartLine] `json:"lines" gorm:"type:jsonb"`
	ItemCount         int                           `json:"item_count" gorm:"not null;default:0"`
	Subtotal          float64                       `json:"subtotal" gorm:"type:numeric(12,2);not null;default:0"`
	Status            string                        `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	RemindersSent     int                           `json:"reminders_sent" gorm:"not null;default:0"`
	Attempts          int                           `json:"attempts" gorm:"not null;default:0"`
	NextAttemptAt     *time.Time                    `json:"next_attempt_at,omitempty" gorm:"index"`
	LastRemindedAt    *time.Time                    `json:"last_reminded_at,omitempty"`
	LastError         string                        `json:"last_error,omitempty" gorm:"type:text"`
	RecoveryTokenHash string                        `json:"-" gorm:"type:varchar(64);index"`
	RecoveredClickAt  *time.Time                    `json:"recovered_click_at,omitempty"`
	RecoveredOrderID  *uuid.UUID                    `json:"recovered_order_id,omitempty" gorm:"type:uuid"`
	RecoveredAt       *time.Time                    `json:"recovered_at,omitempty"`
	LastActivityAt    time.Time                     `json:"last_activity_at" gorm:"not null;index"`
	CreatedAt         time.Time                     `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time                     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *AbandonedCart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	if c.Lines == nil {
		c.Lines = datatypes.JSONSlice[CartLine]{}
	}
	if c.Status == "" {
		c.Status = CartStatusActive
	}
	return nil
}

func (AbandonedCart) TableName() string {
	return "abandoned_carts"
}

func (c *AbandonedCart) IsOpen() bool {
	return c.Status == CartStatusActive || c.Status == CartStatusReminded
}

// ═══════════════════════════════════════════════════════════
// Requests / Responses
// ═══════════════════════════════════════════════════════════

type CartLineInput struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
}

// Limits follow the abandoned_carts column widths.
type CartCustomerInput struct {
	Name  string `json:"name" binding:"max=255"`
	Email string `json:"email" binding:"max=255"`
	Phone string `json:"phone" binding:"max=50"`
}

type CartActivityRequest struct {
	Items    []CartLineInput    `json:"items" binding:"max=200"`
	Customer *CartCustomerInput `json:"customer,omitempty"`
	Zone     string             `json:"zone,omitempty"`
}

type CartActivityResponse struct {
	Action string         `json:"action"`
	Cart   *AbandonedCart `json:"cart,omitempty"`
}

type AbandonedCartFilter struct {
	Status   string `form:"status"`
	HasEmail *bool  `form:"has_email"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type AbandonedCartStats struct {
	Open          int64   `json:"open"`
	Active        int64   `json:"active"`
	Reminded      int64   `json:"reminded"`
	Recovered     int64   `json:"recovered"`
	Expired       int64   `json:"expired"`
	Undeliverable int64   `json:"undeliverable"`
	RecoveryRate  float64 `json:"recovery_rate"`
	ValueAtRisk   float64 `json:"value_at_risk"`
}

type RecoveredCartResponse struct {
	Lines    []CartLine `json:"lines"`
	Subtotal float64    `json:"subtotal"`
	Zone     string     `json:"zone,omitempty"`
	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
}
