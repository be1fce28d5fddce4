package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ItemStatusActive   = "active"
	ItemStatusDraft    = "draft"
	ItemStatusArchived = "archived"
)

// ═══════════════════════════════════════════════════════════
// JSONB Types
// ═══════════════════════════════════════════════════════════

type ItemMedia struct {
	Primary string   `json:"primary"`
	Gallery []string `json:"gallery,omitempty"`
}

// ═══════════════════════════════════════════════════════════
// Item (CMS collection "Items")
// ═══════════════════════════════════════════════════════════

type Item struct {
	ID             uuid.UUID                     `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string                        `json:"name" gorm:"type:varchar(255);not null;index"`
	Slug           string                        `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description    string                        `json:"description" gorm:"type:text"`
	Price          float64                       `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	CompareAtPrice *float64                      `json:"compare_at_price,omitempty" gorm:"type:numeric(12,2)"`
	Stock          int                           `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	CategoryID     *uuid.UUID                    `json:"category_id" gorm:"type:uuid;index"`
	Category       *Category                     `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Status         string                        `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	Media          datatypes.JSONType[ItemMedia] `json:"media" gorm:"type:jsonb"`
	Tags           datatypes.JSONSlice[string]   `json:"tags" gorm:"type:jsonb"`
	Sizes          datatypes.JSONSlice[string]   `json:"sizes" gorm:"type:jsonb"`
	Colors         datatypes.JSONSlice[string]   `json:"colors" gorm:"type:jsonb"`
	Featured       bool                          `json:"featured" gorm:"not null;default:false;index"`
	RatingAvg      float64                       `json:"rating_avg" gorm:"type:numeric(3,2);not null;default:0"`
	RatingCount    int                           `json:"rating_count" gorm:"not null;default:0"`
	Views          int                           `json:"views" gorm:"not null;default:0"`
	CreatedAt      time.Time                     `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time                     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	if i.Tags == nil {
		i.Tags = datatypes.JSONSlice[string]{}
	}
	if i.Sizes == nil {
		i.Sizes = datatypes.JSONSlice[string]{}
	}
	if i.Colors == nil {
		i.Colors = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (Item) TableName() string {
	return "items"
}

// PrimaryImage returns the primary media URL, falling back to the first gallery image.
func (i *Item) PrimaryImage() string {
	m := i.Media.Data()
	if m.Primary != "" {
		return m.Primary
	}
	if len(m.Gallery) > 0 {
		return m.Gallery[0]
	}
	return ""
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ItemRequest struct {
	Name           string     `json:"name" binding:"required,max=255" example:"Jamdani Saree"`
	Slug           string     `json:"slug" example:"jamdani-saree"`
	Description    string     `json:"description"`
	Price          float64    `json:"price" binding:"required,min=0" example:"4500"`
	CompareAtPrice *float64   `json:"compare_at_price" binding:"omitempty,min=0"`
	Stock          int        `json:"stock" binding:"min=0" example:"12"`
	CategoryID     *uuid.UUID `json:"category_id"`
	Status         string     `json:"status" binding:"omitempty,oneof=active draft archived" example:"draft"`
	Media          ItemMedia  `json:"media"`
	Tags           []string   `json:"tags"`
	Sizes          []string   `json:"sizes"`
	Colors         []string   `json:"colors"`
	Featured       bool       `json:"featured"`
}

type UpdateItemRequest struct {
	Name           *string    `json:"name" binding:"omitempty,max=255"`
	Slug           *string    `json:"slug"`
	Description    *string    `json:"description"`
	Price          *float64   `json:"price" binding:"omitempty,min=0"`
	CompareAtPrice *float64   `json:"compare_at_price" binding:"omitempty,min=0"`
	CategoryID     *uuid.UUID `json:"category_id"`
	Status         *string    `json:"status" binding:"omitempty,oneof=active draft archived"`
	Media          *ItemMedia `json:"media"`
	Tags           *[]string  `json:"tags"`
	Sizes          *[]string  `json:"sizes"`
	Colors         *[]string  `json:"colors"`
	Featured       *bool      `json:"featured"`
}

type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"omitempty,min=0"`
	Delta *int `json:"delta"`
}

// ═══════════════════════════════════════════════════════════
// Storefront Filters and Responses
// ═══════════════════════════════════════════════════════════

type ItemFilter struct {
	Category string   `form:"category"`
	Query    string   `form:"q"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	InStock  bool     `form:"in_stock"`
	Featured bool     `form:"featured"`
	Tag      string   `form:"tag"`
	Sort     string   `form:"sort"`
	Page     int      `form:"page"`
	Limit    int      `form:"limit"`
}

type ReviewSummary struct {
	Average float64     `json:"average"`
	Count   int         `json:"count"`
	Recent  []ReviewDTO `json:"recent"`
}

type ItemDetailResponse struct {
	Item    Item          `json:"item"`
	Reviews ReviewSummary `json:"reviews"`
	Related []Item        `json:"related"`
}
