package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

type Category struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Slug        string     `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	SortOrder   int        `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

// CategoryNode is one node of the storefront category tree.
type CategoryNode struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	ParentID    *uuid.UUID     `json:"parent_id"`
	Status      string         `json:"status"`
	ItemCount   int            `json:"item_count"`
	Children    []CategoryNode `json:"children,omitempty"`
}

type CategoryRequest struct {
	Name        string     `json:"name" binding:"required,max=255" example:"Sarees"`
	Slug        string     `json:"slug" example:"sarees"`
	Description string     `json:"description" example:"Handwoven and printed sarees"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Status      string     `json:"status" binding:"omitempty,oneof=active inactive"`
	SortOrder   int        `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=255"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	SortOrder   *int       `json:"sort_order"`
}
