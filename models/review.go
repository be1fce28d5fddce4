package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

type Review struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID           uuid.UUID `json:"item_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_item;index"`
	UserID           uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_item"`
	AuthorName       string    `json:"author_name" gorm:"type:varchar(255);not null"`
	Rating           int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Title            string    `json:"title" gorm:"type:varchar(255)"`
	Body             string    `json:"body" gorm:"type:text"`
	VerifiedPurchase bool      `json:"verified_purchase" gorm:"not null;default:false"`
	Status           string    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewDTO is the storefront shape of an approved review.
type ReviewDTO struct {
	ID               uuid.UUID `json:"id"`
	AuthorName       string    `json:"author_name"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	VerifiedPurchase bool      `json:"verified_purchase"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r *Review) ToDTO() ReviewDTO {
	return ReviewDTO{
		ID:               r.ID,
		AuthorName:       r.AuthorName,
		Rating:           r.Rating,
		Title:            r.Title,
		Body:             r.Body,
		VerifiedPurchase: r.VerifiedPurchase,
		CreatedAt:        r.CreatedAt,
	}
}

type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Title  string `json:"title" binding:"max=255"`
	Body   string `json:"body" binding:"max=5000"`
}

type UpdateReviewStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}
