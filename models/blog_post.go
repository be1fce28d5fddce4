package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type BlogPost struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string                      `json:"title" gorm:"type:varchar(255);not null"`
	Slug        string                      `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Excerpt     string                      `json:"excerpt" gorm:"type:text"`
	Content     string                      `json:"content" gorm:"type:text"`
	CoverImage  string                      `json:"cover_image,omitempty" gorm:"type:text"`
	Tags        datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	Status      string                      `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	PublishedAt *time.Time                  `json:"published_at,omitempty" gorm:"index"`
	AuthorID    *uuid.UUID                  `json:"author_id,omitempty" gorm:"type:uuid"`
	AuthorName  string                      `json:"author_name" gorm:"type:varchar(255)"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

type BlogPostRequest struct {
	Title      string   `json:"title" binding:"required,max=255" example:"Choosing a winter shawl"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status" binding:"omitempty,oneof=draft published"`
}

type UpdateBlogPostRequest struct {
	Title      *string   `json:"title" binding:"omitempty,max=255"`
	Slug       *string   `json:"slug"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"cover_image"`
	Tags       *[]string `json:"tags"`
	Status     *string   `json:"status" binding:"omitempty,oneof=draft published"`
}
