package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog records one admin write against the back office.
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      uuid.UUID      `json:"admin_id" gorm:"type:uuid;not null;index:idx_activity_admin_date,priority:1"`
	AdminEmail   string         `json:"admin_email" gorm:"type:varchar(255);not null"`
	Action       string         `json:"action" gorm:"type:varchar(64);not null;index"`
	ResourceType string         `json:"resource_type" gorm:"type:varchar(64);not null;index:idx_activity_resource_date,priority:1"`
	ResourceID   string         `json:"resource_id" gorm:"type:varchar(64);index"`
	ResourceName string         `json:"resource_name" gorm:"type:varchar(255)"`
	Changes      datatypes.JSON `json:"changes" gorm:"type:jsonb"`
	Status       string         `json:"status" gorm:"type:varchar(20);not null"`
	ErrorMessage string         `json:"error_message" gorm:"type:text"`
	IPAddress    string         `json:"ip_address" gorm:"type:varchar(64)"`
	UserAgent    string         `json:"user_agent" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_admin_date,priority:2;index:idx_activity_resource_date,priority:2"`
}

func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = StatusSuccess
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

type ActivityLogResponse struct {
	ID           uuid.UUID      `json:"id"`
	AdminID      uuid.UUID      `json:"admin_id"`
	AdminEmail   string         `json:"admin_email"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	ResourceName string         `json:"resource_name"`
	Changes      map[string]any `json:"changes"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	IPAddress    string         `json:"ip_address"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (al *ActivityLog) ToResponse() ActivityLogResponse {
	changes := make(map[string]any)
	if len(al.Changes) > 0 {
		_ = json.Unmarshal(al.Changes, &changes)
	}
	return ActivityLogResponse{
		ID:           al.ID,
		AdminID:      al.AdminID,
		AdminEmail:   al.AdminEmail,
		Action:       al.Action,
		ResourceType: al.ResourceType,
		ResourceID:   al.ResourceID,
		ResourceName: al.ResourceName,
		Changes:      changes,
		Status:       al.Status,
		ErrorMessage: al.ErrorMessage,
		IPAddress:    al.IPAddress,
		CreatedAt:    al.CreatedAt,
	}
}

type ActivityLogFilter struct {
	AdminID      string `form:"admin"`
	ResourceType string `form:"resource"`
	Action       string `form:"action"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

const (
	ResourceTypeItem          = "item"
	ResourceTypeCategory      = "category"
	ResourceTypeOrder         = "order"
	ResourceTypeUser          = "user"
	ResourceTypeReview        = "review"
	ResourceTypeCoupon        = "coupon"
	ResourceTypeBlogPost      = "blog_post"
	ResourceTypeRegistration  = "registration"
	ResourceTypeAbandonedCart = "abandoned_cart"
	ResourceTypeSettings      = "settings"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)
