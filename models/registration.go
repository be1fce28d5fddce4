package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

// Registration is one sign-up for the current program.
type Registration struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Program     string    `json:"program" gorm:"type:varchar(100);not null;uniqueIndex:idx_registrations_program_email"`
	FullName    string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_registrations_program_email"`
	Phone       string    `json:"phone" gorm:"type:varchar(50);not null"`
	Institution string    `json:"institution,omitempty" gorm:"type:varchar(255)"`
	City        string    `json:"city,omitempty" gorm:"type:varchar(100)"`
	Notes       string    `json:"notes,omitempty" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	IPAddress   string    `json:"-" gorm:"type:varchar(64)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Registration) TableName() string {
	return "registrations"
}

type RegistrationRequest struct {
	FullName    string `json:"full_name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,max=50"`
	Institution string `json:"institution" binding:"max=255"`
	City        string `json:"city" binding:"max=100"`
	Notes       string `json:"notes" binding:"max=2000"`
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}
