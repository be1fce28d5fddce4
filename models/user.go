package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	UserStatusActive = "active"
	UserStatusBanned = "banned"

	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name           string     `json:"name" gorm:"type:varchar(255);not null"`
	PasswordHash   *string    `json:"-" gorm:"column:password_hash;type:text"`
	GoogleID       *string    `json:"-" gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	Provider       string     `json:"provider" gorm:"type:varchar(50);not null;default:'password'"`
	Role           string     `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	Status         string     `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	BanReason      *string    `json:"ban_reason,omitempty" gorm:"type:text"`
	Phone          *string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Avatar         *string    `json:"avatar,omitempty" gorm:"type:text"`
	DefaultAddress *string    `json:"default_address,omitempty" gorm:"type:text"`
	DeliveryZone   *string    `json:"delivery_zone,omitempty" gorm:"type:varchar(30)"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin && u.Status == UserStatusActive
}

// UserResponse is the public-facing user data
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Phone          *string    `json:"phone"`
	Avatar         *string    `json:"avatar,omitempty"`
	Provider       string     `json:"provider"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	DefaultAddress *string    `json:"default_address,omitempty"`
	DeliveryZone   *string    `json:"delivery_zone,omitempty"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Phone:          u.Phone,
		Avatar:         u.Avatar,
		Provider:       u.Provider,
		Role:           u.Role,
		Status:         u.Status,
		DefaultAddress: u.DefaultAddress,
		DeliveryZone:   u.DeliveryZone,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

// AdminUserDetail adds order aggregates to the admin view of a user.
type AdminUserDetail struct {
	UserResponse
	BanReason     *string `json:"ban_reason,omitempty"`
	OrderCount    int64   `json:"order_count"`
	LifetimeValue float64 `json:"lifetime_value"`
}

// GoogleUserInfo represents data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,max=255" example:"Rahim Uddin"`
	Email    string  `json:"email" binding:"required,email" example:"rahim@example.com"`
	Password string  `json:"password" binding:"required,min=8" example:"s3cretpass"`
	Phone    *string `json:"phone" example:"+8801712345678"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	Phone          *string `json:"phone"`
	Avatar         *string `json:"avatar"`
	DefaultAddress *string `json:"default_address"`
	DeliveryZone   *string `json:"delivery_zone" binding:"omitempty,oneof=inside_dhaka outside_dhaka"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type AdminUpdateUserRequest struct {
	Role      *string `json:"role" binding:"omitempty,oneof=customer admin"`
	Status    *string `json:"status" binding:"omitempty,oneof=active banned"`
	BanReason *string `json:"ban_reason"`
}

// LoginEvent records one successful sign-in.
type LoginEvent struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Method     string    `json:"method" gorm:"type:varchar(20);not null"`
	IPAddress  string    `json:"ip_address" gorm:"type:varchar(64)"`
	UserAgent  string    `json:"user_agent" gorm:"type:text"`
	DeviceType string    `json:"device_type" gorm:"type:varchar(20)"`
	Browser    string    `json:"browser" gorm:"type:varchar(40)"`
	OS         string    `json:"os" gorm:"column:os;type:varchar(40)"`
	LoggedInAt time.Time `json:"logged_in_at" gorm:"not null;index"`
}

func (LoginEvent) TableName() string {
	return "login_events"
}

func (e *LoginEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}
