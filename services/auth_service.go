package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var bcryptCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser creates a password account with the customer role.
func RegisterUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        NormalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hash,
		Provider:     models.ProviderPassword,
		Role:         models.RoleCustomer,
		Status:       models.UserStatusActive,
		Phone:        req.Phone,
	}
	if err := config.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks email and password. Banned accounts are refused even
// with the right password.
func Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := config.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil || !CheckPassword(*user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if user.Status == models.UserStatusBanned {
		return nil, ErrAccountBanned
	}
	return &user, nil
}

// FindOrCreateGoogleUser links a Google identity to an existing account with
// the same email, or creates a new customer.
func FindOrCreateGoogleUser(ctx context.Context, info models.GoogleUserInfo) (*models.User, error) {
	email := NormalizeEmail(info.Email)
	if email == "" || info.Sub == "" {
		return nil, NewValidationError("email", "google account has no email")
	}

	var user models.User
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("google_id = ?", info.Sub).First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		err = tx.Where("email = ?", email).First(&user).Error
		switch {
		case err == nil:
			updates := map[string]any{"google_id": info.Sub}
			if user.Avatar == nil && info.Picture != "" {
				updates["avatar"] = info.Picture
			}
			return tx.Model(&user).Updates(updates).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub := info.Sub
			user = models.User{
				Email:    email,
				Name:     firstNonEmpty(info.Name, email),
				GoogleID: &sub,
				Provider: models.ProviderGoogle,
				Role:     models.RoleCustomer,
				Status:   models.UserStatusActive,
			}
			if info.Picture != "" {
				pic := info.Picture
				user.Avatar = &pic
			}
			return tx.Create(&user).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	if user.Status == models.UserStatusBanned {
		return nil, ErrAccountBanned
	}
	return &user, nil
}

func ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	// Google-only accounts may set a first password without the current one.
	if user.PasswordHash != nil && !CheckPassword(*user.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return config.DB.WithContext(ctx).Model(&user).Update("password_hash", hash).Error
}

func TouchLastLogin(ctx context.Context, userID uuid.UUID) {
	now := time.Now().UTC()
	if err := config.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", now).Error; err != nil {
		config.Log.Warn("[auth] failed to update last login", "user_id", userID, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
