package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/gorm"
)

func GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func optionalString(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewValidationError("name", "cannot be empty")
		}
		user.Name = name
	}
	if req.Phone != nil {
		user.Phone = optionalString(req.Phone)
	}
	if req.Avatar != nil {
		user.Avatar = optionalString(req.Avatar)
	}
	if req.DefaultAddress != nil {
		user.DefaultAddress = optionalString(req.DefaultAddress)
	}
	if req.DeliveryZone != nil {
		if *req.DeliveryZone != "" && !models.ValidZone(*req.DeliveryZone) {
			return nil, NewValidationError("delivery_zone", "unknown delivery zone")
		}
		user.DeliveryZone = optionalString(req.DeliveryZone)
	}
	if err := config.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

type UserFilter struct {
	Query  string `form:"q"`
	Role   string `form:"role"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func ListUsers(ctx context.Context, f UserFilter) ([]models.UserResponse, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	q := config.DB.WithContext(ctx).Model(&models.User{})
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)", like, like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var users []models.User
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, page, limit, err
	}
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, total, page, limit, nil
}

// GetUserDetail adds order count and lifetime value (non-cancelled orders).
func GetUserDetail(ctx context.Context, id uuid.UUID) (*models.AdminUserDetail, error) {
	user, err := GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	var agg struct {
		Orders int64
		Value  float64
	}
	if err := config.DB.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total), 0) AS value").
		Where("user_id = ? AND status <> ?", id, models.OrderStatusCancelled).
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	return &models.AdminUserDetail{
		UserResponse:  user.ToResponse(),
		BanReason:     user.BanReason,
		OrderCount:    agg.Orders,
		LifetimeValue: round2(agg.Value),
	}, nil
}

// AdminUpdateUser changes role or ban status. Admins cannot demote or ban
// themselves; banning needs a reason.
func AdminUpdateUser(ctx context.Context, actorID, id uuid.UUID, req models.AdminUpdateUserRequest) (*models.User, error) {
	user, err := GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID == id && ((req.Role != nil && *req.Role != models.RoleAdmin) || (req.Status != nil && *req.Status == models.UserStatusBanned)) {
		return nil, ErrForbidden
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		switch *req.Status {
		case models.UserStatusBanned:
			reason := optionalString(req.BanReason)
			if reason == nil {
				return nil, NewValidationError("ban_reason", "a reason is required to ban a user")
			}
			user.BanReason = reason
		case models.UserStatusActive:
			user.BanReason = nil
		}
		user.Status = *req.Status
	}

	if err := config.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	config.Log.Info("[admin.users] user updated", "user_id", user.ID, "role", user.Role, "status", user.Status)
	return user, nil
}
