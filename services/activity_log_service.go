package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
)

// ActivityLogService records admin writes.
type ActivityLogService struct{}

func NewActivityLogService() *ActivityLogService {
	return &ActivityLogService{}
}

// LogActivityRequest contains the parameters for logging an activity
type LogActivityRequest struct {
	AdminID      uuid.UUID
	AdminEmail   string
	Action       string // created_item, updated_order, ...
	ResourceType string
	ResourceID   string
	ResourceName string
	Changes      map[string]any // {before: {...}, after: {...}}
	Status       string
	ErrorMessage string
	IPAddress    string
	UserAgent    string
}

// LogActivity stores one entry. Logging failures never fail the request, so
// the error is only logged.
func (s *ActivityLogService) LogActivity(ctx context.Context, req LogActivityRequest) {
	if req.AdminID == uuid.Nil {
		config.Log.Warn("[activity-log] admin id missing", "action", req.Action)
		return
	}

	var changes []byte
	if req.Changes != nil {
		data, err := json.Marshal(req.Changes)
		if err != nil {
			config.Log.Warn("[activity-log] failed to marshal changes", "error", err)
			data = []byte("{}")
		}
		changes = data
	}
	if req.Status == "" {
		req.Status = models.StatusSuccess
	}

	entry := models.ActivityLog{
		AdminID:      req.AdminID,
		AdminEmail:   req.AdminEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: truncate(req.ResourceName, 255),
		Changes:      changes,
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
	}

	if err := config.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		config.Log.Error("[activity-log] failed to create activity log", "action", req.Action, "error", err)
		return
	}
	config.Log.Debug("[activity-log] recorded", "action", req.Action, "resource", req.ResourceType, "resource_id", req.ResourceID)
}

func (s *ActivityLogService) List(ctx context.Context, f models.ActivityLogFilter) ([]models.ActivityLogResponse, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	q := config.DB.WithContext(ctx).Model(&models.ActivityLog{})
	if id, err := uuid.Parse(f.AdminID); err == nil {
		q = q.Where("admin_id = ?", id)
	}
	if f.ResourceType != "" {
		q = q.Where("resource_type = ?", f.ResourceType)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var logs []models.ActivityLog
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, page, limit, err
	}
	out := make([]models.ActivityLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, logs[i].ToResponse())
	}
	return out, total, page, limit, nil
}

var activityLogService *ActivityLogService

func GetActivityLogService() *ActivityLogService {
	if activityLogService == nil {
		activityLogService = NewActivityLogService()
	}
	return activityLogService
}

func LogActivity(ctx context.Context, req LogActivityRequest) {
	GetActivityLogService().LogActivity(ctx, req)
}

func CreateChanges(before, after any) map[string]any {
	return map[string]any{
		"before": before,
		"after":  after,
	}
}
