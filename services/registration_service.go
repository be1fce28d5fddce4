package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/gorm"
)

// RegistrationWindowOpen reports whether the program accepts sign-ups at now.
func RegistrationWindowOpen(now time.Time) bool {
	if !config.App.RegistrationOpen {
		return false
	}
	if d := config.App.RegistrationDeadline; d != nil && now.After(*d) {
		return false
	}
	return true
}

func Register(ctx context.Context, req models.RegistrationRequest, ip string) (*models.Registration, error) {
	if !RegistrationWindowOpen(time.Now()) {
		return nil, ErrRegistrationClosed
	}
	reg := &models.Registration{
		Program:     config.App.RegistrationProgram,
		FullName:    strings.TrimSpace(req.FullName),
		Email:       NormalizeEmail(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Institution: strings.TrimSpace(req.Institution),
		City:        strings.TrimSpace(req.City),
		Notes:       strings.TrimSpace(req.Notes),
		Status:      models.RegistrationPending,
		IPAddress:   ip,
	}
	if err := config.DB.WithContext(ctx).Create(reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRegistration
		}
		return nil, err
	}

	if err := GetMailer().Send(ctx, RegistrationEmail(reg)); err != nil {
		config.Log.Warn("[registration.create] confirmation email failed", "registration_id", reg.ID, "error", err)
	}
	config.Log.Info("[registration.create] registered", "program", reg.Program, "registration_id", reg.ID)
	return reg, nil
}

type RegistrationFilter struct {
	Status string `form:"status"`
	Query  string `form:"q"`
	City   string `form:"city"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func registrationQuery(ctx context.Context, f RegistrationFilter) *gorm.DB {
	q := config.DB.WithContext(ctx).Model(&models.Registration{}).
		Where("program = ?", config.App.RegistrationProgram)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.City); s != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(s))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ? OR LOWER(institution) LIKE ?)", like, like, like, like)
	}
	return q
}

func ListRegistrations(ctx context.Context, f RegistrationFilter) ([]models.Registration, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	q := registrationQuery(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var regs []models.Registration
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&regs).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return regs, total, page, limit, nil
}

func SetRegistrationStatus(ctx context.Context, id uuid.UUID, status string) (*models.Registration, error) {
	var reg models.Registration
	db := config.DB.WithContext(ctx)
	if err := db.First(&reg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := db.Model(&reg).Update("status", status).Error; err != nil {
		return nil, err
	}
	reg.Status = status
	return &reg, nil
}

var registrationCSVHeader = []string{"id", "program", "full_name", "email", "phone", "institution", "city", "notes", "status", "created_at"}

// csvSafe neutralises values a spreadsheet would treat as formulas.
func csvSafe(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

// ExportRegistrationsCSV writes every registration matching f as CSV.
func ExportRegistrationsCSV(ctx context.Context, f RegistrationFilter, w io.Writer) (int, error) {
	var regs []models.Registration
	if err := registrationQuery(ctx, f).Order("created_at ASC").Find(&regs).Error; err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(registrationCSVHeader); err != nil {
		return 0, err
	}
	for _, r := range regs {
		row := []string{
			r.ID.String(),
			r.Program,
			csvSafe(r.FullName),
			csvSafe(r.Email),
			csvSafe(r.Phone),
			csvSafe(r.Institution),
			csvSafe(r.City),
			csvSafe(r.Notes),
			r.Status,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(regs), cw.Error()
}
