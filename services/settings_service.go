package services

import (
	"context"
	"errors"

	"github.com/online-bazar/bazar-backend/models"
	"gorm.io/gorm"
)

// LoadShippingSettings returns the settings row, or the defaults when the row
// has not been written yet.
func LoadShippingSettings(ctx context.Context, db *gorm.DB) (models.ShippingSettings, error) {
	var s models.ShippingSettings
	err := db.WithContext(ctx).First(&s, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultShippingSettings(), nil
	}
	if err != nil {
		return models.ShippingSettings{}, err
	}
	return s, nil
}

func UpdateShippingSettings(ctx context.Context, db *gorm.DB, req models.UpdateShippingRequest) (models.ShippingSettings, error) {
	s, err := LoadShippingSettings(ctx, db)
	if err != nil {
		return s, err
	}
	if req.InsideDhakaFee != nil {
		s.InsideDhakaFee = *req.InsideDhakaFee
	}
	if req.OutsideDhakaFee != nil {
		s.OutsideDhakaFee = *req.OutsideDhakaFee
	}
	if req.FreeShippingThreshold != nil {
		s.FreeShippingThreshold = *req.FreeShippingThreshold
	}
	s.ID = 1
	if err := db.WithContext(ctx).Save(&s).Error; err != nil {
		return s, err
	}
	return s, nil
}
