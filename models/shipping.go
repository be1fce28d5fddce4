package models

import "time"

const (
	ZoneInsideDhaka  = "inside_dhaka"
	ZoneOutsideDhaka = "outside_dhaka"
)

// ValidZone reports whether z names a delivery zone.
func ValidZone(z string) bool {
	return z == ZoneInsideDhaka || z == ZoneOutsideDhaka
}

// ShippingSettings is a single-row table holding delivery fees.
type ShippingSettings struct {
	ID                    int       `json:"-" gorm:"primaryKey"`
	InsideDhakaFee        float64   `json:"inside_dhaka_fee" gorm:"type:numeric(12,2);not null;default:60"`
	OutsideDhakaFee       float64   `json:"outside_dhaka_fee" gorm:"type:numeric(12,2);not null;default:120"`
	FreeShippingThreshold float64   `json:"free_shipping_threshold" gorm:"type:numeric(12,2);not null;default:0"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ShippingSettings) TableName() string {
	return "shipping_settings"
}

func DefaultShippingSettings() ShippingSettings {
	return ShippingSettings{ID: 1, InsideDhakaFee: 60, OutsideDhakaFee: 120}
}

// FeeFor returns the flat fee for zone and false when the zone is unknown.
func (s ShippingSettings) FeeFor(zone string) (float64, bool) {
	switch zone {
	case ZoneInsideDhaka:
		return s.InsideDhakaFee, true
	case ZoneOutsideDhaka:
		return s.OutsideDhakaFee, true
	default:
		return 0, false
	}
}

type ZoneInfo struct {
	Zone  string  `json:"zone"`
	Label string  `json:"label"`
	Fee   float64 `json:"fee"`
}

type ShippingInfoResponse struct {
	Zones                 []ZoneInfo `json:"zones"`
	FreeShippingThreshold float64    `json:"free_shipping_threshold"`
	Currency              string     `json:"currency"`
}

func (s ShippingSettings) ToInfo() ShippingInfoResponse {
	return ShippingInfoResponse{
		Zones: []ZoneInfo{
			{Zone: ZoneInsideDhaka, Label: "Inside Dhaka", Fee: s.InsideDhakaFee},
			{Zone: ZoneOutsideDhaka, Label: "Outside Dhaka", Fee: s.OutsideDhakaFee},
		},
		FreeShippingThreshold: s.FreeShippingThreshold,
		Currency:              Currency,
	}
}

type UpdateShippingRequest struct {
	InsideDhakaFee        *float64 `json:"inside_dhaka_fee" binding:"omitempty,min=0"`
	OutsideDhakaFee       *float64 `json:"outside_dhaka_fee" binding:"omitempty,min=0"`
	FreeShippingThreshold *float64 `json:"free_shipping_threshold" binding:"omitempty,min=0"`
}

const Currency = "BDT"
