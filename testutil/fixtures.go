package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, db *gorm.DB, email, role string) *models.User {
	tb.Helper()
	u := &models.User{
		Email:    email,
		Name:     "Test " + role,
		Provider: models.ProviderPassword,
		Role:     role,
		Status:   models.UserStatusActive,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, db *gorm.DB, name, slug string, parent *uuid.UUID) *models.Category {
	tb.Helper()
	c := &models.Category{
		Name:     name,
		Slug:     slug,
		Status:   models.CategoryStatusActive,
		ParentID: parent,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

type ItemOption func(*models.Item)

func WithCategory(id uuid.UUID) ItemOption {
	return func(i *models.Item) { i.CategoryID = &id }
}

func WithStatus(status string) ItemOption {
	return func(i *models.Item) { i.Status = status }
}

func WithTags(tags ...string) ItemOption {
	return func(i *models.Item) { i.Tags = tags }
}

func WithSlug(slug string) ItemOption {
	return func(i *models.Item) { i.Slug = slug }
}

func SeedItem(tb testing.TB, db *gorm.DB, name string, price float64, stock int, opts ...ItemOption) *models.Item {
	tb.Helper()
	item := &models.Item{
		Name:   name,
		Slug:   utils.Slugify(name) + "-" + uuid.NewString()[:8],
		Price:  price,
		Stock:  stock,
		Status: models.ItemStatusActive,
		Media:  datatypes.NewJSONType(models.ItemMedia{Primary: "https://img.example.com/" + name + ".jpg"}),
	}
	for _, opt := range opts {
		opt(item)
	}
	if err := db.Create(item).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return item
}

func SeedCoupon(tb testing.TB, db *gorm.DB, code, kind string, value float64, usageLimit int) *models.Coupon {
	tb.Helper()
	c := &models.Coupon{
		Code:       code,
		Type:       kind,
		Value:      value,
		UsageLimit: usageLimit,
		Active:     true,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed coupon: %v", err)
	}
	return c
}

// SeedCart inserts an open cart whose last activity was idle ago.
func SeedCart(tb testing.TB, db *gorm.DB, sessionID, email string, idle time.Duration) *models.AbandonedCart {
	tb.Helper()
	cart := &models.AbandonedCart{
		SessionID:      sessionID,
		CustomerEmail:  email,
		Lines:          datatypes.JSONSlice[models.CartLine]{{ItemID: uuid.New(), Name: "Lungi", UnitPrice: 450, Quantity: 2, LineTotal: 900}},
		ItemCount:      2,
		Subtotal:       900,
		Status:         models.CartStatusActive,
		LastActivityAt: time.Now().UTC().Add(-idle),
	}
	if err := db.Create(cart).Error; err != nil {
		tb.Fatalf("seed cart: %v", err)
	}
	return cart
}
