package models

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&LoginEvent{},
		&Category{},
		&Item{},
		&ShippingSettings{},
		&Coupon{},
		&Order{},
		&OrderItem{},
		&Review{},
		&BlogPost{},
		&Registration{},
		&AbandonedCart{},
		&ActivityLog{},
	}
}
