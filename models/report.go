package models

import "time"

type ReportRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type OverviewReport struct {
	Range             ReportRange `json:"range"`
	Revenue           float64     `json:"revenue"`
	Orders            int64       `json:"orders"`
	AverageOrderValue float64     `json:"average_order_value"`
	NewCustomers      int64       `json:"new_customers"`
	AbandonedCarts    int64       `json:"abandoned_carts"`
	RecoveredCarts    int64       `json:"recovered_carts"`
	CartRecoveryRate  float64     `json:"cart_recovery_rate"`
	CancelledOrders   int64       `json:"cancelled_orders"`
	PendingOrders     int64       `json:"pending_orders"`
	Currency          string      `json:"currency"`
}

type DailySales struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type TopItem struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ZoneReport struct {
	Zone     string  `json:"zone"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
	Shipping float64 `json:"shipping"`
}
