package services

import (
	"context"
	"time"

	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	DefaultReportDays = 30
	MaxReportDays     = 366
	reportDateLayout  = "2006-01-02"
)

// ParseReportRange turns from/to (YYYY-MM-DD, both optional) into a UTC range
// whose To is exclusive. Missing bounds default to the last 30 days.
func ParseReportRange(from, to string, now time.Time) (models.ReportRange, error) {
	today := now.UTC().Truncate(24 * time.Hour)

	end := today
	if to != "" {
		t, err := time.Parse(reportDateLayout, to)
		if err != nil {
			return models.ReportRange{}, NewValidationError("to", "must be a date (YYYY-MM-DD)")
		}
		end = t
	}
	start := end.AddDate(0, 0, -(DefaultReportDays - 1))
	if from != "" {
		t, err := time.Parse(reportDateLayout, from)
		if err != nil {
			return models.ReportRange{}, NewValidationError("from", "must be a date (YYYY-MM-DD)")
		}
		start = t
	}

	if start.After(end) {
		return models.ReportRange{}, NewValidationError("from", "must not be after to")
	}
	if end.Sub(start) >= MaxReportDays*24*time.Hour {
		return models.ReportRange{}, NewValidationError("range", "range cannot exceed 366 days")
	}
	return models.ReportRange{From: start, To: end.AddDate(0, 0, 1)}, nil
}

func dayExpr(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return "TO_CHAR(" + column + ", 'YYYY-MM-DD')"
	}
	return "strftime('%Y-%m-%d', " + column + ")"
}

// revenueOrders scopes to orders placed in r that were not cancelled.
func revenueOrders(db *gorm.DB, r models.ReportRange) *gorm.DB {
	return db.Model(&models.Order{}).
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status <> ?", r.From, r.To, models.OrderStatusCancelled)
}

// OverviewReport runs the headline queries concurrently.
func OverviewReport(ctx context.Context, r models.ReportRange) (*models.OverviewReport, error) {
	db := config.DB.WithContext(ctx)
	out := &models.OverviewReport{Range: r, Currency: models.Currency}

	g, gctx := errgroup.WithContext(ctx)
	gdb := db.WithContext(gctx)

	g.Go(func() error {
		var agg struct {
			Revenue float64
			Orders  int64
		}
		if err := revenueOrders(gdb, r).
			Select("COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS orders").
			Scan(&agg).Error; err != nil {
			return err
		}
		out.Revenue = round2(agg.Revenue)
		out.Orders = agg.Orders
		if agg.Orders > 0 {
			out.AverageOrderValue = round2(agg.Revenue / float64(agg.Orders))
		}
		return nil
	})

	g.Go(func() error {
		return gdb.Model(&models.User{}).
			Where("created_at >= ? AND created_at < ? AND role = ?", r.From, r.To, models.RoleCustomer).
			Count(&out.NewCustomers).Error
	})

	g.Go(func() error {
		return gdb.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ? AND status = ?", r.From, r.To, models.OrderStatusCancelled).
			Count(&out.CancelledOrders).Error
	})

	g.Go(func() error {
		return gdb.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ? AND status = ?", r.From, r.To, models.OrderStatusPending).
			Count(&out.PendingOrders).Error
	})

	g.Go(func() error {
		var agg struct {
			Total     int64
			Recovered int64
		}
		if err := gdb.Model(&models.AbandonedCart{}).
			Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS recovered", models.CartStatusRecovered).
			Where("created_at >= ? AND created_at < ?", r.From, r.To).
			Scan(&agg).Error; err != nil {
			return err
		}
		out.AbandonedCarts = agg.Total
		out.RecoveredCarts = agg.Recovered
		if agg.Total > 0 {
			out.CartRecoveryRate = round2(float64(agg.Recovered) / float64(agg.Total) * 100)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SalesByDay returns one row per day in r, including days without orders.
func SalesByDay(ctx context.Context, r models.ReportRange) ([]models.DailySales, error) {
	db := config.DB.WithContext(ctx)
	day := dayExpr(db, "created_at")

	var rows []models.DailySales
	if err := revenueOrders(db, r).
		Select(day + " AS day, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS orders").
		Group(day).
		Order("day").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]models.DailySales, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}
	out := make([]models.DailySales, 0, int(r.To.Sub(r.From).Hours()/24))
	for d := r.From; d.Before(r.To); d = d.AddDate(0, 0, 1) {
		key := d.Format(reportDateLayout)
		row, ok := byDay[key]
		if !ok {
			row = models.DailySales{Day: key}
		}
		row.Revenue = round2(row.Revenue)
		out = append(out, row)
	}
	return out, nil
}

func TopItems(ctx context.Context, r models.ReportRange, limit int) ([]models.TopItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var rows []models.TopItem
	err := config.DB.WithContext(ctx).Table("order_items").
		Select("order_items.item_id AS item_id, MAX(order_items.name) AS name, SUM(order_items.quantity) AS quantity, COALESCE(SUM(order_items.line_total), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status <> ?", r.From, r.To, models.OrderStatusCancelled).
		Group("order_items.item_id").
		Order("quantity DESC, revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Revenue = round2(rows[i].Revenue)
	}
	return rows, nil
}

func OrdersByStatus(ctx context.Context, r models.ReportRange) ([]models.StatusCount, error) {
	var rows []models.StatusCount
	err := config.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", r.From, r.To).
		Group("status").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func SalesByZone(ctx context.Context, r models.ReportRange) ([]models.ZoneReport, error) {
	var rows []models.ZoneReport
	err := revenueOrders(config.DB.WithContext(ctx), r).
		Select("zone, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(shipping_fee), 0) AS shipping").
		Group("zone").
		Order("zone").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Revenue = round2(rows[i].Revenue)
		rows[i].Shipping = round2(rows[i].Shipping)
	}
	return rows, nil
}
