package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainRepo "github.com/hmidach/librapos-api/internal/domain/repository"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

// dailyRow is the raw aggregate scanned for one trading day
type dailyRow struct {
	SalesCount   int
	ReturnsCount int
	Revenue      int64
	Refunds      int64
	CostOfGoods  int64
}

func (r *reportRepository) getDay(ctx context.Context, locationID uuid.UUID, dayStart, dayEnd time.Time) (*domainRepo.DailyReportResult, error) {
	var row dailyRow

	// Revenue counts what was actually collected, so partially paid sales
	// contribute their paid amount, not their total.
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as sales_count,
			COALESCE(SUM(LEAST(paid, total)), 0) as revenue
		FROM sales
		WHERE location_id = ? AND cancelled = false AND deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
	`, locationID, dayStart, dayEnd).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as returns_count,
			COALESCE(SUM(total_refund), 0) as refunds
		FROM returns
		WHERE location_id = ? AND deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
	`, locationID, dayStart, dayEnd).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(sd.quantity * p.buying_price), 0) as cost_of_goods
		FROM sale_details sd
		JOIN sales s ON s.id = sd.sale_id
		JOIN products p ON p.id = sd.product_id
		WHERE s.location_id = ? AND s.cancelled = false AND s.deleted_at IS NULL
		AND s.created_at >= ? AND s.created_at < ?
	`, locationID, dayStart, dayEnd).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &domainRepo.DailyReportResult{
		Date:         dayStart,
		SalesCount:   row.SalesCount,
		ReturnsCount: row.ReturnsCount,
		Revenue:      row.Revenue,
		Refunds:      row.Refunds,
		CostOfGoods:  row.CostOfGoods,
		Profit:       row.Revenue - row.Refunds - row.CostOfGoods,
	}, nil
}

func (r *reportRepository) GetDailyReport(ctx context.Context, locationID uuid.UUID, date time.Time) (*domainRepo.DailyReportResult, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return r.getDay(ctx, locationID, dayStart, dayStart.Add(24*time.Hour))
}

func (r *reportRepository) GetDailyRange(ctx context.Context, locationID uuid.UUID, days int) ([]domainRepo.DailyReportResult, error) {
	results := make([]domainRepo.DailyReportResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

		day, err := r.getDay(ctx, locationID, dayStart, dayStart.Add(24*time.Hour))
		if err != nil {
			return nil, err
		}
		results = append(results, *day)
	}

	return results, nil
}

func (r *reportRepository) GetTopProducts(ctx context.Context, locationID uuid.UUID, start, end time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as product_id,
			p.name as product_name,
			COALESCE(p.reference, p.code) as reference,
			COALESCE(SUM(sd.quantity), 0) as quantity_sold,
			COALESCE(SUM(sd.total), 0) as revenue
		FROM sale_details sd
		JOIN products p ON p.id = sd.product_id
		JOIN sales s ON s.id = sd.sale_id
		WHERE s.location_id = ? AND s.cancelled = false AND s.deleted_at IS NULL
		AND s.created_at >= ? AND s.created_at < ?
		GROUP BY p.id, p.name, p.reference, p.code
		ORDER BY revenue DESC
		LIMIT ?
	`, locationID, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *reportRepository) GetPaymentMethodBreakdown(ctx context.Context, locationID uuid.UUID, start, end time.Time) ([]domainRepo.PaymentMethodResult, error) {
	var results []domainRepo.PaymentMethodResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method as method,
			COUNT(*) as count,
			COALESCE(SUM(LEAST(paid, total)), 0) as total
		FROM sales
		WHERE location_id = ? AND cancelled = false AND deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY total DESC
	`, locationID, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *reportRepository) GetTotalDue(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var due int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(due), 0)
		FROM sales
		WHERE location_id = ? AND cancelled = false AND deleted_at IS NULL
	`, locationID).Scan(&due).Error

	return due, err
}
