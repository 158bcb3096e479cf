package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DailyReportResult aggregates one day of trading for a location.
// Profit is revenue minus the purchase cost of the goods sold, net of
// refunds. Amounts are in cents.
type DailyReportResult struct {
	Date         time.Time
	SalesCount   int
	ReturnsCount int
	Revenue      int64
	Refunds      int64
	CostOfGoods  int64
	Profit       int64
}

// TopProductResult represents a product's sales performance. Revenue is
// in cents.
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	Reference    string
	QuantitySold int
	Revenue      int64
}

// PaymentMethodResult aggregates takings by payment method for a period
type PaymentMethodResult struct {
	Method string
	Count  int
	Total  int64
}

// ReportRepository defines interface for reporting and aggregation queries
type ReportRepository interface {
	// GetDailyReport returns the trading summary for a single day
	GetDailyReport(ctx context.Context, locationID uuid.UUID, date time.Time) (*DailyReportResult, error)

	// GetDailyRange returns per-day summaries over the last N days
	GetDailyRange(ctx context.Context, locationID uuid.UUID, days int) ([]DailyReportResult, error)

	// GetTopProducts returns the top selling products by revenue for a period
	GetTopProducts(ctx context.Context, locationID uuid.UUID, start, end time.Time, limit int) ([]TopProductResult, error)

	// GetPaymentMethodBreakdown returns takings grouped by payment method
	GetPaymentMethodBreakdown(ctx context.Context, locationID uuid.UUID, start, end time.Time) ([]PaymentMethodResult, error)

	// GetTotalDue returns the outstanding balance across unpaid sales
	GetTotalDue(ctx context.Context, locationID uuid.UUID) (int64, error)
}
