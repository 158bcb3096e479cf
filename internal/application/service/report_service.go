package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/pkg/apperror"
)

// ReportService exposes the daily trading summaries and breakdowns
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// DailyReport is the day-end summary returned to the API, amounts in
// currency units
type DailyReport struct {
	Date         string  `json:"date"`
	SalesCount   int     `json:"sales_count"`
	ReturnsCount int     `json:"returns_count"`
	Revenue      float64 `json:"revenue"`
	Refunds      float64 `json:"refunds"`
	CostOfGoods  float64 `json:"cost_of_goods"`
	Profit       float64 `json:"profit"`
}

func toDailyReport(r *repository.DailyReportResult) DailyReport {
	return DailyReport{
		Date:         r.Date.Format("2006-01-02"),
		SalesCount:   r.SalesCount,
		ReturnsCount: r.ReturnsCount,
		Revenue:      float64(r.Revenue) / 100,
		Refunds:      float64(r.Refunds) / 100,
		CostOfGoods:  float64(r.CostOfGoods) / 100,
		Profit:       float64(r.Profit) / 100,
	}
}

// GetDailyReport returns the trading summary for one day
func (s *ReportService) GetDailyReport(ctx context.Context, locationID uuid.UUID, date time.Time) (*DailyReport, error) {
	result, err := s.reportRepo.GetDailyReport(ctx, locationID, date)
	if err != nil {
		return nil, err
	}
	report := toDailyReport(result)
	return &report, nil
}

// GetDailyRange returns per-day summaries over the last N days
func (s *ReportService) GetDailyRange(ctx context.Context, locationID uuid.UUID, days int) ([]DailyReport, error) {
	if days <= 0 || days > 90 {
		return nil, apperror.NewBadRequestError("Days must be between 1 and 90")
	}

	results, err := s.reportRepo.GetDailyRange(ctx, locationID, days)
	if err != nil {
		return nil, err
	}

	reports := make([]DailyReport, len(results))
	for i := range results {
		reports[i] = toDailyReport(&results[i])
	}
	return reports, nil
}

// TopProduct is one row of the best-sellers report
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Reference    string    `json:"reference"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// GetTopProducts returns the best sellers by revenue for a period
func (s *ReportService) GetTopProducts(ctx context.Context, locationID uuid.UUID, start, end time.Time, limit int) ([]TopProduct, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if !end.After(start) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}

	results, err := s.reportRepo.GetTopProducts(ctx, locationID, start, end, limit)
	if err != nil {
		return nil, err
	}

	products := make([]TopProduct, len(results))
	for i, r := range results {
		products[i] = TopProduct{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Reference:    r.Reference,
			QuantitySold: r.QuantitySold,
			Revenue:      float64(r.Revenue) / 100,
		}
	}
	return products, nil
}

// PaymentBreakdown is takings by payment method for a period
type PaymentBreakdown struct {
	Method string  `json:"method"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

// GetPaymentMethodBreakdown returns collected amounts grouped by payment method
func (s *ReportService) GetPaymentMethodBreakdown(ctx context.Context, locationID uuid.UUID, start, end time.Time) ([]PaymentBreakdown, error) {
	if !end.After(start) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}

	results, err := s.reportRepo.GetPaymentMethodBreakdown(ctx, locationID, start, end)
	if err != nil {
		return nil, err
	}

	breakdown := make([]PaymentBreakdown, len(results))
	for i, r := range results {
		breakdown[i] = PaymentBreakdown{
			Method: r.Method,
			Count:  r.Count,
			Total:  float64(r.Total) / 100,
		}
	}
	return breakdown, nil
}

// GetTotalDue returns the outstanding balance across unpaid sales
func (s *ReportService) GetTotalDue(ctx context.Context, locationID uuid.UUID) (float64, error) {
	due, err := s.reportRepo.GetTotalDue(ctx, locationID)
	if err != nil {
		return 0, err
	}
	return float64(due) / 100, nil
}
