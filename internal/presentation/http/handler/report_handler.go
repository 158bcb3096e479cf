package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily returns the report for a single day, today when unspecified
func (h *ReportHandler) Daily(c *gin.Context) {
	date := time.Now()
	if parsed := parseDateQuery(c.Query("date")); parsed != nil {
		date = *parsed
	}

	report, err := h.reportService.GetDailyReport(c.Request.Context(), GetLocationID(c), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// DailyRange returns day-by-day reports for the trailing N days
func (h *ReportHandler) DailyRange(c *gin.Context) {
	days := 7
	if d := c.Query("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil {
			days = parsed
		}
	}

	reports, err := h.reportService.GetDailyRange(c.Request.Context(), GetLocationID(c), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily reports retrieved successfully", reports)
}

// TopProducts returns the best sellers over a date range
func (h *ReportHandler) TopProducts(c *gin.Context) {
	start, end := reportRange(c)

	limit := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	products, err := h.reportService.GetTopProducts(c.Request.Context(), GetLocationID(c), start, end, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", products)
}

// PaymentBreakdown returns totals grouped by payment method
func (h *ReportHandler) PaymentBreakdown(c *gin.Context) {
	start, end := reportRange(c)

	breakdown, err := h.reportService.GetPaymentMethodBreakdown(c.Request.Context(), GetLocationID(c), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment breakdown retrieved successfully", breakdown)
}

// TotalDue returns the sum of outstanding balances
func (h *ReportHandler) TotalDue(c *gin.Context) {
	total, err := h.reportService.GetTotalDue(c.Request.Context(), GetLocationID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Total due retrieved successfully", gin.H{"total_due": total})
}

// reportRange reads start/end query dates, defaulting to the last 30 days
func reportRange(c *gin.Context) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if parsed := parseDateQuery(c.Query("start_date")); parsed != nil {
		start = *parsed
	}
	if parsed := parseDateQuery(c.Query("end_date")); parsed != nil {
		end = *parsed
	}
	return start, end
}
