package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/request"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// SaleHandler handles checkout and sale ledger HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles a checkout request
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateSaleInput{
		LocationID:          GetLocationID(c),
		UserID:              GetUserID(c),
		CustomerID:          req.CustomerID,
		GlobalDiscountType:  toDiscountType(req.GlobalDiscountType),
		GlobalDiscountValue: req.GlobalDiscountValue,
		AmountPaid:          req.AmountPaid,
		PaymentMethod:       req.PaymentMethod,
		AllowPartial:        req.AllowPartial,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.SaleItemInput{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			DiscountType:  toDiscountType(item.DiscountType),
			DiscountValue: item.DiscountValue,
		})
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	pageParams := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	pageParams.Validate()

	params := &repository.SaleFilterParams{
		Pagination:       pageParams,
		Search:           filter.Search,
		IncludeCancelled: filter.IncludeCancelled,
		SortBy:           filter.SortBy,
		SortOrder:        filter.SortOrder,
	}
	if filter.PaymentStatus != "" {
		status := enum.PaymentStatus(filter.PaymentStatus)
		params.PaymentStatus = &status
	}
	if filter.CustomerID != "" {
		if custID, err := uuid.Parse(filter.CustomerID); err == nil {
			params.CustomerID = &custID
		}
	}
	params.StartDate = parseDateQuery(filter.StartDate)
	params.EndDate = parseDateQuery(filter.EndDate)

	result, err := h.saleService.ListSales(c.Request.Context(), GetLocationID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles retrieving a sale with its lines
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Cancel handles cancelling a sale and restoring its stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.CancelSale(c.Request.Context(), GetLocationID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", nil)
}

// ListDue handles listing sales with an outstanding balance
func (h *SaleHandler) ListDue(c *gin.Context) {
	result, err := h.saleService.GetDueSales(c.Request.Context(), GetLocationID(c), bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Due sales retrieved successfully", result)
}

// PayDue handles recording a payment against an outstanding balance
func (h *SaleHandler) PayDue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.PayDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.PayDue(c.Request.Context(), GetLocationID(c), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", sale)
}

// toDiscountType converts the wire discount type to its enum form
func toDiscountType(s *string) *enum.DiscountType {
	if s == nil || *s == "" {
		return nil
	}
	dt := enum.DiscountType(*s)
	return &dt
}

// parseDateQuery parses a YYYY-MM-DD query value, nil when absent or malformed
func parseDateQuery(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
