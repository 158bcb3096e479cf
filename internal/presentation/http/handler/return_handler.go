package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/request"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// ReturnHandler handles refund and exchange HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Create handles a return or exchange submission
func (h *ReturnHandler) Create(c *gin.Context) {
	var req request.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateReturnInput{
		LocationID:   GetLocationID(c),
		UserID:       GetUserID(c),
		SaleID:       req.SaleID,
		ReturnType:   enum.ReturnType(req.ReturnType),
		RefundMethod: req.RefundMethod,
		Notes:        req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.ReturnItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Reason:    item.Reason,
		})
	}
	for _, item := range req.ExchangeItems {
		input.ExchangeItems = append(input.ExchangeItems, service.ExchangeItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return processed successfully", ret)
}

// List handles listing returns
func (h *ReturnHandler) List(c *gin.Context) {
	var filter request.ReturnFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	pageParams := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	pageParams.Validate()

	params := &repository.ReturnFilterParams{
		Pagination: pageParams,
		Search:     filter.Search,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	if filter.ReturnType != "" {
		rt := enum.ReturnType(filter.ReturnType)
		params.ReturnType = &rt
	}
	if filter.SaleID != "" {
		if saleID, err := uuid.Parse(filter.SaleID); err == nil {
			params.SaleID = &saleID
		}
	}
	params.StartDate = parseDateQuery(filter.StartDate)
	params.EndDate = parseDateQuery(filter.EndDate)

	result, err := h.returnService.ListReturns(c.Request.Context(), GetLocationID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Returns retrieved successfully", result)
}

// Get handles retrieving a return with its lines
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return retrieved successfully", ret)
}
