package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/request"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
)

// ChequeHandler handles cheque tracking HTTP requests
type ChequeHandler struct {
	chequeService *service.ChequeService
}

// NewChequeHandler creates a new cheque handler
func NewChequeHandler(chequeService *service.ChequeService) *ChequeHandler {
	return &ChequeHandler{chequeService: chequeService}
}

// Create handles registering a cheque
func (h *ChequeHandler) Create(c *gin.Context) {
	var req request.CreateChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	issueDate := time.Now()
	if parsed := parseDateQuery(req.IssueDate); parsed != nil {
		issueDate = *parsed
	}

	input := &service.ChequeInput{
		CustomerID: req.CustomerID,
		SupplierID: req.SupplierID,
		ChequeNo:   req.ChequeNo,
		BankName:   req.BankName,
		Amount:     req.Amount,
		IssueDate:  issueDate,
		Notes:      req.Notes,
	}
	if req.DueDate != nil {
		input.DueDate = parseDateQuery(*req.DueDate)
	}

	cheque, err := h.chequeService.CreateCheque(c.Request.Context(), GetLocationID(c), GetUserID(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cheque registered successfully", cheque)
}

// Get handles retrieving a cheque
func (h *ChequeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid cheque ID")
		return
	}

	cheque, err := h.chequeService.GetCheque(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cheque retrieved successfully", cheque)
}

// UpdateStatus moves a pending cheque to cleared or bounced
func (h *ChequeHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid cheque ID")
		return
	}

	var req request.UpdateChequeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cheque, err := h.chequeService.UpdateStatus(c.Request.Context(), GetLocationID(c), id, enum.ChequeStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cheque status updated successfully", cheque)
}

// Delete handles deleting a cheque
func (h *ChequeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid cheque ID")
		return
	}

	if err := h.chequeService.DeleteCheque(c.Request.Context(), GetLocationID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing cheques
func (h *ChequeHandler) List(c *gin.Context) {
	params := &repository.ChequeFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		status := enum.ChequeStatus(s)
		params.Status = &status
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		if id, err := uuid.Parse(customerID); err == nil {
			params.CustomerID = &id
		}
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		if id, err := uuid.Parse(supplierID); err == nil {
			params.SupplierID = &id
		}
	}
	params.StartDate = parseDateQuery(c.Query("start_date"))
	params.EndDate = parseDateQuery(c.Query("end_date"))

	result, err := h.chequeService.ListCheques(c.Request.Context(), GetLocationID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cheques retrieved successfully", result)
}

// DueSoon lists pending cheques due within the coming days
func (h *ChequeHandler) DueSoon(c *gin.Context) {
	days := 0
	if d := c.Query("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil {
			days = parsed
		}
	}

	cheques, err := h.chequeService.GetDueSoon(c.Request.Context(), GetLocationID(c), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Due cheques retrieved successfully", cheques)
}
