package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/request"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
)

// TransferHandler handles stock transfer HTTP requests
type TransferHandler struct {
	transferService *service.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Create handles creating a stock transfer out of the current location
func (h *TransferHandler) Create(c *gin.Context) {
	var req request.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateTransferInput{
		FromLocationID: GetLocationID(c),
		ToLocationID:   req.ToLocationID,
		UserID:         GetUserID(c),
		Notes:          req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.TransferItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transfer created successfully", transfer)
}

// Receive handles accepting an inbound transfer at the current location
func (h *TransferHandler) Receive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.ReceiveTransfer(c.Request.Context(), GetLocationID(c), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer received successfully", transfer)
}

// Cancel handles cancelling a pending outbound transfer
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	if err := h.transferService.CancelTransfer(c.Request.Context(), GetLocationID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer cancelled successfully", nil)
}

// Get handles retrieving a transfer with its lines
func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer retrieved successfully", transfer)
}

// List handles listing transfers touching the current location
func (h *TransferHandler) List(c *gin.Context) {
	params := &repository.TransferFilterParams{
		Pagination: bindPagination(c),
		Direction:  c.Query("direction"),
	}
	if s := c.Query("status"); s != "" {
		if status, ok := enum.ParseTransferStatus(s); ok {
			params.Status = &status
		}
	}
	params.StartDate = parseDateQuery(c.Query("start_date"))
	params.EndDate = parseDateQuery(c.Query("end_date"))

	result, err := h.transferService.ListTransfers(c.Request.Context(), GetLocationID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transfers retrieved successfully", result)
}
