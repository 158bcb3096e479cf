package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/request"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printing HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Print renders and prints a sale or return ticket. The rendered ticket
// text is always returned so the client can fall back to browser printing.
func (h *PrinterHandler) Print(c *gin.Context) {
	var req request.PrintTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	var ticket []byte
	switch req.Type {
	case "sale":
		ticket, err = h.printerService.PrintSaleTicket(c.Request.Context(), GetLocationID(c), id)
	case "return":
		ticket, err = h.printerService.PrintReturnTicket(c.Request.Context(), GetLocationID(c), id)
	}
	if err != nil {
		if len(ticket) > 0 {
			// Rendering succeeded but the device refused the job
			response.ErrorWithData(c, 502, err.Error(), gin.H{"ticket": string(ticket)})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket printed successfully", gin.H{"ticket": string(ticket)})
}

// Status reports whether the receipt printer is reachable
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// Test prints a short test ticket
func (h *PrinterHandler) Test(c *gin.Context) {
	if err := h.printerService.TestPrint(c.Request.Context(), GetLocationID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test ticket printed successfully", nil)
}
