package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/pkg/apperror"
	"github.com/hmidach/librapos-api/pkg/printer"
)

// PrinterService renders sale and return tickets to ESC/POS and sends
// them to the configured printer. Rendered bytes are also returned so
// clients without hardware can download the ticket.
type PrinterService struct {
	device       printer.Printer
	charWidth    int
	saleRepo     repository.SaleRepository
	returnRepo   repository.ReturnRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	device printer.Printer,
	charWidth int,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
) *PrinterService {
	if charWidth <= 0 {
		charWidth = 48
	}
	return &PrinterService{
		device:       device,
		charWidth:    charWidth,
		saleRepo:     saleRepo,
		returnRepo:   returnRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

func (s *PrinterService) storeHeader(ctx context.Context, locationID uuid.UUID, receipt *printer.Receipt) error {
	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if location == nil {
		return apperror.NewNotFoundError("Location")
	}

	receipt.StoreName = location.Name
	if location.Address != nil {
		receipt.StoreAddress = *location.Address
	}
	if location.Phone != nil {
		receipt.StorePhone = *location.Phone
	}
	if location.TaxID != nil {
		receipt.StoreTaxID = *location.TaxID
	}
	return nil
}

func (s *PrinterService) cashierName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.FullName()
}

// PrintSaleTicket renders and prints the receipt for a committed sale.
// The rendered bytes are returned regardless of whether a printer is
// attached.
func (s *PrinterService) PrintSaleTicket(ctx context.Context, locationID, saleID uuid.UUID) ([]byte, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.LocationID != locationID {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &printer.Receipt{
		DocumentNo:     sale.InvoiceNo,
		Cashier:        s.cashierName(ctx, sale.UserID),
		IssuedAt:       sale.CreatedAt,
		Subtotal:       float64(sale.SubTotal) / 100,
		DiscountAmount: float64(sale.DiscountAmount) / 100,
		Total:          float64(sale.Total) / 100,
		AmountPaid:     float64(sale.Paid) / 100,
		Change:         float64(sale.ChangeAmount) / 100,
		PaymentMethod:  sale.PaymentMethod,
		FooterLines:    []string{"Thank you for your visit!"},
	}
	if err := s.storeHeader(ctx, locationID, receipt); err != nil {
		return nil, err
	}

	for _, detail := range sale.Details {
		receipt.Items = append(receipt.Items, printer.ReceiptItem{
			Name:      detail.Product.Name,
			Quantity:  detail.Quantity,
			UnitPrice: float64(detail.UnitPrice) / 100,
			Total:     float64(detail.Total) / 100,
		})
	}

	data := receipt.Render(s.charWidth)
	if err := s.device.Print(data); err != nil {
		return data, apperror.NewAppError(502, "Ticket rendered but printing failed: "+err.Error())
	}
	return data, nil
}

// PrintReturnTicket renders and prints the receipt for a return or
// exchange. Exchange merchandise appears as regular items; returned goods
// appear in the return section with the refund amount.
func (s *PrinterService) PrintReturnTicket(ctx context.Context, locationID, returnID uuid.UUID) ([]byte, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil || ret.LocationID != locationID {
		return nil, apperror.NewNotFoundError("Return")
	}

	receipt := &printer.Receipt{
		DocumentNo:  ret.ReturnNo,
		Cashier:     s.cashierName(ctx, ret.UserID),
		IssuedAt:    ret.CreatedAt,
		Total:       float64(ret.BalanceAdjustment) / 100,
		FooterLines: []string{"Thank you for your visit!"},
	}
	if err := s.storeHeader(ctx, locationID, receipt); err != nil {
		return nil, err
	}

	section := &printer.ReturnSection{
		Status:       ret.ReturnStatus.String(),
		RefundAmount: float64(ret.TotalRefund) / 100,
		RefundMethod: ret.RefundMethod,
	}
	for _, detail := range ret.Details {
		section.Items = append(section.Items, printer.ReceiptItem{
			Name:      detail.Product.Name,
			Quantity:  detail.Quantity,
			UnitPrice: float64(detail.UnitPrice) / 100,
			Total:     float64(detail.Total) / 100,
		})
	}
	receipt.Return = section

	for _, detail := range ret.ExchangeDetails {
		receipt.Items = append(receipt.Items, printer.ReceiptItem{
			Name:      detail.Product.Name,
			Quantity:  detail.Quantity,
			UnitPrice: float64(detail.UnitPrice) / 100,
			Total:     float64(detail.Total) / 100,
		})
	}

	data := receipt.Render(s.charWidth)
	if err := s.device.Print(data); err != nil {
		return data, apperror.NewAppError(502, "Ticket rendered but printing failed: "+err.Error())
	}
	return data, nil
}

// PrinterStatus reports the printer connection state
type PrinterStatus struct {
	Connected bool `json:"connected"`
}

// GetStatus reports whether the configured printer is reachable
func (s *PrinterService) GetStatus() PrinterStatus {
	return PrinterStatus{Connected: s.device.IsConnected()}
}

// TestPrint sends a short test ticket to verify the connection
func (s *PrinterService) TestPrint(ctx context.Context, locationID uuid.UUID) error {
	receipt := &printer.Receipt{
		DocumentNo:  "TEST",
		IssuedAt:    time.Now(),
		FooterLines: []string{"Printer test OK"},
	}
	if err := s.storeHeader(ctx, locationID, receipt); err != nil {
		return err
	}

	if err := s.device.Print(receipt.Render(s.charWidth)); err != nil {
		return apperror.NewAppError(502, "Test print failed: "+err.Error())
	}
	return nil
}
