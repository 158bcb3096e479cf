package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/internal/pos"
	"github.com/hmidach/librapos-api/pkg/apperror"
	"github.com/hmidach/librapos-api/pkg/pagination"
	"github.com/hmidach/librapos-api/pkg/utils"
)

// SaleService drives the checkout flow: it assembles a cart from the
// catalog, reconciles the payment, decrements stock atomically and
// persists the committed sale.
type SaleService struct {
	saleRepo       repository.SaleRepository
	saleDetailRepo repository.SaleDetailRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleDetailRepo repository.SaleDetailRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		saleDetailRepo: saleDetailRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
	}
}

// SaleItemInput is one cart line of a checkout request
type SaleItemInput struct {
	ProductID     uuid.UUID
	Quantity      int
	DiscountType  *enum.DiscountType
	DiscountValue *float64
}

// CreateSaleInput is the checkout request
type CreateSaleInput struct {
	LocationID          uuid.UUID
	UserID              uuid.UUID
	CustomerID          *uuid.UUID
	Items               []SaleItemInput
	GlobalDiscountType  *enum.DiscountType
	GlobalDiscountValue *float64
	AmountPaid          float64
	PaymentMethod       string
	AllowPartial        bool
}

// CreateSale runs the full checkout: cart assembly with stock ceilings and
// discount clamping, payment classification, atomic stock decrement and
// persistence of the sale with its lines.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must contain at least one item")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Assemble the cart. The engine enforces stock ceilings, quantity
	// validation and discount clamping.
	cart := pos.NewCart()
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if product.LocationID != input.LocationID {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		err := cart.AddItem(pos.Product{
			ID:           product.ID,
			Name:         product.Name,
			UnitPrice:    decimal.New(product.SellingPrice, -2),
			AvailableQty: product.Quantity,
		}, item.Quantity)
		if err != nil {
			return nil, checkoutError(err)
		}

		if item.DiscountType != nil && item.DiscountValue != nil {
			err := cart.SetLineDiscount(product.ID, *item.DiscountType,
				decimal.NewFromFloat(*item.DiscountValue))
			if err != nil {
				return nil, checkoutError(err)
			}
		}
	}

	if input.GlobalDiscountType != nil && input.GlobalDiscountValue != nil {
		err := cart.SetGlobalDiscount(*input.GlobalDiscountType,
			decimal.NewFromFloat(*input.GlobalDiscountValue))
		if err != nil {
			return nil, checkoutError(err)
		}
	}

	payload, err := pos.BuildSalePayload(cart, decimal.NewFromFloat(input.AmountPaid), input.PaymentMethod)
	if err != nil {
		return nil, checkoutError(err)
	}

	payment, err := pos.NewPayment(cart.Total(), decimal.NewFromFloat(input.AmountPaid))
	if err != nil {
		return nil, checkoutError(err)
	}
	if !payment.CanFinalize(input.AllowPartial) {
		return nil, apperror.NewUnprocessableError("Tendered amount does not cover the sale total")
	}

	// Atomically decrement stock. If any product has insufficient stock the
	// whole batch rolls back.
	stockDecrements := make(map[uuid.UUID]int)
	for _, line := range cart.Lines() {
		stockDecrements[line.ProductID] = line.Quantity
	}

	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewUnprocessableError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	now := time.Now()
	seq, err := s.saleRepo.CountByDate(ctx, input.LocationID, now)
	if err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	sale := &entity.Sale{
		LocationID:     input.LocationID,
		UserID:         input.UserID,
		CustomerID:     input.CustomerID,
		SaleDate:       now,
		InvoiceNo:      utils.GenerateInvoiceNo(now, seq),
		TotalProducts:  cart.TotalQuantity(),
		SubTotal:       toCents(payload.Subtotal),
		DiscountAmount: toCents(cart.GlobalDiscountAmount()),
		Total:          toCents(payload.Total),
		PaymentMethod:  input.PaymentMethod,
		PaymentStatus:  payload.PaymentStatus,
		Paid:           toCents(payload.AmountPaid),
		ChangeAmount:   toCents(payload.ChangeAmount),
		Due:            toCents(payment.Due()),
	}
	if input.GlobalDiscountType != nil && input.GlobalDiscountValue != nil {
		sale.DiscountType = input.GlobalDiscountType
		sale.DiscountValue = toCents(decimal.NewFromFloat(*input.GlobalDiscountValue))
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented, restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	details := make([]entity.SaleDetail, 0, len(payload.Items))
	for _, line := range cart.Lines() {
		detail := entity.SaleDetail{
			SaleID:    sale.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: toCents(line.UnitPrice),
			Total:     toCents(line.Total()),
		}
		if line.Discount != nil {
			dt := line.Discount.Type
			detail.DiscountType = &dt
			detail.DiscountValue = toCents(line.Discount.Value)
		}
		details = append(details, detail)
	}

	if err := s.saleDetailRepo.CreateBatch(ctx, details); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// GetSale retrieves a sale with its lines
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, locationID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, locationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// CancelSale cancels a sale and restores its stock
func (s *SaleService) CancelSale(ctx context.Context, locationID, saleID uuid.UUID) error {
	sale, err := s.saleRepo.GetWithDetails(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil || sale.LocationID != locationID {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.Cancelled {
		return apperror.NewBadRequestError("Sale is already cancelled")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, detail := range sale.Details {
		stockIncrements[detail.ProductID] = detail.Quantity
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	return s.saleRepo.Cancel(ctx, saleID)
}

// GetDueSales returns sales with an outstanding balance
func (s *SaleService) GetDueSales(ctx context.Context, locationID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.GetDueSales(ctx, locationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// PayDue records a payment towards a sale's outstanding balance
func (s *SaleService) PayDue(ctx context.Context, locationID, saleID uuid.UUID, amount float64) (*entity.Sale, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.LocationID != locationID {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Cancelled {
		return nil, apperror.NewBadRequestError("Sale is cancelled")
	}

	amountCents := toCents(decimal.NewFromFloat(amount))
	sale.Paid += amountCents
	sale.Due -= amountCents

	if sale.Due <= 0 {
		sale.ChangeAmount = -sale.Due
		sale.Due = 0
	}
	sale.PaymentStatus = pos.ClassifyPaymentStatus(
		decimal.New(sale.Total, -2), decimal.New(sale.Paid, -2))

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// toCents converts a decimal amount to int64 cents for storage
func toCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// checkoutError maps cart engine errors onto HTTP-aware app errors while
// keeping the engine's message
func checkoutError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.NewUnprocessableError(err.Error())
}
