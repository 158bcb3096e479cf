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
	"github.com/hmidach/librapos-api/pkg/apperror"
	"github.com/hmidach/librapos-api/pkg/pagination"
	"github.com/hmidach/librapos-api/pkg/utils"
)

// PurchaseService handles supplier purchases. Stock only moves when a
// pending purchase is marked received.
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// PurchaseItemInput is one line of a purchase order
type PurchaseItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  float64
}

// CreatePurchaseInput is the purchase order request
type CreatePurchaseInput struct {
	LocationID uuid.UUID
	UserID     uuid.UUID
	SupplierID *uuid.UUID
	Date       time.Time
	Items      []PurchaseItemInput
}

// CreatePurchase records a pending purchase order
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Purchase must contain at least one item")
	}

	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.UnitCost < 0 {
			return nil, apperror.NewBadRequestError("Unit cost cannot be negative")
		}
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

	var totalCents int64
	details := make([]entity.PurchaseDetail, 0, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists || product.LocationID != input.LocationID {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		unitCost := toCents(decimal.NewFromFloat(item.UnitCost))
		lineTotal := unitCost * int64(item.Quantity)
		totalCents += lineTotal
		details = append(details, entity.PurchaseDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  unitCost,
			Total:     lineTotal,
		})
	}

	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	seq, err := s.purchaseRepo.CountByDate(ctx, input.LocationID, now)
	if err != nil {
		seq = 0
	}

	purchase := &entity.Purchase{
		LocationID:  input.LocationID,
		UserID:      input.UserID,
		SupplierID:  input.SupplierID,
		Date:        date,
		PurchaseNo:  utils.GeneratePurchaseNo(now, seq),
		Status:      enum.PurchaseStatusPending,
		TotalAmount: totalCents,
		Details:     details,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchase.ID)
}

// ReceivePurchase marks a pending purchase as received and adds the
// purchased quantities to stock. The unit cost becomes the product's new
// buying price.
func (s *PurchaseService) ReceivePurchase(ctx context.Context, locationID, purchaseID uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.LocationID != locationID {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status == enum.PurchaseStatusReceived {
		return nil, apperror.NewBadRequestError("Purchase has already been received")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, detail := range purchase.Details {
		stockIncrements[detail.ProductID] += detail.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	for _, detail := range purchase.Details {
		product, err := s.productRepo.GetByID(ctx, detail.ProductID)
		if err != nil || product == nil {
			continue
		}
		product.BuyingPrice = detail.UnitCost
		_ = s.productRepo.Update(ctx, product)
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, purchaseID, enum.PurchaseStatusReceived); err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchaseID)
}

// GetPurchase retrieves a purchase with its lines
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// DeletePurchase removes a pending purchase. Received purchases cannot be
// deleted because their stock has already moved.
func (s *PurchaseService) DeletePurchase(ctx context.Context, locationID, id uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase == nil || purchase.LocationID != locationID {
		return apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status == enum.PurchaseStatusReceived {
		return apperror.NewBadRequestError("Received purchases cannot be deleted")
	}
	return s.purchaseRepo.Delete(ctx, id)
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, locationID uuid.UUID, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, locationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}
