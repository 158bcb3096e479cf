package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/pkg/apperror"
	"github.com/hmidach/librapos-api/pkg/pagination"
	"github.com/hmidach/librapos-api/pkg/utils"
)

// TransferService moves stock between store locations. Stock leaves the
// sender when the transfer is created and lands at the receiver when it
// is marked received. Product rows are per-location, so the receiving
// side is matched by reference.
type TransferService struct {
	transferRepo repository.TransferRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewTransferService creates a new transfer service
func NewTransferService(
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// TransferItemInput is one product line in a transfer request
type TransferItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateTransferInput is the stock transfer request
type CreateTransferInput struct {
	FromLocationID uuid.UUID
	ToLocationID   uuid.UUID
	UserID         uuid.UUID
	Items          []TransferItemInput
	Notes          *string
}

// CreateTransfer creates a pending transfer and removes the transferred
// quantities from the sending location's stock
func (s *TransferService) CreateTransfer(ctx context.Context, input *CreateTransferInput) (*entity.StockTransfer, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Transfer must contain at least one item")
	}
	if input.FromLocationID == input.ToLocationID {
		return nil, apperror.NewBadRequestError("Source and destination locations must differ")
	}

	destination, err := s.locationRepo.GetByID(ctx, input.ToLocationID)
	if err != nil {
		return nil, err
	}
	if destination == nil || !destination.IsActive {
		return nil, apperror.NewNotFoundError("Destination location")
	}

	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
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

	stockDecrements := make(map[uuid.UUID]int)
	items := make([]entity.StockTransferItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists || product.LocationID != input.FromLocationID {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		stockDecrements[item.ProductID] += item.Quantity
		items = append(items, entity.StockTransferItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
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
	seq, err := s.transferRepo.CountByDate(ctx, now)
	if err != nil {
		seq = 0
	}

	transfer := &entity.StockTransfer{
		TransferNo:     utils.GenerateTransferNo(now, seq),
		FromLocationID: input.FromLocationID,
		ToLocationID:   input.ToLocationID,
		UserID:         input.UserID,
		Status:         enum.TransferStatusPending,
		Notes:          input.Notes,
		Items:          items,
	}
	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		// Put the stock back at the source, the transfer was never recorded
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	return s.transferRepo.GetWithItems(ctx, transfer.ID)
}

// ReceiveTransfer lands a pending transfer at the destination. Each item
// is matched to the destination's catalog by product reference; a product
// without a match at the destination is created there.
func (s *TransferService) ReceiveTransfer(ctx context.Context, locationID, transferID, userID uuid.UUID) (*entity.StockTransfer, error) {
	transfer, err := s.transferRepo.GetWithItems(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil || transfer.ToLocationID != locationID {
		return nil, apperror.NewNotFoundError("Transfer")
	}
	if transfer.Status != enum.TransferStatusPending {
		return nil, apperror.NewBadRequestError("Only pending transfers can be received")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range transfer.Items {
		source, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		var local *entity.Product
		if source.Reference != nil {
			local, err = s.productRepo.GetByReference(ctx, locationID, *source.Reference)
			if err != nil {
				return nil, err
			}
		}

		if local == nil {
			local = &entity.Product{
				LocationID:    locationID,
				UserID:        userID,
				Name:          source.Name,
				Slug:          utils.Slugify(source.Name) + "-" + uuid.New().String()[:8],
				Code:          source.Code + "-" + uuid.New().String()[:4],
				Barcode:       source.Barcode,
				Reference:     source.Reference,
				Author:        source.Author,
				Publisher:     source.Publisher,
				QuantityAlert: source.QuantityAlert,
				BuyingPrice:   source.BuyingPrice,
				SellingPrice:  source.SellingPrice,
			}
			if err := s.productRepo.Create(ctx, local); err != nil {
				return nil, err
			}
		}
		stockIncrements[local.ID] += item.Quantity
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	if err := s.transferRepo.MarkReceived(ctx, transferID, time.Now()); err != nil {
		return nil, err
	}

	return s.transferRepo.GetWithItems(ctx, transferID)
}

// CancelTransfer cancels a pending transfer and restores the sender's stock
func (s *TransferService) CancelTransfer(ctx context.Context, locationID, transferID uuid.UUID) error {
	transfer, err := s.transferRepo.GetWithItems(ctx, transferID)
	if err != nil {
		return err
	}
	if transfer == nil || transfer.FromLocationID != locationID {
		return apperror.NewNotFoundError("Transfer")
	}
	if transfer.Status != enum.TransferStatusPending {
		return apperror.NewBadRequestError("Only pending transfers can be cancelled")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range transfer.Items {
		stockIncrements[item.ProductID] += item.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	return s.transferRepo.UpdateStatus(ctx, transferID, enum.TransferStatusCancelled)
}

// GetTransfer retrieves a transfer with its items
func (s *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	transfer, err := s.transferRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, apperror.NewNotFoundError("Transfer")
	}
	return transfer, nil
}

// ListTransfers lists transfers touching the location
func (s *TransferService) ListTransfers(ctx context.Context, locationID uuid.UUID, params *repository.TransferFilterParams) (*pagination.PaginatedResult[entity.StockTransfer], error) {
	transfers, total, err := s.transferRepo.List(ctx, locationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transfers, pag), nil
}
