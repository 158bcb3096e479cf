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

// ReturnService reconciles refunds and exchanges against committed sales.
// The selection rules live in the pos engine; this service binds them to
// the sale ledger and stock.
type ReturnService struct {
	returnRepo  repository.ReturnRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewReturnService creates a new return service
func NewReturnService(
	returnRepo repository.ReturnRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *ReturnService {
	return &ReturnService{
		returnRepo:  returnRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// ReturnItemInput selects one sale line for return
type ReturnItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Reason    string
}

// ExchangeItemInput is one line of new merchandise in an exchange
type ExchangeItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateReturnInput is the return/exchange submission request
type CreateReturnInput struct {
	LocationID    uuid.UUID
	UserID        uuid.UUID
	SaleID        uuid.UUID
	ReturnType    enum.ReturnType
	Items         []ReturnItemInput
	ExchangeItems []ExchangeItemInput
	RefundMethod  string
	Notes         string
}

// CreateReturn validates the selection against the original sale, nets the
// refund and exchange values, adjusts stock and persists the return. The
// returnable quantity of each line is the purchased quantity minus what
// earlier returns already took back.
func (s *ReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*entity.Return, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.LocationID != input.LocationID {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Cancelled {
		return nil, apperror.NewBadRequestError("Cannot return items from a cancelled sale")
	}

	// Subtract quantities taken back by earlier returns against this sale
	alreadyReturned := make(map[uuid.UUID]int)
	priorReturns, err := s.returnRepo.GetBySaleID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	for _, prior := range priorReturns {
		for _, detail := range prior.Details {
			alreadyReturned[detail.ProductID] += detail.Quantity
		}
	}

	originals := make([]pos.OriginalSaleItem, 0, len(sale.Details))
	for _, detail := range sale.Details {
		remaining := detail.Quantity - alreadyReturned[detail.ProductID]
		if remaining < 0 {
			remaining = 0
		}
		name := detail.Product.Name
		if name == "" {
			name = detail.ProductID.String()
		}
		originals = append(originals, pos.OriginalSaleItem{
			ProductID:    detail.ProductID,
			Name:         name,
			UnitPrice:    decimal.New(detail.UnitPrice, -2),
			PurchasedQty: remaining,
		})
	}

	session, err := pos.NewReturnSession(input.SaleID, input.ReturnType, originals)
	if err != nil {
		return nil, returnError(err)
	}

	for _, item := range input.Items {
		if err := session.SetReturnQuantity(item.ProductID, item.Quantity); err != nil {
			return nil, returnError(err)
		}
		if err := session.SetReason(item.ProductID, item.Reason); err != nil {
			return nil, returnError(err)
		}
	}
	session.SetNotes(input.Notes)

	// Resolve exchange merchandise against the catalog
	exchangeProducts := make(map[uuid.UUID]*entity.Product)
	if len(input.ExchangeItems) > 0 {
		ids := make([]uuid.UUID, len(input.ExchangeItems))
		for i, item := range input.ExchangeItems {
			ids[i] = item.ProductID
		}
		products, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range products {
			exchangeProducts[products[i].ID] = &products[i]
		}

		for _, item := range input.ExchangeItems {
			product, exists := exchangeProducts[item.ProductID]
			if !exists || product.LocationID != input.LocationID {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}
			err := session.AddExchangeItem(pos.ExchangeItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: decimal.New(product.SellingPrice, -2),
				Quantity:  item.Quantity,
			})
			if err != nil {
				return nil, returnError(err)
			}
		}
	}

	var created *entity.Return
	_, err = session.Submit(func(payload *pos.ReturnPayload) error {
		ret, err := s.persistReturn(ctx, input, payload)
		if err != nil {
			return err
		}
		created = ret
		return nil
	})
	if err != nil {
		return nil, returnError(err)
	}

	return s.returnRepo.GetWithDetails(ctx, created.ID)
}

// persistReturn commits the payload: returned units go back to stock,
// exchanged units come out of it, then the return record is written.
func (s *ReturnService) persistReturn(ctx context.Context, input *CreateReturnInput, payload *pos.ReturnPayload) (*entity.Return, error) {
	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range payload.ReturnItems {
		stockIncrements[item.ProductID] += item.Quantity
	}

	stockDecrements := make(map[uuid.UUID]int)
	for _, item := range payload.ExchangeItems {
		stockDecrements[item.ProductID] += item.Quantity
	}

	if len(stockDecrements) > 0 {
		failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
		if err != nil {
			return nil, err
		}
		if len(failedIDs) > 0 {
			return nil, apperror.NewUnprocessableError("Insufficient stock for exchange items")
		}
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		if len(stockDecrements) > 0 {
			_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		}
		return nil, err
	}

	now := time.Now()
	seq, err := s.returnRepo.CountByDate(ctx, input.LocationID, now)
	if err != nil {
		seq = 0
	}

	ret := &entity.Return{
		LocationID:        input.LocationID,
		UserID:            input.UserID,
		SaleID:            input.SaleID,
		ReturnNo:          utils.GenerateReturnNo(now, seq),
		ReturnType:        payload.ReturnType,
		ReturnStatus:      payload.ReturnStatus,
		TotalRefund:       toCents(payload.TotalRefundAmount),
		TotalExchange:     toCents(payload.TotalExchangeAmount),
		BalanceAdjustment: toCents(payload.BalanceAdjustment),
		RefundMethod:      input.RefundMethod,
		Notes:             payload.Notes,
	}
	for _, item := range payload.ReturnItems {
		ret.Details = append(ret.Details, entity.ReturnDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: toCents(item.UnitPrice),
			Total:     toCents(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			Reason:    item.Reason,
		})
	}
	for _, item := range payload.ExchangeItems {
		ret.ExchangeDetails = append(ret.ExchangeDetails, entity.ExchangeDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: toCents(item.UnitPrice),
			Total:     toCents(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}

	if err := s.returnRepo.Create(ctx, ret); err != nil {
		// Roll the stock movements back so a failed write leaves
		// quantities untouched
		_, _ = s.productRepo.AtomicDecrementBatch(ctx, stockIncrements)
		if len(stockDecrements) > 0 {
			_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		}
		return nil, err
	}

	return ret, nil
}

// GetReturn retrieves a return with its lines
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	return ret, nil
}

// ListReturns lists returns with filtering
func (s *ReturnService) ListReturns(ctx context.Context, locationID uuid.UUID, params *repository.ReturnFilterParams) (*pagination.PaginatedResult[entity.Return], error) {
	returns, total, err := s.returnRepo.List(ctx, locationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// returnError maps return engine errors onto HTTP-aware app errors
func returnError(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	if failed, ok := err.(*pos.SubmissionFailedError); ok {
		inner := failed.Unwrap()
		if apperror.IsAppError(inner) {
			return inner
		}
		return apperror.NewAppError(502, failed.Error())
	}
	return apperror.NewUnprocessableError(err.Error())
}
