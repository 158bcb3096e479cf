package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/pkg/apperror"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// ChequeService tracks cheques through their clearing lifecycle
type ChequeService struct {
	chequeRepo   repository.ChequeRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewChequeService creates a new cheque service
func NewChequeService(
	chequeRepo repository.ChequeRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *ChequeService {
	return &ChequeService{
		chequeRepo:   chequeRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// ChequeInput contains the data for registering a cheque
type ChequeInput struct {
	CustomerID *uuid.UUID
	SupplierID *uuid.UUID
	ChequeNo   string
	BankName   string
	Amount     float64
	IssueDate  time.Time
	DueDate    *time.Time
	Notes      *string
}

// CreateCheque registers a cheque as pending. A cheque belongs to either
// a customer or a supplier, not both.
func (s *ChequeService) CreateCheque(ctx context.Context, locationID, userID uuid.UUID, input *ChequeInput) (*entity.Cheque, error) {
	if input.ChequeNo == "" {
		return nil, apperror.NewBadRequestError("Cheque number is required")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Cheque amount must be positive")
	}
	if input.CustomerID != nil && input.SupplierID != nil {
		return nil, apperror.NewBadRequestError("Cheque cannot reference both a customer and a supplier")
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
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	cheque := &entity.Cheque{
		LocationID: locationID,
		UserID:     userID,
		CustomerID: input.CustomerID,
		SupplierID: input.SupplierID,
		ChequeNo:   input.ChequeNo,
		BankName:   input.BankName,
		Amount:     toCents(decimal.NewFromFloat(input.Amount)),
		IssueDate:  issueDate,
		DueDate:    input.DueDate,
		Status:     enum.ChequeStatusPending,
		Notes:      input.Notes,
	}
	if err := s.chequeRepo.Create(ctx, cheque); err != nil {
		return nil, err
	}
	return cheque, nil
}

// GetCheque retrieves a cheque by ID
func (s *ChequeService) GetCheque(ctx context.Context, id uuid.UUID) (*entity.Cheque, error) {
	cheque, err := s.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cheque == nil {
		return nil, apperror.NewNotFoundError("Cheque")
	}
	return cheque, nil
}

// UpdateStatus moves a cheque to cleared or bounced. Only pending cheques
// can transition.
func (s *ChequeService) UpdateStatus(ctx context.Context, locationID, id uuid.UUID, status enum.ChequeStatus) (*entity.Cheque, error) {
	if status != enum.ChequeStatusCleared && status != enum.ChequeStatusBounced {
		return nil, apperror.NewBadRequestError("Status must be cleared or bounced")
	}

	cheque, err := s.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cheque == nil || cheque.LocationID != locationID {
		return nil, apperror.NewNotFoundError("Cheque")
	}
	if cheque.Status != enum.ChequeStatusPending {
		return nil, apperror.NewBadRequestError("Only pending cheques can change status")
	}

	if err := s.chequeRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	cheque.Status = status
	return cheque, nil
}

// DeleteCheque removes a cheque record
func (s *ChequeService) DeleteCheque(ctx context.Context, locationID, id uuid.UUID) error {
	cheque, err := s.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cheque == nil || cheque.LocationID != locationID {
		return apperror.NewNotFoundError("Cheque")
	}
	return s.chequeRepo.Delete(ctx, id)
}

// ListCheques lists cheques with filtering
func (s *ChequeService) ListCheques(ctx context.Context, locationID uuid.UUID, params *repository.ChequeFilterParams) (*pagination.PaginatedResult[entity.Cheque], error) {
	cheques, total, err := s.chequeRepo.List(ctx, locationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(cheques, pag), nil
}

// GetDueSoon returns pending cheques due within the given number of days
func (s *ChequeService) GetDueSoon(ctx context.Context, locationID uuid.UUID, days int) ([]entity.Cheque, error) {
	if days <= 0 {
		days = 7
	}
	return s.chequeRepo.GetDueSoon(ctx, locationID, time.Duration(days)*24*time.Hour)
}
