package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// ChequeRepository defines the interface for cheque data operations
type ChequeRepository interface {
	Create(ctx context.Context, cheque *entity.Cheque) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cheque, error)
	Update(ctx context.Context, cheque *entity.Cheque) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ChequeStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, locationID uuid.UUID, params *ChequeFilterParams) ([]entity.Cheque, int64, error)
	// GetDueSoon returns pending cheques whose due date falls within the window
	GetDueSoon(ctx context.Context, locationID uuid.UUID, within time.Duration) ([]entity.Cheque, error)
}

// ChequeFilterParams contains filtering parameters for cheque queries
type ChequeFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ChequeStatus
	CustomerID *uuid.UUID
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
