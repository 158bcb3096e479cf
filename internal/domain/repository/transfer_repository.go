package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// TransferRepository defines the interface for stock transfer data operations
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TransferStatus) error
	// MarkReceived sets the status to received and records the receive time
	MarkReceived(ctx context.Context, id uuid.UUID, receivedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, locationID uuid.UUID, params *TransferFilterParams) ([]entity.StockTransfer, int64, error)
	CountByDate(ctx context.Context, date time.Time) (int64, error)
}

// TransferFilterParams contains filtering parameters for transfer queries
type TransferFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.TransferStatus
	// Direction filters transfers where the location is the sender ("out"),
	// the receiver ("in"), or either (empty)
	Direction string
	StartDate *time.Time
	EndDate   *time.Time
}
