package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error)
	// GetWithDetails loads a sale with its line items and product info
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, locationID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	GetDueSales(ctx context.Context, locationID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	// CountByDate returns the number of sales created on a given day,
	// used for sequential invoice numbers
	CountByDate(ctx context.Context, locationID uuid.UUID, date time.Time) (int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination         *pagination.PaginationParams
	Search             string
	PaymentStatus      *enum.PaymentStatus
	CustomerID         *uuid.UUID
	StartDate          *time.Time
	EndDate            *time.Time
	IncludeCancelled   bool
	SortBy             string
	SortOrder          string
	SkipLocationFilter bool
}

// SaleDetailRepository defines the interface for sale line item operations
type SaleDetailRepository interface {
	CreateBatch(ctx context.Context, details []entity.SaleDetail) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleDetail, error)
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error
}
