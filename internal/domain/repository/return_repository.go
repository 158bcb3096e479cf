package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// ReturnRepository defines the interface for return and exchange data operations
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	GetByReturnNo(ctx context.Context, returnNo string) (*entity.Return, error)
	// GetWithDetails loads a return with its returned and exchanged lines
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	// GetBySaleID returns all committed returns against a sale, needed to
	// compute how much of each line is still returnable
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Return, error)
	List(ctx context.Context, locationID uuid.UUID, params *ReturnFilterParams) ([]entity.Return, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByDate(ctx context.Context, locationID uuid.UUID, date time.Time) (int64, error)
}

// ReturnFilterParams contains filtering parameters for return queries
type ReturnFilterParams struct {
	Pagination         *pagination.PaginationParams
	Search             string
	ReturnType         *enum.ReturnType
	SaleID             *uuid.UUID
	StartDate          *time.Time
	EndDate            *time.Time
	SortBy             string
	SortOrder          string
	SkipLocationFilter bool
}
