package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	domainRepo "github.com/hmidach/librapos-api/internal/domain/repository"
)

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a new return repository
func NewReturnRepository(db *gorm.DB) domainRepo.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, ret *entity.Return) error {
	return r.db.WithContext(ctx).Create(ret).Error
}

func (r *returnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := r.db.WithContext(ctx).First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) GetByReturnNo(ctx context.Context, returnNo string) (*entity.Return, error) {
	var ret entity.Return
	err := r.db.WithContext(ctx).First(&ret, "return_no = ?", returnNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Product").
		Preload("ExchangeDetails").
		Preload("ExchangeDetails.Product").
		Preload("Sale").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Return, error) {
	var returns []entity.Return
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("sale_id = ?", saleID).
		Find(&returns).Error
	return returns, err
}

func (r *returnRepository) List(ctx context.Context, locationID uuid.UUID, params *domainRepo.ReturnFilterParams) ([]entity.Return, int64, error) {
	var returns []entity.Return
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Return{})
	if !params.SkipLocationFilter {
		query = query.Where("location_id = ?", locationID)
	}

	if params.Search != "" {
		query = query.Where("return_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.ReturnType != nil {
		query = query.Where("return_type = ?", *params.ReturnType)
	}

	if params.SaleID != nil {
		query = query.Where("sale_id = ?", *params.SaleID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Sale").
		Order(sortBy + " " + sortOrder).
		Find(&returns).Error

	return returns, total, err
}

func (r *returnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Return{}, "id = ?", id).Error
}

func (r *returnRepository) CountByDate(ctx context.Context, locationID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	err := r.db.WithContext(ctx).Model(&entity.Return{}).
		Unscoped().
		Where("location_id = ? AND created_at >= ? AND created_at < ?",
			locationID, dayStart, dayStart.Add(24*time.Hour)).
		Count(&count).Error
	return count, err
}
