package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
	domainRepo "github.com/hmidach/librapos-api/internal/domain/repository"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new stock transfer repository
func NewTransferRepository(db *gorm.DB) domainRepo.TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *entity.StockTransfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

func (r *transferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	var transfer entity.StockTransfer
	err := r.db.WithContext(ctx).First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *transferRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	var transfer entity.StockTransfer
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("FromLocation").
		Preload("ToLocation").
		First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *transferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TransferStatus) error {
	return r.db.WithContext(ctx).Model(&entity.StockTransfer{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *transferRepository) MarkReceived(ctx context.Context, id uuid.UUID, receivedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.StockTransfer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      enum.TransferStatusReceived,
			"received_at": receivedAt,
		}).Error
}

func (r *transferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StockTransfer{}, "id = ?", id).Error
}

func (r *transferRepository) List(ctx context.Context, locationID uuid.UUID, params *domainRepo.TransferFilterParams) ([]entity.StockTransfer, int64, error) {
	var transfers []entity.StockTransfer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockTransfer{})

	switch params.Direction {
	case "out":
		query = query.Where("from_location_id = ?", locationID)
	case "in":
		query = query.Where("to_location_id = ?", locationID)
	default:
		query = query.Where("from_location_id = ? OR to_location_id = ?", locationID, locationID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
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

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("FromLocation").
		Preload("ToLocation").
		Order("created_at DESC").
		Find(&transfers).Error

	return transfers, total, err
}

func (r *transferRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	err := r.db.WithContext(ctx).Model(&entity.StockTransfer{}).
		Unscoped().
		Where("created_at >= ? AND created_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Count(&count).Error
	return count, err
}
