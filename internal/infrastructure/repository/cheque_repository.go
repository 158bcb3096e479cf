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

type chequeRepository struct {
	db *gorm.DB
}

// NewChequeRepository creates a new cheque repository
func NewChequeRepository(db *gorm.DB) domainRepo.ChequeRepository {
	return &chequeRepository{db: db}
}

func (r *chequeRepository) Create(ctx context.Context, cheque *entity.Cheque) error {
	return r.db.WithContext(ctx).Create(cheque).Error
}

func (r *chequeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cheque, error) {
	var cheque entity.Cheque
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Supplier").
		First(&cheque, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cheque, err
}

func (r *chequeRepository) Update(ctx context.Context, cheque *entity.Cheque) error {
	return r.db.WithContext(ctx).Save(cheque).Error
}

func (r *chequeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ChequeStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Cheque{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *chequeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Cheque{}, "id = ?", id).Error
}

func (r *chequeRepository) List(ctx context.Context, locationID uuid.UUID, params *domainRepo.ChequeFilterParams) ([]entity.Cheque, int64, error) {
	var cheques []entity.Cheque
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Cheque{}).
		Where("location_id = ?", locationID)

	if params.Search != "" {
		query = query.Where("cheque_no ILIKE ? OR bank_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if params.StartDate != nil {
		query = query.Where("issue_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("issue_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Supplier").
		Order("due_date ASC NULLS LAST, created_at DESC").
		Find(&cheques).Error

	return cheques, total, err
}

func (r *chequeRepository) GetDueSoon(ctx context.Context, locationID uuid.UUID, within time.Duration) ([]entity.Cheque, error) {
	var cheques []entity.Cheque
	deadline := time.Now().Add(within)
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND status = ? AND due_date IS NOT NULL AND due_date <= ?",
			locationID, enum.ChequeStatusPending, deadline).
		Preload("Customer").
		Preload("Supplier").
		Order("due_date ASC").
		Find(&cheques).Error
	return cheques, err
}
