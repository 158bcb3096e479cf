package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/pkg/apperror"
	"github.com/hmidach/librapos-api/pkg/pagination"
	"github.com/hmidach/librapos-api/pkg/utils"
)

// LocationService manages store branches
type LocationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// LocationInput contains the data for creating or updating a location
type LocationInput struct {
	Name    string
	Address *string
	Phone   *string
	TaxID   *string
}

// CreateLocation opens a new store branch
func (s *LocationService) CreateLocation(ctx context.Context, input *LocationInput) (*entity.Location, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Location name is required")
	}

	slug := utils.Slugify(input.Name)
	exists, err := s.locationRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("A location with this name already exists")
	}

	location := &entity.Location{
		Name:     input.Name,
		Slug:     slug,
		Address:  input.Address,
		Phone:    input.Phone,
		TaxID:    input.TaxID,
		IsActive: true,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetLocation retrieves a location by ID
func (s *LocationService) GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperror.NewNotFoundError("Location")
	}
	return location, nil
}

// UpdateLocation updates a store branch
func (s *LocationService) UpdateLocation(ctx context.Context, id uuid.UUID, input *LocationInput) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperror.NewNotFoundError("Location")
	}

	if input.Name != "" && input.Name != location.Name {
		slug := utils.Slugify(input.Name)
		exists, err := s.locationRepo.SlugExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperror.NewConflictError("A location with this name already exists")
		}
		location.Name = input.Name
		location.Slug = slug
	}
	if input.Address != nil {
		location.Address = input.Address
	}
	if input.Phone != nil {
		location.Phone = input.Phone
	}
	if input.TaxID != nil {
		location.TaxID = input.TaxID
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeactivateLocation closes a branch. The last active location cannot be
// removed.
func (s *LocationService) DeactivateLocation(ctx context.Context, id uuid.UUID) error {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location == nil {
		return apperror.NewNotFoundError("Location")
	}

	count, err := s.locationRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperror.NewBadRequestError("Cannot deactivate the only location")
	}

	location.IsActive = false
	return s.locationRepo.Update(ctx, location)
}

// ListLocations lists all store branches
func (s *LocationService) ListLocations(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Location], error) {
	locations, total, err := s.locationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(locations, pag), nil
}
