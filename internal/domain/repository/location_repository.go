package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// LocationRepository defines the interface for store location data operations
type LocationRepository interface {
	// Create creates a new location
	Create(ctx context.Context, location *entity.Location) error

	// GetByID retrieves a location by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)

	// GetBySlug retrieves a location by slug
	GetBySlug(ctx context.Context, slug string) (*entity.Location, error)

	// Update updates an existing location
	Update(ctx context.Context, location *entity.Location) error

	// Delete soft-deletes a location
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all locations with pagination
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Location, int64, error)

	// SlugExists checks if a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Count returns the total number of locations
	Count(ctx context.Context) (int64, error)
}
