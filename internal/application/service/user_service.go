package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/pkg/apperror"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// UserService handles staff account management
type UserService struct {
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, locationRepo repository.LocationRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		locationRepo: locationRepo,
	}
}

func validRole(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleManager || role == entity.RoleCashier
}

// CreateUserInput contains the data for creating a staff account
type CreateUserInput struct {
	LocationID uuid.UUID
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Role       string
}

// CreateUser creates a staff account with a hashed password
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if input.FirstName == "" || input.Email == "" {
		return nil, apperror.NewBadRequestError("First name and email are required")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
	}
	if input.Role != "" && !validRole(input.Role) {
		return nil, apperror.NewBadRequestError("Invalid role")
	}

	location, err := s.locationRepo.GetByID(ctx, input.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperror.NewNotFoundError("Location")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = entity.RoleCashier
	}

	user := &entity.User{
		LocationID: input.LocationID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput contains the data for updating a staff account
type UpdateUserInput struct {
	FirstName  *string
	LastName   *string
	Role       *string
	IsActive   *bool
	LocationID *uuid.UUID
}

// UpdateUser updates a staff account
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !validRole(*input.Role) {
			return nil, apperror.NewBadRequestError("Invalid role")
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.LocationID != nil {
		location, err := s.locationRepo.GetByID(ctx, *input.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, apperror.NewNotFoundError("Location")
		}
		user.LocationID = *input.LocationID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a staff account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}

// ListUsers lists staff accounts at a location
func (s *UserService) ListUsers(ctx context.Context, locationID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, locationID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}
