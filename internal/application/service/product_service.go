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

// ProductService handles catalog business logic
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput contains the data needed to create a product
type CreateProductInput struct {
	LocationID    uuid.UUID
	UserID        uuid.UUID
	CategoryID    *uuid.UUID
	Name          string
	Code          string
	Barcode       *string
	Reference     *string
	Author        *string
	Publisher     *string
	Quantity      int
	QuantityAlert int
	BuyingPrice   float64
	SellingPrice  float64
	Notes         *string
}

// CreateProduct creates a new catalog item
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.SellingPrice < 0 || input.BuyingPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	reference := input.Reference
	if reference == nil {
		ref := utils.GenerateReference()
		reference = &ref
	}

	product := &entity.Product{
		LocationID:    input.LocationID,
		UserID:        input.UserID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Slug:          utils.Slugify(input.Name) + "-" + uuid.New().String()[:8],
		Code:          input.Code,
		Barcode:       input.Barcode,
		Reference:     reference,
		Author:        input.Author,
		Publisher:     input.Publisher,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		Notes:         input.Notes,
	}
	product.SetBuyingPriceFromDecimal(input.BuyingPrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// LookupProduct finds a product by barcode first, then by reference. This
// backs the scan field at the register.
func (s *ProductService) LookupProduct(ctx context.Context, locationID uuid.UUID, code string) (*entity.Product, error) {
	if code == "" {
		return nil, apperror.NewBadRequestError("Lookup code is required")
	}

	product, err := s.productRepo.GetByBarcode(ctx, locationID, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		product, err = s.productRepo.GetByReference(ctx, locationID, code)
		if err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput contains the data for updating a product
type UpdateProductInput struct {
	CategoryID    *uuid.UUID
	Name          *string
	Code          *string
	Barcode       *string
	Reference     *string
	Author        *string
	Publisher     *string
	Quantity      *int
	QuantityAlert *int
	BuyingPrice   *float64
	SellingPrice  *float64
	Notes         *string
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Code != nil {
		product.Code = *input.Code
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.Reference != nil {
		product.Reference = input.Reference
	}
	if input.Author != nil {
		product.Author = input.Author
	}
	if input.Publisher != nil {
		product.Publisher = input.Publisher
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperror.NewBadRequestError("Quantity cannot be negative")
		}
		product.Quantity = *input.Quantity
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		if *input.BuyingPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.SetBuyingPriceFromDecimal(*input.BuyingPrice)
	}
	if input.SellingPrice != nil {
		if *input.SellingPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.SetSellingPriceFromDecimal(*input.SellingPrice)
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, locationID uuid.UUID, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, locationID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products at or below their alert quantity
func (s *ProductService) GetLowStock(ctx context.Context, locationID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, locationID)
}

// CreateCategory creates a product category
func (s *ProductService) CreateCategory(ctx context.Context, locationID, userID uuid.UUID, name string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	slug := utils.Slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{
		LocationID: locationID,
		UserID:     userID,
		Name:       name,
		Slug:       slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category
func (s *ProductService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	category.Slug = utils.Slugify(name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes a category
func (s *ProductService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists categories with pagination
func (s *ProductService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}
