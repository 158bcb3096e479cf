package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/pkg/pagination"
)

// In-memory repository fakes shared across the service tests.

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		p := products[i]
		_ = r.Create(ctx, &p)
	}
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var result []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, locationID uuid.UUID, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.LocationID == locationID && p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByReference(ctx context.Context, locationID uuid.UUID, reference string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.LocationID == locationID && p.Reference != nil && *p.Reference == reference {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, locationID uuid.UUID, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var result []entity.Product
	for _, p := range r.products {
		if p.LocationID == locationID {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context, locationID uuid.UUID) ([]entity.Product, error) {
	var result []entity.Product
	for _, p := range r.products {
		if p.LocationID == locationID && p.Quantity <= p.QuantityAlert {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		p, ok := r.products[id]
		if !ok || p.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.products[id].Quantity -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if p, ok := r.products[id]; ok {
			p.Quantity += qty
		}
	}
	return nil
}

type fakeSaleRepo struct {
	sales     map[uuid.UUID]*entity.Sale
	createErr error
	// detailRepo backs GetWithDetails the way the real repository
	// preloads sale lines
	detailRepo *fakeSaleDetailRepo
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
	for _, s := range sales {
		r.sales[s.ID] = s
	}
	return r
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.InvoiceNo == invoiceNo {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	if len(s.Details) == 0 && r.detailRepo != nil {
		s.Details = r.detailRepo.details[id]
	}
	return s, nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, locationID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var result []entity.Sale
	for _, s := range r.sales {
		if s.LocationID == locationID {
			result = append(result, *s)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeSaleRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	if s, ok := r.sales[id]; ok {
		s.Cancelled = true
	}
	return nil
}

func (r *fakeSaleRepo) GetDueSales(ctx context.Context, locationID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var result []entity.Sale
	for _, s := range r.sales {
		if s.LocationID == locationID && s.Due > 0 && !s.Cancelled {
			result = append(result, *s)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeSaleRepo) CountByDate(ctx context.Context, locationID uuid.UUID, date time.Time) (int64, error) {
	return int64(len(r.sales)), nil
}

type fakeSaleDetailRepo struct {
	details map[uuid.UUID][]entity.SaleDetail
}

func newFakeSaleDetailRepo() *fakeSaleDetailRepo {
	return &fakeSaleDetailRepo{details: make(map[uuid.UUID][]entity.SaleDetail)}
}

func (r *fakeSaleDetailRepo) CreateBatch(ctx context.Context, details []entity.SaleDetail) error {
	for _, d := range details {
		r.details[d.SaleID] = append(r.details[d.SaleID], d)
	}
	return nil
}

func (r *fakeSaleDetailRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleDetail, error) {
	return r.details[saleID], nil
}

func (r *fakeSaleDetailRepo) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error {
	delete(r.details, saleID)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, locationID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var result []entity.Customer
	for _, c := range r.customers {
		if c.LocationID == locationID {
			result = append(result, *c)
		}
	}
	return result, int64(len(result)), nil
}

type fakeReturnRepo struct {
	returns   map[uuid.UUID]*entity.Return
	createErr error
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[uuid.UUID]*entity.Return)}
}

func (r *fakeReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	if r.createErr != nil {
		return r.createErr
	}
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	for i := range ret.Details {
		ret.Details[i].ReturnID = ret.ID
	}
	for i := range ret.ExchangeDetails {
		ret.ExchangeDetails[i].ReturnID = ret.ID
	}
	r.returns[ret.ID] = ret
	return nil
}

func (r *fakeReturnRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	return r.returns[id], nil
}

func (r *fakeReturnRepo) GetByReturnNo(ctx context.Context, returnNo string) (*entity.Return, error) {
	for _, ret := range r.returns {
		if ret.ReturnNo == returnNo {
			return ret, nil
		}
	}
	return nil, nil
}

func (r *fakeReturnRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	return r.returns[id], nil
}

func (r *fakeReturnRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Return, error) {
	var result []entity.Return
	for _, ret := range r.returns {
		if ret.SaleID == saleID {
			result = append(result, *ret)
		}
	}
	return result, nil
}

func (r *fakeReturnRepo) List(ctx context.Context, locationID uuid.UUID, params *repository.ReturnFilterParams) ([]entity.Return, int64, error) {
	var result []entity.Return
	for _, ret := range r.returns {
		if ret.LocationID == locationID {
			result = append(result, *ret)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeReturnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.returns, id)
	return nil
}

func (r *fakeReturnRepo) CountByDate(ctx context.Context, locationID uuid.UUID, date time.Time) (int64, error) {
	return int64(len(r.returns)), nil
}
