package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/enum"
)

func newTestProduct(locationID uuid.UUID, name string, priceCents int64, qty int) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		LocationID:   locationID,
		UserID:       uuid.New(),
		Name:         name,
		Slug:         strings.ToLower(name),
		Code:         "C-" + uuid.New().String()[:8],
		SellingPrice: priceCents,
		BuyingPrice:  priceCents / 2,
		Quantity:     qty,
	}
}

func newSaleServiceFixture(products ...*entity.Product) (*SaleService, *fakeProductRepo, *fakeSaleRepo) {
	productRepo := newFakeProductRepo(products...)
	saleRepo := newFakeSaleRepo()
	detailRepo := newFakeSaleDetailRepo()
	saleRepo.detailRepo = detailRepo
	svc := NewSaleService(saleRepo, detailRepo, productRepo, newFakeCustomerRepo())
	return svc, productRepo, saleRepo
}

func TestCreateSale(t *testing.T) {
	locationID := uuid.New()
	userID := uuid.New()

	t.Run("successful checkout decrements stock and records change", func(t *testing.T) {
		book := newTestProduct(locationID, "Go in Action", 4500, 10)
		pen := newTestProduct(locationID, "Ballpoint", 300, 50)
		svc, productRepo, _ := newSaleServiceFixture(book, pen)

		sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID: locationID,
			UserID:     userID,
			Items: []SaleItemInput{
				{ProductID: book.ID, Quantity: 2},
				{ProductID: pen.ID, Quantity: 3},
			},
			AmountPaid:    100.00,
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
		require.NotNil(t, sale)

		// 2*45.00 + 3*3.00 = 99.00, change 1.00
		assert.Equal(t, int64(9900), sale.Total)
		assert.Equal(t, int64(10000), sale.Paid)
		assert.Equal(t, int64(100), sale.ChangeAmount)
		assert.Equal(t, int64(0), sale.Due)
		assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
		assert.True(t, strings.HasPrefix(sale.InvoiceNo, "INV-"))

		assert.Equal(t, 8, productRepo.products[book.ID].Quantity)
		assert.Equal(t, 47, productRepo.products[pen.ID].Quantity)
	})

	t.Run("quantity above stock is rejected and nothing is persisted", func(t *testing.T) {
		book := newTestProduct(locationID, "Scarce Title", 2000, 1)
		svc, productRepo, saleRepo := newSaleServiceFixture(book)

		_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID:    locationID,
			UserID:        userID,
			Items:         []SaleItemInput{{ProductID: book.ID, Quantity: 3}},
			AmountPaid:    60.00,
			PaymentMethod: "cash",
		})
		require.Error(t, err)
		assert.Equal(t, 1, productRepo.products[book.ID].Quantity)
		assert.Empty(t, saleRepo.sales)
	})

	t.Run("partial payment needs the allow partial flag", func(t *testing.T) {
		book := newTestProduct(locationID, "Go in Action", 4500, 10)
		svc, _, _ := newSaleServiceFixture(book)

		input := &CreateSaleInput{
			LocationID:    locationID,
			UserID:        userID,
			Items:         []SaleItemInput{{ProductID: book.ID, Quantity: 1}},
			AmountPaid:    20.00,
			PaymentMethod: "cash",
		}
		_, err := svc.CreateSale(context.Background(), input)
		require.Error(t, err)

		input.AllowPartial = true
		sale, err := svc.CreateSale(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, enum.PaymentStatusPartial, sale.PaymentStatus)
		assert.Equal(t, int64(2500), sale.Due)
		assert.Equal(t, int64(0), sale.ChangeAmount)
	})

	t.Run("amount discount larger than the line is clamped", func(t *testing.T) {
		book := newTestProduct(locationID, "Bargain Bin", 1000, 5)
		svc, _, _ := newSaleServiceFixture(book)

		dt := enum.DiscountTypeAmount
		dv := 50.00
		sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID:    locationID,
			UserID:        userID,
			Items:         []SaleItemInput{{ProductID: book.ID, Quantity: 1, DiscountType: &dt, DiscountValue: &dv}},
			AmountPaid:    0,
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), sale.Total)
		assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
	})

	t.Run("global percentage discount applies to the subtotal", func(t *testing.T) {
		book := newTestProduct(locationID, "Go in Action", 4000, 10)
		svc, _, _ := newSaleServiceFixture(book)

		dt := enum.DiscountTypePercentage
		dv := 25.0
		sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID:          locationID,
			UserID:              userID,
			Items:               []SaleItemInput{{ProductID: book.ID, Quantity: 2}},
			GlobalDiscountType:  &dt,
			GlobalDiscountValue: &dv,
			AmountPaid:          60.00,
			PaymentMethod:       "card",
		})
		require.NoError(t, err)
		// 2*40.00 = 80.00, minus 25% = 60.00
		assert.Equal(t, int64(8000), sale.SubTotal)
		assert.Equal(t, int64(6000), sale.Total)
		assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		svc, _, _ := newSaleServiceFixture()

		_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID:    locationID,
			UserID:        userID,
			Items:         []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}},
			AmountPaid:    10,
			PaymentMethod: "cash",
		})
		require.Error(t, err)
	})

	t.Run("product from another location is not sellable", func(t *testing.T) {
		other := newTestProduct(uuid.New(), "Elsewhere", 1000, 5)
		svc, _, _ := newSaleServiceFixture(other)

		_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID:    locationID,
			UserID:        userID,
			Items:         []SaleItemInput{{ProductID: other.ID, Quantity: 1}},
			AmountPaid:    10,
			PaymentMethod: "cash",
		})
		require.Error(t, err)
	})

	t.Run("negative tender is rejected before any stock moves", func(t *testing.T) {
		book := newTestProduct(locationID, "Go in Action", 4500, 10)
		svc, productRepo, saleRepo := newSaleServiceFixture(book)

		_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID:    locationID,
			UserID:        userID,
			Items:         []SaleItemInput{{ProductID: book.ID, Quantity: 1}},
			AmountPaid:    -10.00,
			PaymentMethod: "cash",
		})
		require.Error(t, err)
		assert.Equal(t, 10, productRepo.products[book.ID].Quantity)
		assert.Empty(t, saleRepo.sales)
	})

	t.Run("failed persistence restores the decremented stock", func(t *testing.T) {
		book := newTestProduct(locationID, "Go in Action", 4500, 10)
		svc, productRepo, saleRepo := newSaleServiceFixture(book)
		saleRepo.createErr = assert.AnError

		_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			LocationID:    locationID,
			UserID:        userID,
			Items:         []SaleItemInput{{ProductID: book.ID, Quantity: 4}},
			AmountPaid:    180.00,
			PaymentMethod: "cash",
		})
		require.Error(t, err)
		assert.Equal(t, 10, productRepo.products[book.ID].Quantity)
	})
}

func TestCancelSale(t *testing.T) {
	locationID := uuid.New()
	userID := uuid.New()
	book := newTestProduct(locationID, "Go in Action", 4500, 10)
	svc, productRepo, _ := newSaleServiceFixture(book)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		LocationID:    locationID,
		UserID:        userID,
		Items:         []SaleItemInput{{ProductID: book.ID, Quantity: 3}},
		AmountPaid:    135.00,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.Len(t, sale.Details, 1, "a committed sale carries its lines")
	assert.Equal(t, 7, productRepo.products[book.ID].Quantity)

	require.NoError(t, svc.CancelSale(context.Background(), locationID, sale.ID))
	assert.Equal(t, 10, productRepo.products[book.ID].Quantity)

	err = svc.CancelSale(context.Background(), locationID, sale.ID)
	require.Error(t, err, "a sale cannot be cancelled twice")
}

func TestPayDue(t *testing.T) {
	locationID := uuid.New()
	userID := uuid.New()
	book := newTestProduct(locationID, "Go in Action", 5000, 10)
	svc, _, _ := newSaleServiceFixture(book)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		LocationID:    locationID,
		UserID:        userID,
		Items:         []SaleItemInput{{ProductID: book.ID, Quantity: 2}},
		AmountPaid:    40.00,
		PaymentMethod: "cash",
		AllowPartial:  true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(6000), sale.Due)

	updated, err := svc.PayDue(context.Background(), locationID, sale.ID, 30.00)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), updated.Due)
	assert.Equal(t, enum.PaymentStatusPartial, updated.PaymentStatus)

	updated, err = svc.PayDue(context.Background(), locationID, sale.ID, 35.00)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Due)
	assert.Equal(t, int64(500), updated.ChangeAmount)
	assert.Equal(t, enum.PaymentStatusPaid, updated.PaymentStatus)

	_, err = svc.PayDue(context.Background(), locationID, sale.ID, -5)
	require.Error(t, err, "negative payments are rejected")
}
