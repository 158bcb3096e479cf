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

type returnFixture struct {
	svc         *ReturnService
	productRepo *fakeProductRepo
	returnRepo  *fakeReturnRepo
	locationID  uuid.UUID
	userID      uuid.UUID
	sale        *entity.Sale
	book        *entity.Product
	pen         *entity.Product
}

// newReturnFixture seeds a committed sale of 2 books at 45.00 and 3 pens
// at 3.00 to return against.
func newReturnFixture(t *testing.T) *returnFixture {
	t.Helper()

	locationID := uuid.New()
	userID := uuid.New()
	book := newTestProduct(locationID, "Go in Action", 4500, 8)
	pen := newTestProduct(locationID, "Ballpoint", 300, 47)

	sale := &entity.Sale{
		ID:         uuid.New(),
		LocationID: locationID,
		UserID:     userID,
		InvoiceNo:  "INV-20260828-0001",
		Total:      9900,
		Paid:       9900,
		Details: []entity.SaleDetail{
			{SaleID: uuid.New(), ProductID: book.ID, Quantity: 2, UnitPrice: 4500, Total: 9000, Product: *book},
			{SaleID: uuid.New(), ProductID: pen.ID, Quantity: 3, UnitPrice: 300, Total: 900, Product: *pen},
		},
	}

	productRepo := newFakeProductRepo(book, pen)
	returnRepo := newFakeReturnRepo()
	svc := NewReturnService(returnRepo, newFakeSaleRepo(sale), productRepo)

	return &returnFixture{
		svc:         svc,
		productRepo: productRepo,
		returnRepo:  returnRepo,
		locationID:  locationID,
		userID:      userID,
		sale:        sale,
		book:        book,
		pen:         pen,
	}
}

func TestCreateReturnRefund(t *testing.T) {
	t.Run("partial refund restores stock and nets the refund", func(t *testing.T) {
		f := newReturnFixture(t)

		ret, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "damaged cover"}},
			RefundMethod: "cash",
			Notes:        "customer brought it back same day",
		})
		require.NoError(t, err)
		require.NotNil(t, ret)

		assert.Equal(t, int64(4500), ret.TotalRefund)
		assert.Equal(t, int64(0), ret.TotalExchange)
		assert.Equal(t, int64(-4500), ret.BalanceAdjustment)
		assert.Equal(t, enum.ReturnStatusPartial, ret.ReturnStatus)
		assert.True(t, strings.HasPrefix(ret.ReturnNo, "RET-"))
		require.Len(t, ret.Details, 1)
		assert.Equal(t, "damaged cover", ret.Details[0].Reason)

		// Returned copy goes back on the shelf
		assert.Equal(t, 9, f.productRepo.products[f.book.ID].Quantity)
	})

	t.Run("returning every line marks the return complete", func(t *testing.T) {
		f := newReturnFixture(t)

		ret, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID: f.locationID,
			UserID:     f.userID,
			SaleID:     f.sale.ID,
			ReturnType: enum.ReturnTypeRefund,
			Items: []ReturnItemInput{
				{ProductID: f.book.ID, Quantity: 2, Reason: "wrong edition"},
				{ProductID: f.pen.ID, Quantity: 3, Reason: "wrong edition"},
			},
			RefundMethod: "cash",
			Notes:        "full basket refused",
		})
		require.NoError(t, err)
		assert.Equal(t, enum.ReturnStatusComplete, ret.ReturnStatus)
		assert.Equal(t, int64(9900), ret.TotalRefund)
	})

	t.Run("quantity above purchased is rejected", func(t *testing.T) {
		f := newReturnFixture(t)

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 5, Reason: "damaged"}},
			RefundMethod: "cash",
			Notes:        "n/a",
		})
		require.Error(t, err)
		assert.Equal(t, 8, f.productRepo.products[f.book.ID].Quantity)
	})

	t.Run("missing reason blocks submission", func(t *testing.T) {
		f := newReturnFixture(t)

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1}},
			RefundMethod: "cash",
			Notes:        "n/a",
		})
		require.Error(t, err)
		assert.Empty(t, f.returnRepo.returns)
	})

	t.Run("empty selection blocks submission", func(t *testing.T) {
		f := newReturnFixture(t)

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			RefundMethod: "cash",
			Notes:        "n/a",
		})
		require.Error(t, err)
	})

	t.Run("prior returns shrink the returnable quantity", func(t *testing.T) {
		f := newReturnFixture(t)

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "damaged"}},
			RefundMethod: "cash",
			Notes:        "first return",
		})
		require.NoError(t, err)

		// Only one book is still returnable
		_, err = f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 2, Reason: "damaged"}},
			RefundMethod: "cash",
			Notes:        "second return",
		})
		require.Error(t, err)

		ret, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "damaged"}},
			RefundMethod: "cash",
			Notes:        "second return",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4500), ret.TotalRefund)
	})
}

func TestCreateReturnExchange(t *testing.T) {
	t.Run("exchange nets refund against new merchandise", func(t *testing.T) {
		f := newReturnFixture(t)
		notebook := newTestProduct(f.locationID, "Notebook A5", 6000, 4)
		f.productRepo.products[notebook.ID] = notebook

		ret, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:    f.locationID,
			UserID:        f.userID,
			SaleID:        f.sale.ID,
			ReturnType:    enum.ReturnTypeExchange,
			Items:         []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "misprint"}},
			ExchangeItems: []ExchangeItemInput{{ProductID: notebook.ID, Quantity: 1}},
			RefundMethod:  "cash",
			Notes:         "swapped for a notebook",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(4500), ret.TotalRefund)
		assert.Equal(t, int64(6000), ret.TotalExchange)
		// Customer owes the 15.00 difference
		assert.Equal(t, int64(1500), ret.BalanceAdjustment)
		require.Len(t, ret.ExchangeDetails, 1)

		assert.Equal(t, 9, f.productRepo.products[f.book.ID].Quantity)
		assert.Equal(t, 3, f.productRepo.products[notebook.ID].Quantity)
	})

	t.Run("exchange items on a refund are rejected", func(t *testing.T) {
		f := newReturnFixture(t)
		notebook := newTestProduct(f.locationID, "Notebook A5", 6000, 4)
		f.productRepo.products[notebook.ID] = notebook

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:    f.locationID,
			UserID:        f.userID,
			SaleID:        f.sale.ID,
			ReturnType:    enum.ReturnTypeRefund,
			Items:         []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "misprint"}},
			ExchangeItems: []ExchangeItemInput{{ProductID: notebook.ID, Quantity: 1}},
			RefundMethod:  "cash",
			Notes:         "n/a",
		})
		require.Error(t, err)
	})

	t.Run("exchange without stock fails and leaves quantities untouched", func(t *testing.T) {
		f := newReturnFixture(t)
		notebook := newTestProduct(f.locationID, "Notebook A5", 6000, 0)
		f.productRepo.products[notebook.ID] = notebook

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:    f.locationID,
			UserID:        f.userID,
			SaleID:        f.sale.ID,
			ReturnType:    enum.ReturnTypeExchange,
			Items:         []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "misprint"}},
			ExchangeItems: []ExchangeItemInput{{ProductID: notebook.ID, Quantity: 1}},
			RefundMethod:  "cash",
			Notes:         "n/a",
		})
		require.Error(t, err)
		assert.Equal(t, 8, f.productRepo.products[f.book.ID].Quantity)
		assert.Equal(t, 0, f.productRepo.products[notebook.ID].Quantity)
	})
}

func TestCreateReturnGuards(t *testing.T) {
	t.Run("unknown sale", func(t *testing.T) {
		f := newReturnFixture(t)

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       uuid.New(),
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "damaged"}},
			RefundMethod: "cash",
			Notes:        "n/a",
		})
		require.Error(t, err)
	})

	t.Run("cancelled sale cannot be returned against", func(t *testing.T) {
		f := newReturnFixture(t)
		f.sale.Cancelled = true

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "damaged"}},
			RefundMethod: "cash",
			Notes:        "n/a",
		})
		require.Error(t, err)
	})

	t.Run("failed persistence rolls the stock movements back", func(t *testing.T) {
		f := newReturnFixture(t)
		f.returnRepo.createErr = assert.AnError

		_, err := f.svc.CreateReturn(context.Background(), &CreateReturnInput{
			LocationID:   f.locationID,
			UserID:       f.userID,
			SaleID:       f.sale.ID,
			ReturnType:   enum.ReturnTypeRefund,
			Items:        []ReturnItemInput{{ProductID: f.book.ID, Quantity: 1, Reason: "damaged"}},
			RefundMethod: "cash",
			Notes:        "n/a",
		})
		require.Error(t, err)
		assert.Equal(t, 8, f.productRepo.products[f.book.ID].Quantity)
	})
}
