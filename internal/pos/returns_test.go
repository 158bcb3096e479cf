package pos

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

func originalSale(price string, qty int) []OriginalSaleItem {
	return []OriginalSaleItem{{
		ProductID:    uuid.New(),
		Name:         "Madame Bovary",
		UnitPrice:    dec(price),
		PurchasedQty: qty,
	}}
}

func TestReturnSessionRejectsUnknownType(t *testing.T) {
	_, err := NewReturnSession(uuid.New(), enum.ReturnType("store-credit"), nil)
	assert.ErrorIs(t, err, ErrInvalidReturnType)
}

// Scenario: price 50.00, purchased 4, return 2 for a refund.
func TestPartialRefund(t *testing.T) {
	items := originalSale("50.00", 4)
	s, err := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)
	require.NoError(t, err)

	require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 2))
	require.NoError(t, s.SetReason(items[0].ProductID, "defective"))
	s.SetNotes("customer reported damaged cover")

	assert.True(t, s.RefundTotal().Equal(dec("100.00")))
	assert.True(t, s.ExchangeTotal().IsZero())
	assert.True(t, s.BalanceAdjustment().Equal(dec("-100.00")))
	assert.Equal(t, enum.ReturnStatusPartial, s.ReturnStatus())
}

// Scenario: return all 4 units as exchange, take 3 units at 60.00 instead.
func TestExchangeBalance(t *testing.T) {
	items := originalSale("50.00", 4)
	s, err := NewReturnSession(uuid.New(), enum.ReturnTypeExchange, items)
	require.NoError(t, err)

	require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 4))
	require.NoError(t, s.SetReason(items[0].ProductID, "wrong edition"))
	require.NoError(t, s.AddExchangeItem(ExchangeItem{
		ProductID: uuid.New(),
		Name:      "Madame Bovary (Pleiade)",
		UnitPrice: dec("60.00"),
		Quantity:  3,
	}))
	s.SetNotes("swapped for the collector edition")

	assert.True(t, s.RefundTotal().Equal(dec("200.00")))
	assert.True(t, s.ExchangeTotal().Equal(dec("180.00")))
	assert.True(t, s.BalanceAdjustment().Equal(dec("-20.00")))
	assert.Equal(t, enum.ReturnStatusComplete, s.ReturnStatus())
}

// Scenario: returning 5 of 4 purchased units is rejected, prior value kept.
func TestReturnQuantityExceedsOriginal(t *testing.T) {
	items := originalSale("50.00", 4)
	s, err := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)
	require.NoError(t, err)
	require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 3))

	err = s.SetReturnQuantity(items[0].ProductID, 5)
	var exceedsErr *QuantityExceedsOriginalError
	require.ErrorAs(t, err, &exceedsErr)
	assert.Equal(t, 4, exceedsErr.Purchased)
	assert.Equal(t, 5, exceedsErr.Requested)

	assert.Equal(t, 3, s.ReturnQuantity(items[0].ProductID))
	assert.Equal(t, StateSelecting, s.State())
}

func TestReturnQuantityValidation(t *testing.T) {
	items := originalSale("10.00", 2)
	s, err := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetReturnQuantity(items[0].ProductID, -1), ErrInvalidQuantity)
	assert.ErrorIs(t, s.SetReturnQuantity(uuid.New(), 1), ErrItemNotInSale)

	// zero is a valid selection; it just excludes the line
	require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 0))
}

func TestExchangeItemsOnlyOnExchangeSessions(t *testing.T) {
	items := originalSale("10.00", 2)
	s, err := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)
	require.NoError(t, err)

	err = s.AddExchangeItem(ExchangeItem{ProductID: uuid.New(), UnitPrice: dec("5"), Quantity: 1})
	assert.ErrorIs(t, err, ErrExchangeNotAllowed)
}

func TestExchangeItemMergesAndValidates(t *testing.T) {
	s, err := NewReturnSession(uuid.New(), enum.ReturnTypeExchange, originalSale("10.00", 2))
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, s.AddExchangeItem(ExchangeItem{ProductID: id, UnitPrice: dec("5.00"), Quantity: 1}))
	require.NoError(t, s.AddExchangeItem(ExchangeItem{ProductID: id, UnitPrice: dec("5.00"), Quantity: 2}))
	require.Len(t, s.ExchangeItems(), 1)
	assert.Equal(t, 3, s.ExchangeItems()[0].Quantity)

	assert.ErrorIs(t, s.AddExchangeItem(ExchangeItem{ProductID: uuid.New(), Quantity: 0}), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddExchangeItem(ExchangeItem{ProductID: uuid.New(), UnitPrice: dec("-1"), Quantity: 1}), ErrInvalidAmount)

	s.RemoveExchangeItem(id)
	assert.Empty(t, s.ExchangeItems())
}

func TestSubmitValidation(t *testing.T) {
	t.Run("empty refund selection", func(t *testing.T) {
		s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, originalSale("10.00", 2))
		_, err := s.BuildPayload()
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("empty exchange selection", func(t *testing.T) {
		s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeExchange, originalSale("10.00", 2))
		_, err := s.BuildPayload()
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("exchange with only new items is valid", func(t *testing.T) {
		s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeExchange, originalSale("10.00", 2))
		require.NoError(t, s.AddExchangeItem(ExchangeItem{ProductID: uuid.New(), UnitPrice: dec("5.00"), Quantity: 1}))
		s.SetNotes("upgrade")
		_, err := s.BuildPayload()
		assert.NoError(t, err)
	})

	t.Run("missing line reason", func(t *testing.T) {
		items := originalSale("10.00", 2)
		s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)
		require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 1))
		s.SetNotes("overall note")

		_, err := s.BuildPayload()
		var reasonErr *MissingReasonError
		require.ErrorAs(t, err, &reasonErr)
		assert.False(t, reasonErr.Overall)
		assert.Equal(t, items[0].ProductID, reasonErr.ProductID)
	})

	t.Run("missing overall reason", func(t *testing.T) {
		items := originalSale("10.00", 2)
		s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)
		require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 1))
		require.NoError(t, s.SetReason(items[0].ProductID, "torn pages"))

		_, err := s.BuildPayload()
		var reasonErr *MissingReasonError
		require.ErrorAs(t, err, &reasonErr)
		assert.True(t, reasonErr.Overall)
	})
}

func TestSubmitLifecycle(t *testing.T) {
	items := originalSale("50.00", 4)
	s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)
	require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 2))
	require.NoError(t, s.SetReason(items[0].ProductID, "defective"))
	s.SetNotes("damaged in transit")

	// a failing collaborator keeps the session in Selecting with state intact
	boom := errors.New("network down")
	_, err := s.Submit(func(*ReturnPayload) error { return boom })
	var subErr *SubmissionFailedError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateSelecting, s.State())
	assert.Equal(t, 2, s.ReturnQuantity(items[0].ProductID))

	// retry without re-entering anything
	payload, err := s.Submit(func(*ReturnPayload) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, s.State())
	require.Len(t, payload.ReturnItems, 1)
	assert.Equal(t, "defective", payload.ReturnItems[0].Reason)
	assert.True(t, payload.TotalRefundAmount.Equal(dec("100.00")))
	assert.True(t, payload.BalanceAdjustment.Equal(dec("-100.00")))

	// the terminal state rejects further edits and submissions
	assert.ErrorIs(t, s.SetReturnQuantity(items[0].ProductID, 1), ErrSessionSubmitted)
	_, err = s.Submit(func(*ReturnPayload) error { return nil })
	assert.ErrorIs(t, err, ErrSessionSubmitted)
}

func TestBalanceAdjustmentIdentity(t *testing.T) {
	// balanceAdjustment == exchangeTotal - refundTotal for arbitrary selections
	cases := []struct {
		price     string
		purchased int
		returned  int
		exPrice   string
		exQty     int
	}{
		{"19.99", 10, 7, "24.50", 3},
		{"5.00", 1, 1, "5.00", 1},
		{"100.00", 2, 0, "1.00", 5},
		{"0.99", 50, 50, "0", 0},
	}

	for _, c := range cases {
		items := originalSale(c.price, c.purchased)
		s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeExchange, items)
		require.NoError(t, s.SetReturnQuantity(items[0].ProductID, c.returned))
		if c.exQty > 0 {
			require.NoError(t, s.AddExchangeItem(ExchangeItem{
				ProductID: uuid.New(),
				UnitPrice: dec(c.exPrice),
				Quantity:  c.exQty,
			}))
		}
		want := s.ExchangeTotal().Sub(s.RefundTotal())
		assert.True(t, s.BalanceAdjustment().Equal(want))
	}
}

func TestMultiItemReturnStatus(t *testing.T) {
	items := []OriginalSaleItem{
		{ProductID: uuid.New(), Name: "A", UnitPrice: dec("10.00"), PurchasedQty: 2},
		{ProductID: uuid.New(), Name: "B", UnitPrice: dec("20.00"), PurchasedQty: 3},
	}
	s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeRefund, items)

	require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 2))
	assert.Equal(t, enum.ReturnStatusPartial, s.ReturnStatus())

	require.NoError(t, s.SetReturnQuantity(items[1].ProductID, 3))
	assert.Equal(t, enum.ReturnStatusComplete, s.ReturnStatus())
}
