package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

func TestBuildSalePayload(t *testing.T) {
	cart := NewCart()
	p := testProduct("Dictionnaire Larousse", "45.00", 20)
	require.NoError(t, cart.AddItem(p, 2))
	require.NoError(t, cart.SetLineDiscount(p.ID, enum.DiscountTypeAmount, dec("10")))
	require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypePercentage, dec("5")))

	payload, err := BuildSalePayload(cart, dec("100.00"), "cash")
	require.NoError(t, err)

	require.Len(t, payload.Items, 1)
	assert.Equal(t, 2, payload.Items[0].Quantity)
	require.NotNil(t, payload.Items[0].DiscountType)
	assert.Equal(t, enum.DiscountTypeAmount, *payload.Items[0].DiscountType)

	// (45*2 - 10) * 0.95 = 76.00
	assert.True(t, payload.Subtotal.Equal(dec("80.00")))
	assert.True(t, payload.Total.Equal(dec("76.00")))
	assert.True(t, payload.ChangeAmount.Equal(dec("24.00")))
	assert.Equal(t, enum.PaymentStatusPaid, payload.PaymentStatus)
	assert.Equal(t, "cash", payload.PaymentMethod)
}

func TestBuildSalePayloadRejectsNegativeTender(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("A", "10.00", 5), 1))

	_, err := BuildSalePayload(cart, dec("-1"), "cash")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// Round-trip property: recomputing the total from the payload's own items
// and discounts reproduces the cart's total.
func TestSalePayloadRecomputeTotalRoundTrip(t *testing.T) {
	carts := []func(*Cart){
		func(c *Cart) {
			require.NoError(t, c.AddItem(testProduct("A", "100.00", 10), 3))
		},
		func(c *Cart) {
			p := testProduct("B", "19.99", 50)
			require.NoError(t, c.AddItem(p, 7))
			require.NoError(t, c.SetLineDiscount(p.ID, enum.DiscountTypePercentage, dec("15")))
		},
		func(c *Cart) {
			require.NoError(t, c.AddItem(testProduct("C", "7.35", 10), 2))
			require.NoError(t, c.AddItem(testProduct("D", "120.00", 4), 1))
			require.NoError(t, c.SetGlobalDiscount(enum.DiscountTypeAmount, dec("13.50")))
		},
		func(c *Cart) {
			require.NoError(t, c.AddItem(testProduct("E", "5.00", 3), 3))
			require.NoError(t, c.SetGlobalDiscount(enum.DiscountTypeAmount, dec("999")))
		},
	}

	for i, build := range carts {
		cart := NewCart()
		build(cart)
		payload, err := BuildSalePayload(cart, cart.Total(), "cash")
		require.NoError(t, err, "cart %d", i)
		assert.True(t, payload.RecomputeTotal().Equal(payload.Total),
			"cart %d: recomputed %s, payload %s", i, payload.RecomputeTotal(), payload.Total)
	}
}

func TestBuildTicket(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("Agenda 2026", "14.90", 10), 2))
	payment, err := NewPayment(cart.Total(), dec("30.00"))
	require.NoError(t, err)

	ticket := BuildTicket(cart, payment, "cash")
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "Agenda 2026", ticket.Items[0].Name)
	assert.InDelta(t, 29.80, ticket.Subtotal, 0.001)
	assert.InDelta(t, 0.20, ticket.Change, 0.001)
	assert.Nil(t, ticket.ReturnInfo)
}

func TestBuildReturnTicket(t *testing.T) {
	items := originalSale("50.00", 4)
	s, _ := NewReturnSession(uuid.New(), enum.ReturnTypeExchange, items)
	require.NoError(t, s.SetReturnQuantity(items[0].ProductID, 4))
	require.NoError(t, s.SetReason(items[0].ProductID, "wrong edition"))
	require.NoError(t, s.AddExchangeItem(ExchangeItem{
		ProductID: uuid.New(),
		Name:      "Replacement",
		UnitPrice: dec("60.00"),
		Quantity:  3,
	}))
	s.SetNotes("exchange")

	payload, err := s.BuildPayload()
	require.NoError(t, err)

	ticket := BuildReturnTicket(payload, "cash")
	require.NotNil(t, ticket.ReturnInfo)
	assert.Equal(t, enum.ReturnStatusComplete, ticket.ReturnInfo.Status)
	assert.InDelta(t, 200.00, ticket.ReturnInfo.RefundAmount, 0.001)
	assert.InDelta(t, -20.00, ticket.Total, 0.001)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "Replacement", ticket.Items[0].Name)
}
