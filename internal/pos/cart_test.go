package pos

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(name, price string, available int) Product {
	return Product{
		ID:           uuid.New(),
		Name:         name,
		UnitPrice:    dec(price),
		AvailableQty: available,
	}
}

func TestCartAddItemMergesLines(t *testing.T) {
	cart := NewCart()
	p := testProduct("Le Petit Prince", "12.50", 10)

	require.NoError(t, cart.AddItem(p, 2))
	require.NoError(t, cart.AddItem(p, 3))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.True(t, cart.Subtotal().Equal(dec("62.50")))
}

func TestCartAddItemInsufficientStock(t *testing.T) {
	tests := []struct {
		name      string
		available int
		first     int
		second    int
	}{
		{"combined quantity exceeds stock", 4, 3, 2},
		{"single add exceeds stock", 2, 3, 0},
		{"product out of stock", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			p := testProduct("L'Etranger", "8.00", tt.available)

			var err error
			if tt.second > 0 {
				require.NoError(t, cart.AddItem(p, tt.first))
				err = cart.AddItem(p, tt.second)
			} else {
				err = cart.AddItem(p, tt.first)
			}

			var stockErr *InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			assert.Equal(t, tt.available, stockErr.Available)

			// the cart must be left exactly as it was
			if tt.second > 0 {
				line, ok := cart.Line(p.ID)
				require.True(t, ok)
				assert.Equal(t, tt.first, line.Quantity)
			} else {
				assert.True(t, cart.IsEmpty())
			}
		})
	}
}

func TestCartAddItemRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()
	p := testProduct("Candide", "6.90", 5)

	assert.ErrorIs(t, cart.AddItem(p, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem(p, -1), ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCartPriceCapturedAtAddTime(t *testing.T) {
	cart := NewCart()
	p := testProduct("Germinal", "15.00", 5)
	require.NoError(t, cart.AddItem(p, 1))

	// a later catalog price change must not alter the existing line
	p.UnitPrice = dec("20.00")
	line, ok := cart.Line(p.ID)
	require.True(t, ok)
	assert.True(t, line.UnitPrice.Equal(dec("15.00")))
}

func TestCartSetQuantity(t *testing.T) {
	cart := NewCart()
	p := testProduct("Notre-Dame de Paris", "11.00", 3)
	require.NoError(t, cart.AddItem(p, 2))

	// stock ceiling binds only at AddItem; manual edits may exceed it
	require.NoError(t, cart.SetQuantity(p.ID, 10))
	line, _ := cart.Line(p.ID)
	assert.Equal(t, 10, line.Quantity)

	// zero removes the line
	require.NoError(t, cart.SetQuantity(p.ID, 0))
	assert.True(t, cart.IsEmpty())

	assert.ErrorIs(t, cart.SetQuantity(p.ID, 1), ErrLineNotFound)
}

func TestCartSetQuantityRejectsNegative(t *testing.T) {
	cart := NewCart()
	p := testProduct("Bel-Ami", "9.50", 5)
	require.NoError(t, cart.AddItem(p, 2))

	err := cart.SetQuantity(p.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	line, _ := cart.Line(p.ID)
	assert.Equal(t, 2, line.Quantity)
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart()
	p := testProduct("La Peste", "10.00", 5)
	require.NoError(t, cart.AddItem(p, 1))

	cart.RemoveItem(p.ID)
	assert.True(t, cart.IsEmpty())

	// removing an absent product is a no-op
	cart.RemoveItem(uuid.New())
}

func TestCartLineDiscounts(t *testing.T) {
	tests := []struct {
		name    string
		dtype   enum.DiscountType
		value   string
		want    string
		wantErr error
	}{
		{"percentage", enum.DiscountTypePercentage, "10", "90.00", nil},
		{"fixed amount", enum.DiscountTypeAmount, "25", "75.00", nil},
		{"amount clamped at line total", enum.DiscountTypeAmount, "500", "0.00", nil},
		{"full percentage", enum.DiscountTypePercentage, "100", "0.00", nil},
		{"percentage above 100", enum.DiscountTypePercentage, "101", "", ErrInvalidPercentage},
		{"negative value", enum.DiscountTypeAmount, "-5", "", ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			p := testProduct("Les Miserables", "50.00", 10)
			require.NoError(t, cart.AddItem(p, 2))

			err := cart.SetLineDiscount(p.ID, tt.dtype, dec(tt.value))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// rejected discount leaves the line untouched
				assert.True(t, cart.Subtotal().Equal(dec("100.00")))
				return
			}
			require.NoError(t, err)
			assert.True(t, cart.Subtotal().Equal(dec(tt.want)), "got %s", cart.Subtotal())
		})
	}
}

func TestCartGlobalDiscount(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("A", "100.00", 10), 1))
	require.NoError(t, cart.AddItem(testProduct("B", "50.00", 10), 2))

	require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypePercentage, dec("10")))
	assert.True(t, cart.Subtotal().Equal(dec("200.00")))
	assert.True(t, cart.GlobalDiscountAmount().Equal(dec("20.00")))
	assert.True(t, cart.Total().Equal(dec("180.00")))

	// fixed amount larger than the subtotal floors the total at zero
	require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypeAmount, dec("1000")))
	assert.True(t, cart.Total().IsZero())
	assert.False(t, cart.Total().IsNegative())

	cart.ClearGlobalDiscount()
	assert.True(t, cart.Total().Equal(dec("200.00")))
}

func TestCartTotalNeverNegative(t *testing.T) {
	// discount clamp property over a spread of percentage and amount values
	percentages := []string{"0", "25", "50", "99.99", "100"}
	amounts := []string{"0", "10", "150", "1500", "15000"}

	for _, v := range percentages {
		cart := NewCart()
		require.NoError(t, cart.AddItem(testProduct("X", "37.37", 100), 4))
		require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypePercentage, dec(v)))
		assert.False(t, cart.Total().IsNegative(), "percentage %s", v)
	}
	for _, v := range amounts {
		cart := NewCart()
		require.NoError(t, cart.AddItem(testProduct("X", "37.37", 100), 4))
		require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypeAmount, dec(v)))
		assert.False(t, cart.Total().IsNegative(), "amount %s", v)
	}
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("A", "10.00", 5), 2))
	require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypePercentage, dec("5")))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.GlobalDiscount())
	assert.True(t, cart.Total().IsZero())
}

func TestCartNoRoundingDrift(t *testing.T) {
	// three lines at a price that does not round cleanly; full precision is
	// kept internally so the sum matches exact decimal arithmetic
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("A", "0.10", 100), 3))
	require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypePercentage, dec("33.33")))

	want := dec("0.30").Sub(dec("0.30").Mul(dec("33.33")).Div(dec("100")))
	assert.True(t, cart.Total().Equal(want))
}

func TestDiscountValidation(t *testing.T) {
	_, err := NewDiscount(enum.DiscountType("bogus"), dec("10"))
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = NewDiscount(enum.DiscountTypePercentage, dec("-1"))
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}
