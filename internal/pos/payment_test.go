package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

func TestComputeChange(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		tendered string
		want     string
	}{
		{"exact tender", "300.00", "300.00", "0"},
		{"overpayment", "270.00", "300.00", "30.00"},
		{"underpayment floors at zero", "270.00", "200.00", "0"},
		{"zero total zero tender", "0", "0", "0"},
		{"zero total with tender", "0", "10.00", "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeChange(dec(tt.total), dec(tt.tendered))
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestClassifyPaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		tendered string
		want     enum.PaymentStatus
	}{
		{"fully paid", "100.00", "100.00", enum.PaymentStatusPaid},
		{"overpaid", "100.00", "150.00", enum.PaymentStatusPaid},
		{"partial", "100.00", "40.00", enum.PaymentStatusPartial},
		{"nothing tendered", "100.00", "0", enum.PaymentStatusPending},
		{"zero total", "0", "0", enum.PaymentStatusPaid},
		{"one cent short", "100.00", "99.99", enum.PaymentStatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPaymentStatus(dec(tt.total), dec(tt.tendered)))
		})
	}
}

func TestClassifyPaymentStatusPartitions(t *testing.T) {
	// every (total, tendered) pair lands in exactly one of the three states
	values := []string{"0", "0.01", "1", "99.99", "100", "250.75"}
	for _, total := range values {
		for _, tendered := range values {
			status := ClassifyPaymentStatus(dec(total), dec(tendered))
			switch {
			case dec(tendered).GreaterThanOrEqual(dec(total)):
				assert.Equal(t, enum.PaymentStatusPaid, status)
			case dec(tendered).IsPositive():
				assert.Equal(t, enum.PaymentStatusPartial, status)
			default:
				assert.Equal(t, enum.PaymentStatusPending, status)
			}
		}
	}
}

func TestCanFinalize(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		tendered     string
		allowPartial bool
		want         bool
	}{
		{"paid in full", "100", "100", false, true},
		{"underpaid strict", "100", "50", false, false},
		{"underpaid partial allowed", "100", "50", true, true},
		{"nothing tendered partial allowed", "100", "0", true, false},
		{"zero total zero tender", "0", "0", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanFinalize(dec(tt.total), dec(tt.tendered), tt.allowPartial))
		})
	}
}

func TestNewPaymentRejectsNegativeAmounts(t *testing.T) {
	_, err := NewPayment(dec("100"), dec("-1"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPayment(dec("-100"), dec("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPaymentDerivations(t *testing.T) {
	p, err := NewPayment(dec("270.00"), dec("200.00"))
	require.NoError(t, err)

	assert.True(t, p.Change().IsZero())
	assert.True(t, p.Due().Equal(dec("70.00")))
	assert.Equal(t, enum.PaymentStatusPartial, p.Status())
	assert.False(t, p.CanFinalize(false))
	assert.True(t, p.CanFinalize(true))
}

// Scenario: one line, price 100.00, qty 3, no discount.
func TestCheckoutExactTender(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("Atlas", "100.00", 10), 3))

	assert.True(t, cart.Subtotal().Equal(dec("300.00")))
	assert.True(t, cart.Total().Equal(dec("300.00")))

	p, err := NewPayment(cart.Total(), dec("300.00"))
	require.NoError(t, err)
	assert.True(t, p.Change().IsZero())
	assert.Equal(t, enum.PaymentStatusPaid, p.Status())
}

// Scenario: same cart with a 10% global discount and a short tender.
func TestCheckoutDiscountedPartialTender(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("Atlas", "100.00", 10), 3))
	require.NoError(t, cart.SetGlobalDiscount(enum.DiscountTypePercentage, dec("10")))

	assert.True(t, cart.Total().Equal(dec("270.00")))

	p, err := NewPayment(cart.Total(), dec("200.00"))
	require.NoError(t, err)
	assert.True(t, p.Change().IsZero())
	assert.Equal(t, enum.PaymentStatusPartial, p.Status())
}
