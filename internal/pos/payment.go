package pos

import (
	"github.com/shopspring/decimal"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// ComputeChange returns the change owed to the customer:
// max(0, tendered - total).
func ComputeChange(total, tendered decimal.Decimal) decimal.Decimal {
	change := tendered.Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// ClassifyPaymentStatus partitions the (total, tendered) plane into exactly
// three states: paid when tendered covers the total, partial when some but
// not all of it is tendered, pending otherwise. A zero total with zero
// tendered is paid.
func ClassifyPaymentStatus(total, tendered decimal.Decimal) enum.PaymentStatus {
	if tendered.GreaterThanOrEqual(total) {
		return enum.PaymentStatusPaid
	}
	if tendered.IsPositive() {
		return enum.PaymentStatusPartial
	}
	return enum.PaymentStatusPending
}

// CanFinalize reports whether a sale may be completed with the tendered
// amount. Partial tenders are allowed only when allowPartial is set.
func CanFinalize(total, tendered decimal.Decimal, allowPartial bool) bool {
	if tendered.GreaterThanOrEqual(total) {
		return true
	}
	return allowPartial && tendered.IsPositive()
}

// Payment pairs a finalized total with the amount the customer tendered.
type Payment struct {
	Total    decimal.Decimal
	Tendered decimal.Decimal
}

// NewPayment builds a payment record. Negative amounts are rejected before
// any derivation happens.
func NewPayment(total, tendered decimal.Decimal) (Payment, error) {
	if total.IsNegative() || tendered.IsNegative() {
		return Payment{}, ErrInvalidAmount
	}
	return Payment{Total: total, Tendered: tendered}, nil
}

// Change is the amount returned to the customer.
func (p Payment) Change() decimal.Decimal {
	return ComputeChange(p.Total, p.Tendered)
}

// Due is the amount still owed, never negative.
func (p Payment) Due() decimal.Decimal {
	due := p.Total.Sub(p.Tendered)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Status classifies the payment as paid, partial or pending.
func (p Payment) Status() enum.PaymentStatus {
	return ClassifyPaymentStatus(p.Total, p.Tendered)
}

// CanFinalize reports whether the sale may be completed.
func (p Payment) CanFinalize(allowPartial bool) bool {
	return CanFinalize(p.Total, p.Tendered, allowPartial)
}
