package pos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// SalePayloadItem is one line of a sale submission.
type SalePayloadItem struct {
	ProductID     uuid.UUID          `json:"product_id"`
	Name          string             `json:"name"`
	Quantity      int                `json:"quantity"`
	UnitPrice     decimal.Decimal    `json:"unit_price"`
	DiscountType  *enum.DiscountType `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal   `json:"discount_value,omitempty"`
}

// SalePayload is what the cart hands to the sale submission collaborator.
// All amounts are rounded to two decimal places at this boundary.
type SalePayload struct {
	Items               []SalePayloadItem  `json:"items"`
	GlobalDiscountType  *enum.DiscountType `json:"global_discount_type,omitempty"`
	GlobalDiscountValue *decimal.Decimal   `json:"global_discount_value,omitempty"`
	Subtotal            decimal.Decimal    `json:"subtotal"`
	Total               decimal.Decimal    `json:"total"`
	AmountPaid          decimal.Decimal    `json:"amount_paid"`
	ChangeAmount        decimal.Decimal    `json:"change_amount"`
	PaymentMethod       string             `json:"payment_method"`
	PaymentStatus       enum.PaymentStatus `json:"payment_status"`
}

// BuildSalePayload reconciles the cart against the tendered amount and
// assembles the submission payload. Negative tenders are rejected before
// any derivation.
func BuildSalePayload(cart *Cart, tendered decimal.Decimal, method string) (*SalePayload, error) {
	payment, err := NewPayment(cart.Total(), tendered)
	if err != nil {
		return nil, err
	}

	p := &SalePayload{
		Subtotal:      cart.Subtotal().Round(2),
		Total:         payment.Total.Round(2),
		AmountPaid:    payment.Tendered.Round(2),
		ChangeAmount:  payment.Change().Round(2),
		PaymentMethod: method,
		PaymentStatus: payment.Status(),
	}
	if g := cart.GlobalDiscount(); g != nil {
		p.GlobalDiscountType = &g.Type
		v := g.Value
		p.GlobalDiscountValue = &v
	}
	for _, line := range cart.Lines() {
		item := SalePayloadItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if line.Discount != nil {
			item.DiscountType = &line.Discount.Type
			v := line.Discount.Value
			item.DiscountValue = &v
		}
		p.Items = append(p.Items, item)
	}
	return p, nil
}

// RecomputeTotal derives the total from the payload's own items and
// discounts. Rebuilding a cart from the payload reproduces the same total,
// so the receiver can verify the arithmetic before persisting.
func (p *SalePayload) RecomputeTotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range p.Items {
		gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if item.DiscountType != nil && item.DiscountValue != nil {
			d := Discount{Type: *item.DiscountType, Value: *item.DiscountValue}
			gross = gross.Sub(d.AmountOff(gross))
		}
		subtotal = subtotal.Add(gross)
	}
	total := subtotal
	if p.GlobalDiscountType != nil && p.GlobalDiscountValue != nil {
		d := Discount{Type: *p.GlobalDiscountType, Value: *p.GlobalDiscountValue}
		total = total.Sub(d.AmountOff(subtotal))
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

// ReturnPayloadItem is one returned line of a return submission.
type ReturnPayloadItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reason    string          `json:"reason"`
}

// ExchangePayloadItem is one line of new merchandise in an exchange.
type ExchangePayloadItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ReturnPayload is what a return session hands to the submission
// collaborator.
type ReturnPayload struct {
	OriginalSaleID      uuid.UUID             `json:"original_sale_id"`
	ReturnType          enum.ReturnType       `json:"return_type"`
	ReturnItems         []ReturnPayloadItem   `json:"return_items"`
	ExchangeItems       []ExchangePayloadItem `json:"exchange_items,omitempty"`
	TotalRefundAmount   decimal.Decimal       `json:"total_refund_amount"`
	TotalExchangeAmount decimal.Decimal       `json:"total_exchange_amount"`
	BalanceAdjustment   decimal.Decimal       `json:"balance_adjustment"`
	ReturnStatus        enum.ReturnStatus     `json:"return_status"`
	Notes               string                `json:"notes"`
}

// TicketItem is a display line on a printed or downloaded ticket.
type TicketItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// ReturnTicketInfo is the return section of a ticket.
type ReturnTicketInfo struct {
	Status       enum.ReturnStatus `json:"status"`
	RefundAmount float64           `json:"refund_amount"`
	RefundMethod string            `json:"refund_method"`
	Items        []TicketItem      `json:"items"`
}

// TicketData is the document payload handed to the external renderer.
type TicketData struct {
	Items          []TicketItem      `json:"items"`
	Subtotal       float64           `json:"subtotal"`
	DiscountAmount float64           `json:"discount_amount"`
	Total          float64           `json:"total"`
	AmountPaid     float64           `json:"amount_paid"`
	Change         float64           `json:"change"`
	PaymentMethod  string            `json:"payment_method"`
	ReturnInfo     *ReturnTicketInfo `json:"return_info,omitempty"`
}

func toDisplay(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// BuildTicket turns a finalized cart and payment into renderer input.
func BuildTicket(cart *Cart, payment Payment, method string) TicketData {
	t := TicketData{
		Subtotal:       toDisplay(cart.Subtotal()),
		DiscountAmount: toDisplay(cart.GlobalDiscountAmount()),
		Total:          toDisplay(cart.Total()),
		AmountPaid:     toDisplay(payment.Tendered),
		Change:         toDisplay(payment.Change()),
		PaymentMethod:  method,
	}
	for _, line := range cart.Lines() {
		t.Items = append(t.Items, TicketItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: toDisplay(line.UnitPrice),
			Total:     toDisplay(line.Total()),
		})
	}
	return t
}

// BuildReturnTicket turns a return payload into renderer input. The ticket
// total carries the balance adjustment so an exchange that costs the
// customer more prints the amount still owed.
func BuildReturnTicket(p *ReturnPayload, refundMethod string) TicketData {
	info := &ReturnTicketInfo{
		Status:       p.ReturnStatus,
		RefundAmount: toDisplay(p.TotalRefundAmount),
		RefundMethod: refundMethod,
	}
	for _, item := range p.ReturnItems {
		info.Items = append(info.Items, TicketItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: toDisplay(item.UnitPrice),
			Total:     toDisplay(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}

	t := TicketData{
		Total:      toDisplay(p.BalanceAdjustment),
		ReturnInfo: info,
	}
	for _, item := range p.ExchangeItems {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		t.Items = append(t.Items, TicketItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: toDisplay(item.UnitPrice),
			Total:     toDisplay(line),
		})
		t.Subtotal += toDisplay(line)
	}
	return t
}
