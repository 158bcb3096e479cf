package printer

import (
	"fmt"
	"time"
)

// ReceiptItem is one display line on a receipt.
type ReceiptItem struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// ReturnSection holds the returned-goods part of a return or exchange
// receipt.
type ReturnSection struct {
	Status       string
	RefundAmount float64
	RefundMethod string
	Items        []ReceiptItem
}

// Receipt is the full document model rendered to ESC/POS. The store
// fields come from the location record so each branch prints its own
// header.
type Receipt struct {
	StoreName    string
	StoreAddress string
	StorePhone   string
	StoreTaxID   string

	DocumentNo string
	Cashier    string
	IssuedAt   time.Time

	Items          []ReceiptItem
	Subtotal       float64
	DiscountAmount float64
	Total          float64
	AmountPaid     float64
	Change         float64
	PaymentMethod  string

	Return *ReturnSection

	FooterLines []string
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// truncate shortens a name so the quantity prefix and total still fit on
// one line.
func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// Render produces the ESC/POS byte stream for the receipt at the given
// character width.
func (r *Receipt) Render(charWidth int) []byte {
	b := NewBuilder(charWidth)

	b.Align(AlignCenter).Bold(true).Size(SizeDouble)
	b.Line(r.StoreName)
	b.Size(SizeNormal).Bold(false)
	if r.StoreAddress != "" {
		b.Line(r.StoreAddress)
	}
	if r.StorePhone != "" {
		b.Line("Tel: " + r.StorePhone)
	}
	if r.StoreTaxID != "" {
		b.Line("Tax ID: " + r.StoreTaxID)
	}
	b.Feed(1)

	b.Align(AlignLeft)
	if r.DocumentNo != "" {
		b.TwoCol("No:", r.DocumentNo)
	}
	b.TwoCol("Date:", r.IssuedAt.Format("2006-01-02 15:04"))
	if r.Cashier != "" {
		b.TwoCol("Cashier:", r.Cashier)
	}
	b.Rule('-')

	nameWidth := b.Width() - 14
	for _, item := range r.Items {
		b.ItemLine(item.Quantity, truncate(item.Name, nameWidth), money(item.Total))
	}

	if r.Return != nil {
		b.Rule('-')
		b.Bold(true).Line("RETURNED").Bold(false)
		for _, item := range r.Return.Items {
			b.ItemLine(item.Quantity, truncate(item.Name, nameWidth), money(item.Total))
		}
		b.TwoCol("Refund ("+r.Return.RefundMethod+"):", money(r.Return.RefundAmount))
		b.TwoCol("Return status:", r.Return.Status)
	}

	b.Rule('-')
	if r.Subtotal != 0 {
		b.TwoCol("Subtotal", money(r.Subtotal))
	}
	if r.DiscountAmount > 0 {
		b.TwoCol("Discount", "-"+money(r.DiscountAmount))
	}
	b.Bold(true).TwoCol("TOTAL", money(r.Total)).Bold(false)
	if r.PaymentMethod != "" {
		b.TwoCol("Paid ("+r.PaymentMethod+")", money(r.AmountPaid))
		b.TwoCol("Change", money(r.Change))
	}

	if len(r.FooterLines) > 0 {
		b.Feed(1).Align(AlignCenter)
		for _, line := range r.FooterLines {
			b.Line(line)
		}
	}

	b.Feed(3).Cut()
	return b.Bytes()
}
