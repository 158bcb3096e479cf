package pos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// SessionState is the lifecycle state of a return/exchange session.
type SessionState int

const (
	// StateSelecting is the initial state: quantities, reasons and
	// exchange items may still change.
	StateSelecting SessionState = iota
	// StateSubmitted is terminal: the payload was accepted by the
	// submission collaborator.
	StateSubmitted
)

// OriginalSaleItem is the read-only snapshot of a committed sale line that
// bounds what can be returned.
type OriginalSaleItem struct {
	ProductID    uuid.UUID
	Name         string
	UnitPrice    decimal.Decimal
	PurchasedQty int
}

// ExchangeItem is new merchandise handed to the customer in an exchange.
type ExchangeItem struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type returnSelection struct {
	quantity int
	reason   string
}

// ReturnSession reconciles a return or exchange against an original sale.
// The caller adjusts selections while the session is Selecting; Submit
// validates, hands the payload to the submission function, and only moves
// to Submitted on success. A failed submission keeps every quantity and
// reason so nothing has to be re-entered.
type ReturnSession struct {
	saleID     uuid.UUID
	returnType enum.ReturnType
	originals  []OriginalSaleItem
	selections map[uuid.UUID]*returnSelection
	exchange   []ExchangeItem
	notes      string
	state      SessionState
}

// NewReturnSession starts a session for the given original sale items.
func NewReturnSession(saleID uuid.UUID, returnType enum.ReturnType, items []OriginalSaleItem) (*ReturnSession, error) {
	if !returnType.IsValid() {
		return nil, ErrInvalidReturnType
	}
	originals := make([]OriginalSaleItem, len(items))
	copy(originals, items)
	return &ReturnSession{
		saleID:     saleID,
		returnType: returnType,
		originals:  originals,
		selections: make(map[uuid.UUID]*returnSelection),
	}, nil
}

// State returns the session's lifecycle state.
func (s *ReturnSession) State() SessionState {
	return s.state
}

// SaleID returns the original sale this session reconciles against.
func (s *ReturnSession) SaleID() uuid.UUID {
	return s.saleID
}

// Type returns refund or exchange.
func (s *ReturnSession) Type() enum.ReturnType {
	return s.returnType
}

func (s *ReturnSession) original(productID uuid.UUID) *OriginalSaleItem {
	for i := range s.originals {
		if s.originals[i].ProductID == productID {
			return &s.originals[i]
		}
	}
	return nil
}

func (s *ReturnSession) selection(productID uuid.UUID) *returnSelection {
	sel, ok := s.selections[productID]
	if !ok {
		sel = &returnSelection{}
		s.selections[productID] = sel
	}
	return sel
}

// SetReturnQuantity chooses how many units of an item to return. Values
// outside [0, purchased quantity] are rejected, not clamped, and the prior
// valid selection stays in place.
func (s *ReturnSession) SetReturnQuantity(productID uuid.UUID, quantity int) error {
	if s.state == StateSubmitted {
		return ErrSessionSubmitted
	}
	item := s.original(productID)
	if item == nil {
		return ErrItemNotInSale
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity > item.PurchasedQty {
		return &QuantityExceedsOriginalError{
			ProductID: productID,
			Purchased: item.PurchasedQty,
			Requested: quantity,
		}
	}
	s.selection(productID).quantity = quantity
	return nil
}

// SetReason records the per-line return reason.
func (s *ReturnSession) SetReason(productID uuid.UUID, reason string) error {
	if s.state == StateSubmitted {
		return ErrSessionSubmitted
	}
	if s.original(productID) == nil {
		return ErrItemNotInSale
	}
	s.selection(productID).reason = reason
	return nil
}

// SetNotes records the overall return reason.
func (s *ReturnSession) SetNotes(notes string) {
	s.notes = notes
}

// ReturnQuantity reports the currently selected quantity for an item.
func (s *ReturnSession) ReturnQuantity(productID uuid.UUID) int {
	if sel, ok := s.selections[productID]; ok {
		return sel.quantity
	}
	return 0
}

// AddExchangeItem appends new merchandise to an exchange, merging lines for
// the same product. Refund sessions reject exchange items.
func (s *ReturnSession) AddExchangeItem(item ExchangeItem) error {
	if s.state == StateSubmitted {
		return ErrSessionSubmitted
	}
	if s.returnType != enum.ReturnTypeExchange {
		return ErrExchangeNotAllowed
	}
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.UnitPrice.IsNegative() {
		return ErrInvalidAmount
	}
	for i := range s.exchange {
		if s.exchange[i].ProductID == item.ProductID {
			s.exchange[i].Quantity += item.Quantity
			return nil
		}
	}
	s.exchange = append(s.exchange, item)
	return nil
}

// RemoveExchangeItem drops an exchange line. Absent products are a no-op.
func (s *ReturnSession) RemoveExchangeItem(productID uuid.UUID) {
	for i := range s.exchange {
		if s.exchange[i].ProductID == productID {
			s.exchange = append(s.exchange[:i], s.exchange[i+1:]...)
			return
		}
	}
}

// ExchangeItems returns copies of the exchange lines.
func (s *ReturnSession) ExchangeItems() []ExchangeItem {
	out := make([]ExchangeItem, len(s.exchange))
	copy(out, s.exchange)
	return out
}

// RefundTotal is the value of all selected return quantities.
func (s *ReturnSession) RefundTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.originals {
		if sel, ok := s.selections[item.ProductID]; ok && sel.quantity > 0 {
			sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(sel.quantity))))
		}
	}
	return sum
}

// ExchangeTotal is the value of the new merchandise. It is forced to zero
// for refund sessions.
func (s *ReturnSession) ExchangeTotal() decimal.Decimal {
	if s.returnType != enum.ReturnTypeExchange {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, item := range s.exchange {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// BalanceAdjustment is exchange total minus refund total. Positive means
// the customer owes the difference, negative means a refund is due. For a
// pure refund it is exactly -RefundTotal.
func (s *ReturnSession) BalanceAdjustment() decimal.Decimal {
	return s.ExchangeTotal().Sub(s.RefundTotal())
}

// ReturnStatus labels the session complete when every purchased unit is
// being returned, partial otherwise. Informational only.
func (s *ReturnSession) ReturnStatus() enum.ReturnStatus {
	purchased, returned := 0, 0
	for _, item := range s.originals {
		purchased += item.PurchasedQty
		returned += s.ReturnQuantity(item.ProductID)
	}
	if purchased > 0 && returned == purchased {
		return enum.ReturnStatusComplete
	}
	return enum.ReturnStatusPartial
}

// validate applies the submission rules: at least one positive selection
// (or, for exchanges, at least one exchange item), a non-empty reason per
// selected line, and a non-empty overall reason.
func (s *ReturnSession) validate() error {
	selected := 0
	for _, item := range s.originals {
		if s.ReturnQuantity(item.ProductID) > 0 {
			selected++
		}
	}

	if s.returnType == enum.ReturnTypeRefund && selected == 0 {
		return ErrEmptySelection
	}
	if s.returnType == enum.ReturnTypeExchange && selected == 0 && len(s.exchange) == 0 {
		return ErrEmptySelection
	}

	for _, item := range s.originals {
		sel, ok := s.selections[item.ProductID]
		if !ok || sel.quantity == 0 {
			continue
		}
		if sel.reason == "" {
			return &MissingReasonError{ProductID: item.ProductID, ProductName: item.Name}
		}
	}
	if s.notes == "" {
		return &MissingReasonError{Overall: true}
	}
	return nil
}

// BuildPayload validates the session and assembles the submission payload.
// The session state is not changed; a validation error re-presents the
// Selecting state with everything intact.
func (s *ReturnSession) BuildPayload() (*ReturnPayload, error) {
	if s.state == StateSubmitted {
		return nil, ErrSessionSubmitted
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	p := &ReturnPayload{
		OriginalSaleID:      s.saleID,
		ReturnType:          s.returnType,
		TotalRefundAmount:   s.RefundTotal().Round(2),
		TotalExchangeAmount: s.ExchangeTotal().Round(2),
		BalanceAdjustment:   s.BalanceAdjustment().Round(2),
		ReturnStatus:        s.ReturnStatus(),
		Notes:               s.notes,
	}
	for _, item := range s.originals {
		sel, ok := s.selections[item.ProductID]
		if !ok || sel.quantity == 0 {
			continue
		}
		p.ReturnItems = append(p.ReturnItems, ReturnPayloadItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  sel.quantity,
			UnitPrice: item.UnitPrice.Round(2),
			Reason:    sel.reason,
		})
	}
	for _, item := range s.exchange {
		p.ExchangeItems = append(p.ExchangeItems, ExchangePayloadItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Round(2),
		})
	}
	return p, nil
}

// Submit validates the session, hands the payload to send, and marks the
// session Submitted only if send succeeds. On failure the session returns
// to Selecting with all selections preserved and the error is wrapped in a
// SubmissionFailedError.
func (s *ReturnSession) Submit(send func(*ReturnPayload) error) (*ReturnPayload, error) {
	payload, err := s.BuildPayload()
	if err != nil {
		return nil, err
	}
	if err := send(payload); err != nil {
		return nil, &SubmissionFailedError{Err: err}
	}
	s.state = StateSubmitted
	return payload, nil
}
