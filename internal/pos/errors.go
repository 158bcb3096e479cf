package pos

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Validation errors returned by the cart, payment and return engines.
// All of them are ordinary recoverable results the caller is expected to
// surface and let the user correct; none of them abort a session.
var (
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInvalidPercentage = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidDiscount   = errors.New("unknown discount type")
	ErrInvalidReturnType = errors.New("unknown return type")
	ErrLineNotFound      = errors.New("product is not in the cart")
	ErrItemNotInSale     = errors.New("product is not part of the original sale")
	ErrEmptySelection    = errors.New("no item selected for return or exchange")
	ErrExchangeNotAllowed = errors.New("exchange items are only valid on an exchange session")
	ErrSessionSubmitted  = errors.New("return session already submitted")
)

// InsufficientStockError is returned when adding a product would exceed
// its available quantity. The cart is left unchanged.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d requested, %d available",
		e.ProductName, e.Requested, e.Available)
}

// QuantityExceedsOriginalError is returned when a return quantity is greater
// than the quantity originally purchased. The prior valid selection is kept.
type QuantityExceedsOriginalError struct {
	ProductID uuid.UUID
	Purchased int
	Requested int
}

func (e *QuantityExceedsOriginalError) Error() string {
	return fmt.Sprintf("return quantity %d exceeds originally purchased quantity %d",
		e.Requested, e.Purchased)
}

// MissingReasonError is returned when the reason policy is violated:
// every selected return line needs a non-empty reason, and the session
// needs an overall reason.
type MissingReasonError struct {
	ProductID   uuid.UUID
	ProductName string
	Overall     bool
}

func (e *MissingReasonError) Error() string {
	if e.Overall {
		return "an overall return reason is required"
	}
	return fmt.Sprintf("a reason is required for returned item %s", e.ProductName)
}

// SubmissionFailedError wraps an error from the external submission
// collaborator. The session it came from keeps all user-entered state
// so the submission can be retried.
type SubmissionFailedError struct {
	Err error
}

func (e *SubmissionFailedError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionFailedError) Unwrap() error {
	return e.Err
}
