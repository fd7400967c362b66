package billing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidDiscount      = errors.New("invalid discount")
	ErrOutOfStock           = errors.New("out of stock")
	ErrIndexOutOfRange      = errors.New("line item index out of range")
	ErrEmptyBill            = errors.New("bill has no items")
	ErrMissingVehicleNumber = errors.New("vehicle number is required")
	ErrSubmissionFailed     = errors.New("bill submission failed")
	ErrDuplicateBill        = errors.New("bill already submitted")
	ErrTotalsMismatch       = errors.New("bill totals do not match line items")
)

// Error is a rejected builder operation. Kind is one of the sentinels above
// and Message is the text shown to the cashier.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// SubmissionError is returned by a BillStore that could not persist a bill.
// The bill stays with the caller so it can be submitted again.
type SubmissionError struct {
	Reason string
	Err    error
}

// NewSubmissionError wraps err (which may be nil) with a cashier-facing reason.
func NewSubmissionError(reason string, err error) *SubmissionError {
	return &SubmissionError{Reason: reason, Err: err}
}

func (e *SubmissionError) Error() string {
	return "bill submission failed: " + e.Reason
}

func (e *SubmissionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSubmissionFailed}
	}
	return []error{ErrSubmissionFailed, e.Err}
}
