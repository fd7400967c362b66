package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrDuplicate is returned when a write collides with a unique constraint
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned by writes that target a missing row
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyVoid is returned when voiding a bill twice
	ErrAlreadyVoid = errors.New("bill is already void")
)

// InsufficientStockError is returned when a bill asks for more units of a
// product than are on hand at submission time
type InsufficientStockError struct {
	ProductID uuid.UUID
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d units of %s available, %d requested", e.Available, e.Name, e.Requested)
}
