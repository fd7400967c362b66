package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingAppError(t *testing.T) {
	b := billing.NewBuilder()
	_, emptyErr := b.FinalizeDraft()
	removeErr := b.RemoveItem(4)

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "duplicate bill",
			err:     billing.NewSubmissionError("This bill has already been submitted", billing.ErrDuplicateBill),
			code:    http.StatusConflict,
			message: "This bill has already been submitted",
		},
		{
			name:    "stock shortage at submit",
			err:     billing.NewSubmissionError("Only 1 units of Oil Filter available in stock", &repository.InsufficientStockError{Name: "Oil Filter", Requested: 2, Available: 1}),
			code:    http.StatusConflict,
			message: "Only 1 units of Oil Filter available in stock",
		},
		{
			name:    "invalid bill at submit",
			err:     billing.NewSubmissionError("No bill to submit", billing.ErrInvalidInput),
			code:    http.StatusUnprocessableEntity,
			message: "No bill to submit",
		},
		{
			name:    "store failure",
			err:     billing.NewSubmissionError("Could not save the bill, please try again", errors.New("connection reset")),
			code:    http.StatusBadGateway,
			message: "Could not save the bill, please try again",
		},
		{
			name:    "empty bill",
			err:     emptyErr,
			code:    http.StatusUnprocessableEntity,
			message: "Add at least one item to the bill",
		},
		{
			name: "index out of range",
			err:  removeErr,
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := requireAppError(t, BillingAppError(tt.err), tt.code)
			if tt.message != "" {
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}
}

func TestBillingAppError_PassesThroughOtherErrors(t *testing.T) {
	assert.NoError(t, BillingAppError(nil))

	plain := errors.New("database is down")
	require.Same(t, plain, BillingAppError(plain))
}
