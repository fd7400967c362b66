package service

import (
	"errors"
	"net/http"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
)

// BillingAppError maps a Bill Builder or Bill Store failure onto an API
// error, keeping the cashier-facing message. Other errors pass through.
func BillingAppError(err error) error {
	if err == nil {
		return nil
	}

	var subErr *billing.SubmissionError
	if errors.As(err, &subErr) {
		var stockErr *repository.InsufficientStockError
		switch {
		case errors.Is(err, billing.ErrDuplicateBill), errors.As(err, &stockErr):
			return apperror.NewConflictError(subErr.Reason)
		case errors.Is(err, billing.ErrInvalidInput):
			return apperror.NewUnprocessableError(subErr.Reason)
		default:
			return apperror.NewBadGatewayError(subErr.Reason)
		}
	}

	var be *billing.Error
	if !errors.As(err, &be) {
		return err
	}
	switch {
	case errors.Is(be, billing.ErrOutOfStock):
		return apperror.NewConflictError(be.Message)
	case errors.Is(be, billing.ErrIndexOutOfRange):
		return apperror.NewAppError(http.StatusNotFound, be.Message)
	default:
		return apperror.NewUnprocessableError(be.Message)
	}
}
