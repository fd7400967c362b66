package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/autospa/autospa-api/internal/application/session"
	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/google/uuid"
)

// SubmitReceipt is returned once a bill has been stored
type SubmitReceipt struct {
	CustomerID uuid.UUID `json:"customer_id"`
	BillingID  string    `json:"billing_id"`
	Message    string    `json:"message"`
}

// Submitter stores finalized bills and reports the customer they were
// recorded against
type Submitter interface {
	billing.BillStore
	Submit(ctx context.Context, bill *billing.Bill) (*SubmitReceipt, error)
}

// BillSubmitter is the database-backed Bill Store. The submitting user is
// taken from the session in ctx.
type BillSubmitter struct {
	billRepo       repository.BillRepository
	archive        repository.BillArchive
	archiveTimeout time.Duration
}

var _ Submitter = (*BillSubmitter)(nil)

// NewBillSubmitter creates a bill store. archive may be nil.
func NewBillSubmitter(billRepo repository.BillRepository, archive repository.BillArchive) *BillSubmitter {
	return &BillSubmitter{
		billRepo:       billRepo,
		archive:        archive,
		archiveTimeout: 5 * time.Second,
	}
}

// SubmitBill implements billing.BillStore
func (s *BillSubmitter) SubmitBill(ctx context.Context, bill *billing.Bill) error {
	_, err := s.Submit(ctx, bill)
	return err
}

// Submit stores bill in one transaction. Failures are *billing.SubmissionError.
func (s *BillSubmitter) Submit(ctx context.Context, bill *billing.Bill) (*SubmitReceipt, error) {
	if bill == nil {
		return nil, billing.NewSubmissionError("No bill to submit", billing.ErrInvalidInput)
	}
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, billing.NewSubmissionError("Sign in again to submit bills", nil)
	}

	record, err := entity.NewBillFromDomain(bill, sess.UserID())
	if err != nil {
		return nil, billing.NewSubmissionError("Bill refers to an unknown catalog item", errors.Join(billing.ErrInvalidInput, err))
	}

	if err := s.billRepo.Submit(ctx, record); err != nil {
		var stockErr *repository.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			reason := fmt.Sprintf("Only %d units of %s available in stock", stockErr.Available, stockErr.Name)
			return nil, billing.NewSubmissionError(reason, err)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, billing.NewSubmissionError("This bill has already been submitted", billing.ErrDuplicateBill)
		default:
			log.Printf("[billing] submit bill=%s failed: %v", bill.ID, err)
			return nil, billing.NewSubmissionError("Could not save the bill, please try again", err)
		}
	}

	log.Printf("[billing] submitted bill=%s vehicle=%s items=%d total=%s by=%s",
		bill.ID, bill.Customer.VehicleNumber, len(bill.Items), bill.GrandTotal, sess.Email())

	s.archiveCopy(ctx, bill)

	return &SubmitReceipt{
		CustomerID: record.CustomerID,
		BillingID:  bill.ID,
		Message:    "Bill submitted successfully",
	}, nil
}

// archiveCopy writes the off-site copy. The bill is already committed, so
// failures are only logged.
func (s *BillSubmitter) archiveCopy(ctx context.Context, bill *billing.Bill) {
	if s.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.archiveTimeout)
	defer cancel()
	if err := s.archive.Archive(ctx, bill); err != nil {
		log.Printf("[billing] archive bill=%s failed: %v", bill.ID, err)
	}
}
