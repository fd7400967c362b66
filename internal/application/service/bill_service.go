package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
)

// BillService handles submitted bills
type BillService struct {
	billRepo  repository.BillRepository
	catalog   billing.CatalogProvider
	submitter Submitter
	now       func() time.Time
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository, catalog billing.CatalogProvider, submitter Submitter) *BillService {
	return &BillService{
		billRepo:  billRepo,
		catalog:   catalog,
		submitter: submitter,
		now:       time.Now,
	}
}

// SubmitBill stores a bill finalized by a client. The stated figures are
// checked against the lines and the lines against the current catalog
// before anything is written.
func (s *BillService) SubmitBill(ctx context.Context, bill *billing.Bill) (*SubmitReceipt, error) {
	if err := bill.Validate(); err != nil {
		return nil, BillingAppError(err)
	}
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	} else if _, err := uuid.Parse(bill.ID); err != nil {
		return nil, apperror.NewUnprocessableError("Bill id must be a UUID")
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = s.now()
	}

	if err := s.checkPrices(ctx, bill); err != nil {
		return nil, err
	}

	receipt, err := s.submitter.Submit(ctx, bill)
	if err != nil {
		return nil, BillingAppError(err)
	}
	return receipt, nil
}

// checkPrices rejects catalog lines whose item is gone or whose price is
// not the catalog price. Custom lines are taken as entered.
func (s *BillService) checkPrices(ctx context.Context, bill *billing.Bill) error {
	catalog, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	for i, line := range bill.Items {
		if line.Kind == billing.KindCustom {
			continue
		}
		entry, ok := catalog.Lookup(line.ID, line.Kind)
		if !ok {
			return apperror.NewUnprocessableError(fmt.Sprintf("Line %d: %s is no longer in the catalog", i+1, line.Name))
		}
		var price billing.Money
		switch e := entry.(type) {
		case billing.ProductEntry:
			price = e.Price
		case billing.ServiceEntry:
			price = e.Price
		}
		if price != line.UnitPrice {
			return apperror.NewUnprocessableError(fmt.Sprintf("Line %d: price of %s is now %s", i+1, line.Name, price))
		}
	}
	return nil
}

// GetBill retrieves a bill with its items
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with page-based pagination
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// ListBillsWithCursor lists bills using cursor-based pagination
func (s *BillService) ListBillsWithCursor(ctx context.Context, params *repository.BillCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Bill], error) {
	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()
	if _, err := params.Cursor.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}
	bills, err := s.billRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	cursorPag, items := pagination.NewCursorPagination(bills, params.Cursor, func(b entity.Bill) pagination.Cursor {
		return pagination.Cursor{At: b.BilledAt, ID: b.ID.String()}
	})

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// VoidBill cancels a submitted bill and returns its products to stock
func (s *BillService) VoidBill(ctx context.Context, id, userID uuid.UUID) (*entity.Bill, error) {
	if err := s.billRepo.Void(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NewNotFoundError("Bill")
		case errors.Is(err, repository.ErrAlreadyVoid):
			return nil, apperror.NewConflictError("Bill is already void")
		}
		return nil, err
	}
	log.Printf("[billing] voided bill=%s by=%s", id, userID)
	return s.GetBill(ctx, id)
}
