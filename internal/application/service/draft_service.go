package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/google/uuid"
)

// DraftView is a draft as returned to its owner
type DraftView struct {
	ID     string            `json:"id"`
	State  string            `json:"state"`
	Draft  billing.DraftBill `json:"draft"`
	Totals billing.Totals    `json:"totals"`
}

type draft struct {
	mu        sync.Mutex
	owner     uuid.UUID
	builder   *billing.Builder
	touchedAt time.Time
}

// DraftService keeps one Bill Builder per open invoice; a draft belongs to
// the user that opened it and is invisible to everyone else
type DraftService struct {
	catalog billing.CatalogProvider
	store   Submitter
	ttl     time.Duration
	now     func() time.Time

	mu     sync.Mutex
	drafts map[string]*draft
}

// NewDraftService creates a draft registry whose drafts are dropped by Run
// once idle for longer than ttl
func NewDraftService(catalog billing.CatalogProvider, store Submitter, ttl time.Duration) *DraftService {
	return &DraftService{
		catalog: catalog,
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		drafts:  make(map[string]*draft),
	}
}

// Create opens an empty draft for owner
func (s *DraftService) Create(ctx context.Context, owner uuid.UUID) *DraftView {
	d := &draft{
		owner:     owner,
		builder:   billing.NewBuilder(),
		touchedAt: s.now(),
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.drafts[id] = d
	s.mu.Unlock()

	return view(id, d)
}

// Get returns the draft with its current totals
func (s *DraftService) Get(ctx context.Context, owner uuid.UUID, id string) (*DraftView, error) {
	return s.with(owner, id, func(*billing.Builder) error { return nil })
}

// Discard deletes the draft
func (s *DraftService) Discard(ctx context.Context, owner uuid.UUID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || d.owner != owner {
		return apperror.NewNotFoundError("Draft")
	}
	delete(s.drafts, id)
	return nil
}

// AddCatalogItem looks the item up in a fresh catalog and adds one unit
func (s *DraftService) AddCatalogItem(ctx context.Context, owner uuid.UUID, id string, kind billing.Kind, itemID string) (*DraftView, error) {
	catalog, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := catalog.Lookup(itemID, kind)
	if !ok {
		return nil, apperror.NewNotFoundError("Catalog item")
	}
	return s.with(owner, id, func(b *billing.Builder) error {
		return b.AddCatalogItem(entry)
	})
}

func (s *DraftService) AddCustomItem(ctx context.Context, owner uuid.UUID, id, name string, price billing.Money, description string) (*DraftView, error) {
	return s.with(owner, id, func(b *billing.Builder) error {
		return b.AddCustomItem(name, price, description)
	})
}

func (s *DraftService) RemoveItem(ctx context.Context, owner uuid.UUID, id string, index int) (*DraftView, error) {
	return s.with(owner, id, func(b *billing.Builder) error {
		return b.RemoveItem(index)
	})
}

// SetQuantity refreshes product stock from the catalog before checking the
// new quantity against it
func (s *DraftService) SetQuantity(ctx context.Context, owner uuid.UUID, id string, index, quantity int) (*DraftView, error) {
	catalog, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.with(owner, id, func(b *billing.Builder) error {
		for _, p := range catalog.Products {
			b.UpdateStock(p.ID, p.Stock)
		}
		return b.SetQuantity(index, quantity)
	})
}

func (s *DraftService) SetItemDiscount(ctx context.Context, owner uuid.UUID, id string, index int, percent billing.Percent) (*DraftView, error) {
	return s.with(owner, id, func(b *billing.Builder) error {
		return b.SetItemDiscount(index, percent)
	})
}

func (s *DraftService) SetOverallDiscount(ctx context.Context, owner uuid.UUID, id string, percent billing.Percent) (*DraftView, error) {
	return s.with(owner, id, func(b *billing.Builder) error {
		return b.SetOverallDiscount(percent)
	})
}

// HeaderInput carries the bill header fields
type HeaderInput struct {
	Customer      billing.Customer
	PaymentMethod billing.PaymentMethod
	Notes         string
}

func (s *DraftService) SetHeader(ctx context.Context, owner uuid.UUID, id string, input HeaderInput) (*DraftView, error) {
	return s.with(owner, id, func(b *billing.Builder) error {
		b.SetCustomer(input.Customer)
		b.SetPaymentMethod(input.PaymentMethod)
		b.SetNotes(input.Notes)
		return nil
	})
}

// Finalize produces the bill without storing it and leaves the draft editable
func (s *DraftService) Finalize(ctx context.Context, owner uuid.UUID, id string) (*billing.Bill, error) {
	var bill *billing.Bill
	_, err := s.with(owner, id, func(b *billing.Builder) error {
		var err error
		bill, err = b.FinalizeDraft()
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// Submit finalizes the draft and stores the bill. With clear set the draft
// is emptied afterwards if the store accepted the bill and nobody edited the
// draft while it was being stored
func (s *DraftService) Submit(ctx context.Context, owner uuid.UUID, id string, clear bool) (*SubmitReceipt, error) {
	bill, err := s.Finalize(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	receipt, err := s.store.Submit(ctx, bill)
	if err != nil {
		return nil, BillingAppError(err)
	}

	if clear {
		_, _ = s.with(owner, id, func(b *billing.Builder) error {
			if b.State() == billing.StateFinalized {
				b.Reset()
			}
			return nil
		})
	}
	return receipt, nil
}

// Run drops idle drafts every interval until ctx is done
func (s *DraftService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Expire(); n > 0 {
				log.Printf("[drafts] expired %d idle drafts", n)
			}
		}
	}
}

// Expire removes drafts untouched for longer than the ttl
func (s *DraftService) Expire() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, d := range s.drafts {
		d.mu.Lock()
		idle := d.touchedAt.Before(cutoff)
		d.mu.Unlock()
		if idle {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}

// with runs fn against the owner's draft under the draft lock
func (s *DraftService) with(owner uuid.UUID, id string, fn func(*billing.Builder) error) (*DraftView, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	s.mu.Unlock()
	if !ok || d.owner != owner {
		return nil, apperror.NewNotFoundError("Draft")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := fn(d.builder); err != nil {
		return nil, BillingAppError(err)
	}
	d.touchedAt = s.now()
	return viewLocked(id, d), nil
}

func view(id string, d *draft) *DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return viewLocked(id, d)
}

func viewLocked(id string, d *draft) *DraftView {
	return &DraftView{
		ID:     id,
		State:  d.builder.State().String(),
		Draft:  d.builder.Draft(),
		Totals: d.builder.ComputeTotals(),
	}
}
