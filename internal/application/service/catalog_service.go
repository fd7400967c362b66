package service

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/repository"
)

// CatalogService serves the billing catalog from the product and service
// tables. It implements billing.CatalogProvider.
type CatalogService struct {
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
}

var _ billing.CatalogProvider = (*CatalogService)(nil)

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository, serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		serviceRepo: serviceRepo,
	}
}

// FetchCatalog returns every product and service, ordered by name
func (s *CatalogService) FetchCatalog(ctx context.Context) (billing.Catalog, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return billing.Catalog{}, err
	}
	services, err := s.serviceRepo.ListAll(ctx)
	if err != nil {
		return billing.Catalog{}, err
	}

	catalog := billing.Catalog{
		Products: make([]billing.ProductEntry, 0, len(products)),
		Services: make([]billing.ServiceEntry, 0, len(services)),
	}
	for i := range products {
		catalog.Products = append(catalog.Products, products[i].CatalogEntry())
	}
	for i := range services {
		catalog.Services = append(catalog.Services, services[i].CatalogEntry())
	}
	return catalog, nil
}

// ErrSearchSuperseded is returned to a search that was replaced by a newer
// query from the same caller before its debounce interval ran out
var ErrSearchSuperseded = errors.New("search superseded by a newer query")

// CatalogSearcher debounces catalog searches per caller. Each caller (one
// cashier's search box) only gets results for its latest query.
type CatalogSearcher struct {
	provider  billing.CatalogProvider
	debounce  time.Duration
	minLength int
	after     func(time.Duration) <-chan time.Time

	mu      sync.Mutex
	seq     uint64
	pending map[string]uint64
}

// SearcherOption configures a CatalogSearcher
type SearcherOption func(*CatalogSearcher)

// WithTimer replaces time.After, letting tests control the debounce
func WithTimer(after func(time.Duration) <-chan time.Time) SearcherOption {
	return func(s *CatalogSearcher) { s.after = after }
}

// WithMinQueryLength raises the minimum query length above the builder's
func WithMinQueryLength(n int) SearcherOption {
	return func(s *CatalogSearcher) {
		if n > s.minLength {
			s.minLength = n
		}
	}
}

// NewCatalogSearcher creates a searcher over provider
func NewCatalogSearcher(provider billing.CatalogProvider, debounce time.Duration, opts ...SearcherOption) *CatalogSearcher {
	s := &CatalogSearcher{
		provider:  provider,
		debounce:  debounce,
		minLength: billing.MinQueryLength,
		after:     time.After,
		pending:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search waits out the debounce interval, then matches query against a
// fresh catalog. The returned sequence can be ranged over more than once.
func (s *CatalogSearcher) Search(ctx context.Context, caller, query string, filter billing.Filter) (iter.Seq[billing.CatalogEntry], error) {
	ticket := s.begin(caller)
	defer s.end(caller, ticket)

	if s.debounce > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.after(s.debounce):
		}
	}
	if !s.latest(caller, ticket) {
		return nil, ErrSearchSuperseded
	}

	if utf8.RuneCountInString(strings.TrimSpace(query)) < s.minLength {
		return billing.Match(billing.Catalog{}, query, filter), nil
	}

	catalog, err := s.provider.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if !s.latest(caller, ticket) {
		return nil, ErrSearchSuperseded
	}
	return billing.Match(catalog, query, filter), nil
}

func (s *CatalogSearcher) begin(caller string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending[caller] = s.seq
	return s.seq
}

func (s *CatalogSearcher) latest(caller string, ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[caller] == ticket
}

func (s *CatalogSearcher) end(caller string, ticket uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[caller] == ticket {
		delete(s.pending, caller)
	}
}
