package billing

import "context"

// CatalogEntry is a sellable catalog row. It is implemented only by
// ProductEntry and ServiceEntry; switch on the concrete type to handle both.
type CatalogEntry interface {
	EntryID() string
	EntryKind() Kind
	catalogEntry()
}

// ProductEntry is a stocked item. Stock is the quantity on hand.
type ProductEntry struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Price           Money   `json:"price"`
	Stock           int     `json:"quantity"`
	DefaultDiscount Percent `json:"discount"`
}

// ServiceEntry is labour or a treatment; it has no stock.
type ServiceEntry struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           Money   `json:"price"`
	DefaultDiscount Percent `json:"discount"`
}

func (e ProductEntry) EntryID() string { return e.ID }
func (e ProductEntry) EntryKind() Kind { return KindProduct }
func (ProductEntry) catalogEntry()     {}

func (e ServiceEntry) EntryID() string { return e.ID }
func (e ServiceEntry) EntryKind() Kind { return KindService }
func (ServiceEntry) catalogEntry()     {}

// Catalog is the read-only snapshot returned by a CatalogProvider.
type Catalog struct {
	Products []ProductEntry `json:"products"`
	Services []ServiceEntry `json:"services"`
}

// Entries returns every product followed by every service.
func (c Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.Products)+len(c.Services))
	for _, p := range c.Products {
		out = append(out, p)
	}
	for _, s := range c.Services {
		out = append(out, s)
	}
	return out
}

// CatalogProvider exposes the current products and services.
type CatalogProvider interface {
	FetchCatalog(ctx context.Context) (Catalog, error)
}

// BillStore persists finalized bills. Implementations return a
// *SubmissionError when the bill could not be stored.
type BillStore interface {
	SubmitBill(ctx context.Context, bill *Bill) error
}
