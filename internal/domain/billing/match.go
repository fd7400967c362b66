package billing

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the shortest query that produces matches.
const MinQueryLength = 2

// Filter narrows a catalog search to one kind of entry.
type Filter int

const (
	FilterAll Filter = iota
	FilterProducts
	FilterServices
)

// ParseFilter maps the tab names of the billing screen; anything unknown
// means all entries.
func ParseFilter(s string) Filter {
	switch strings.ToLower(s) {
	case "products", "product":
		return FilterProducts
	case "services", "service":
		return FilterServices
	}
	return FilterAll
}

func (f Filter) allows(e CatalogEntry) bool {
	switch e.(type) {
	case ProductEntry:
		return f != FilterServices
	case ServiceEntry:
		return f != FilterProducts
	}
	return false
}

// Match yields the catalog entries whose name or code contains query,
// ignoring case. The sequence reads the catalog lazily and can be ranged over
// any number of times.
func Match(catalog Catalog, query string, filter Filter) iter.Seq[CatalogEntry] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(yield func(CatalogEntry) bool) {
		if utf8.RuneCountInString(q) < MinQueryLength {
			return
		}
		for _, e := range catalog.Entries() {
			if !filter.allows(e) || !entryContains(e, q) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func entryContains(e CatalogEntry, q string) bool {
	var name, code string
	switch v := e.(type) {
	case ProductEntry:
		name, code = v.Name, v.Code
	case ServiceEntry:
		name, code = v.Name, v.Code
	}
	return strings.Contains(strings.ToLower(name), q) || strings.Contains(strings.ToLower(code), q)
}

// Lookup finds the entry with the given id and kind.
func (c Catalog) Lookup(id string, kind Kind) (CatalogEntry, bool) {
	switch kind {
	case KindProduct:
		for _, p := range c.Products {
			if p.ID == id {
				return p, true
			}
		}
	case KindService:
		for _, s := range c.Services {
			if s.ID == id {
				return s, true
			}
		}
	}
	return nil, false
}
