package billing_test

import (
	"slices"
	"testing"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/stretchr/testify/assert"
)

var catalog = billing.Catalog{
	Products: []billing.ProductEntry{
		oilFilter,
		{ID: "P002", Code: "WB-22", Name: "Wiper Blade", Price: 35000, Stock: 4},
	},
	Services: []billing.ServiceEntry{
		ceramicCoat,
		{ID: "S002", Code: "OIL", Name: "Oil Change", Price: 60000},
	},
}

func ids(seq func(func(billing.CatalogEntry) bool)) []string {
	var out []string
	for e := range seq {
		out = append(out, e.EntryID())
	}
	return out
}

func TestMatch(t *testing.T) {
	testCases := []struct {
		name   string
		query  string
		filter billing.Filter
		want   []string
	}{
		{name: "name across kinds", query: "oil", filter: billing.FilterAll, want: []string{"P001", "S002"}},
		{name: "code", query: "wb-2", filter: billing.FilterAll, want: []string{"P002"}},
		{name: "products only", query: "oil", filter: billing.FilterProducts, want: []string{"P001"}},
		{name: "services only", query: "OIL", filter: billing.FilterServices, want: []string{"S002"}},
		{name: "too short", query: "o", filter: billing.FilterAll, want: nil},
		{name: "no match", query: "tyre", filter: billing.FilterAll, want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(billing.Match(catalog, tc.query, tc.filter)))
		})
	}
}

func TestMatch_Restartable(t *testing.T) {
	seq := billing.Match(catalog, "oil", billing.FilterAll)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestMatch_StopsEarly(t *testing.T) {
	var seen int
	for range billing.Match(catalog, "oil", billing.FilterAll) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestCatalogLookup(t *testing.T) {
	entry, ok := catalog.Lookup("P002", billing.KindProduct)
	assert.True(t, ok)
	assert.IsType(t, billing.ProductEntry{}, entry)

	_, ok = catalog.Lookup("P002", billing.KindService)
	assert.False(t, ok)
}
