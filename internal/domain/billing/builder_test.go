package billing_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() billing.Option {
	n := 0
	return billing.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("bill-%d", n)
	})
}

func fixedClock(t time.Time) billing.Option {
	return billing.WithClock(func() time.Time { return t })
}

var oilFilter = billing.ProductEntry{
	ID:    "P001",
	Code:  "OF-01",
	Name:  "Oil Filter",
	Price: billing.MoneyFromMajor(450),
	Stock: 45,
}

var ceramicCoat = billing.ServiceEntry{
	ID:    "S001",
	Code:  "CC",
	Name:  "Ceramic Coating",
	Price: billing.MoneyFromMajor(1800),
}

func TestAddCatalogItem_MergesSameEntry(t *testing.T) {
	b := billing.NewBuilder()

	require.NoError(t, b.AddCatalogItem(oilFilter))
	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, billing.MoneyFromMajor(450), items[0].LineTotal)

	require.NoError(t, b.AddCatalogItem(oilFilter))
	items = b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, billing.MoneyFromMajor(900), items[0].LineTotal)
}

func TestAddCatalogItem_ProductAndServiceWithSameIDStaySeparate(t *testing.T) {
	b := billing.NewBuilder()
	svc := ceramicCoat
	svc.ID = oilFilter.ID

	require.NoError(t, b.AddCatalogItem(oilFilter))
	require.NoError(t, b.AddCatalogItem(svc))

	assert.Len(t, b.Items(), 2)
}

func TestAddCatalogItem_UsesDefaultDiscount(t *testing.T) {
	b := billing.NewBuilder()
	entry := oilFilter
	entry.DefaultDiscount = billing.PercentFromFloat(10)

	require.NoError(t, b.AddCatalogItem(entry))

	item := b.Items()[0]
	assert.Equal(t, billing.PercentFromFloat(10), item.DiscountPercent)
	assert.Equal(t, billing.MoneyFromMajor(405), item.LineTotal)
}

func TestAddCatalogItem_OutOfStockLeavesDraftUnchanged(t *testing.T) {
	b := billing.NewBuilder()
	entry := oilFilter
	entry.Stock = 1

	require.NoError(t, b.AddCatalogItem(entry))
	before := b.Draft()

	err := b.AddCatalogItem(entry)
	require.Error(t, err)
	assert.True(t, errors.Is(err, billing.ErrOutOfStock))
	assert.Equal(t, "Only 1 unit available in stock", err.Error())
	assert.Equal(t, before, b.Draft())
}

func TestAddCatalogItem_ZeroStockProduct(t *testing.T) {
	b := billing.NewBuilder()
	entry := oilFilter
	entry.Stock = 0

	err := b.AddCatalogItem(entry)

	assert.ErrorIs(t, err, billing.ErrOutOfStock)
	assert.Equal(t, billing.StateEmpty, b.State())
}

func TestAddCustomItem(t *testing.T) {
	testCases := []struct {
		name    string
		item    string
		price   billing.Money
		wantErr error
	}{
		{name: "valid", item: "Engine Flush", price: billing.MoneyFromMajor(700)},
		{name: "blank name", item: "   ", price: billing.MoneyFromMajor(700), wantErr: billing.ErrInvalidInput},
		{name: "zero price", item: "Engine Flush", price: 0, wantErr: billing.ErrInvalidInput},
		{name: "negative price", item: "Engine Flush", price: -100, wantErr: billing.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := billing.NewBuilder()
			err := b.AddCustomItem(tc.item, tc.price, "")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, b.Items())
				return
			}
			require.NoError(t, err)
			item := b.Items()[0]
			assert.Equal(t, billing.KindCustom, item.Kind)
			assert.Equal(t, billing.CustomCode, item.Code)
			assert.Equal(t, 1, item.Quantity)
			assert.Equal(t, billing.ZeroPercent, item.DiscountPercent)
			assert.Equal(t, billing.MoneyFromMajor(700), item.LineTotal)
		})
	}
}

func TestCustomItemIgnoresStock(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCustomItem("Engine Flush", billing.MoneyFromMajor(700), "full flush"))

	require.NoError(t, b.SetQuantity(0, 500))

	item := b.Items()[0]
	assert.Equal(t, 500, item.Quantity)
	assert.Equal(t, billing.MoneyFromMajor(350000), item.LineTotal)
}

func TestCustomItemsNeverMerge(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCustomItem("Engine Flush", billing.MoneyFromMajor(700), ""))
	require.NoError(t, b.AddCustomItem("Engine Flush", billing.MoneyFromMajor(700), ""))

	assert.Len(t, b.Items(), 2)
}

func TestRemoveItem(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCatalogItem(oilFilter))
	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	require.NoError(t, b.AddCustomItem("Wax", billing.MoneyFromMajor(300), ""))

	require.NoError(t, b.RemoveItem(1))

	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "P001", items[0].ID)
	assert.Equal(t, "Wax", items[1].Name)

	assert.ErrorIs(t, b.RemoveItem(2), billing.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.RemoveItem(-1), billing.ErrIndexOutOfRange)
	assert.Len(t, b.Items(), 2)
}

func TestSetQuantity(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		wantErr  error
		wantQty  int
	}{
		{name: "within stock", quantity: 45, wantQty: 45},
		{name: "above stock", quantity: 46, wantErr: billing.ErrOutOfStock, wantQty: 1},
		{name: "zero", quantity: 0, wantErr: billing.ErrInvalidQuantity, wantQty: 1},
		{name: "negative", quantity: -3, wantErr: billing.ErrInvalidQuantity, wantQty: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := billing.NewBuilder()
			require.NoError(t, b.AddCatalogItem(oilFilter))

			err := b.SetQuantity(0, tc.quantity)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}

			item := b.Items()[0]
			want, ok := oilFilter.Price.Times(tc.wantQty)
			require.True(t, ok)
			assert.Equal(t, tc.wantQty, item.Quantity)
			assert.Equal(t, want, item.LineTotal)
		})
	}
}

func TestSetQuantity_AboveCeilingRejected(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		wantErr  error
	}{
		{name: "ceiling", quantity: billing.MaxQuantity},
		{name: "one past ceiling", quantity: billing.MaxQuantity + 1, wantErr: billing.ErrInvalidQuantity},
		{name: "wraps int64 when multiplied", quantity: 10_000_000_000, wantErr: billing.ErrInvalidQuantity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := billing.NewBuilder()
			require.NoError(t, b.AddCatalogItem(ceramicCoat))
			before := b.Draft()

			err := b.SetQuantity(0, tc.quantity)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, before, b.Draft())
				assert.Equal(t, ceramicCoat.Price, b.ComputeTotals().GrandTotal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, billing.MoneyFromMajor(1800*billing.MaxQuantity), b.Items()[0].LineTotal)
			assert.Positive(t, b.ComputeTotals().GrandTotal)
		})
	}
}

func TestAddCatalogItem_MergeStopsAtCeiling(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	require.NoError(t, b.SetQuantity(0, billing.MaxQuantity))

	assert.ErrorIs(t, b.AddCatalogItem(ceramicCoat), billing.ErrInvalidQuantity)
	assert.Equal(t, billing.MaxQuantity, b.Items()[0].Quantity)
}

func TestAddCatalogItem_PriceAboveCeilingRejected(t *testing.T) {
	b := billing.NewBuilder()
	entry := ceramicCoat
	entry.Price = billing.MaxUnitPrice + 1

	assert.ErrorIs(t, b.AddCatalogItem(entry), billing.ErrInvalidInput)
	assert.ErrorIs(t, b.AddCustomItem("Yacht Detailing", billing.MaxUnitPrice+1, ""), billing.ErrInvalidInput)
	assert.Empty(t, b.Items())
}

func TestSetQuantity_OutOfStockMessage(t *testing.T) {
	b := billing.NewBuilder()
	entry := oilFilter
	entry.Stock = 3
	require.NoError(t, b.AddCatalogItem(entry))

	err := b.SetQuantity(0, 4)

	var berr *billing.Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "Only 3 units available in stock", berr.Message)
}

func TestSetQuantity_UsesRefreshedStock(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCatalogItem(oilFilter))

	b.UpdateStock(oilFilter.ID, 2)

	assert.ErrorIs(t, b.SetQuantity(0, 3), billing.ErrOutOfStock)
	assert.NoError(t, b.SetQuantity(0, 2))
}

func TestSetQuantity_BadIndex(t *testing.T) {
	b := billing.NewBuilder()
	assert.ErrorIs(t, b.SetQuantity(0, 1), billing.ErrIndexOutOfRange)
}

func TestDiscounts(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCatalogItem(ceramicCoat))

	require.NoError(t, b.SetItemDiscount(0, billing.PercentFromFloat(10)))
	assert.Equal(t, billing.MoneyFromMajor(1620), b.Items()[0].LineTotal)

	require.NoError(t, b.SetOverallDiscount(billing.PercentFromFloat(5)))
	totals := b.ComputeTotals()
	assert.Equal(t, billing.MoneyFromMajor(1800), totals.SubTotal)
	assert.Equal(t, billing.MoneyFromMajor(1620), totals.PostItemDiscountTotal)
	assert.Equal(t, billing.MoneyFromMajor(180), totals.ItemDiscountTotal)
	assert.Equal(t, billing.MoneyFromMajor(1539), totals.GrandTotal)
	assert.Equal(t, billing.MoneyFromMajor(81), totals.OverallDiscountAmount)

	// overall discount never touches line totals
	assert.Equal(t, billing.MoneyFromMajor(1620), b.Items()[0].LineTotal)
}

func TestDiscounts_OutOfRangeRejected(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	require.NoError(t, b.SetItemDiscount(0, billing.PercentFromFloat(20)))
	require.NoError(t, b.SetOverallDiscount(billing.PercentFromFloat(5)))

	for _, p := range []float64{-1, 100.01, 150} {
		assert.ErrorIs(t, b.SetItemDiscount(0, billing.PercentFromFloat(p)), billing.ErrInvalidDiscount)
		assert.ErrorIs(t, b.SetOverallDiscount(billing.PercentFromFloat(p)), billing.ErrInvalidDiscount)
	}

	// values that would round into range are still out of range
	for _, p := range []float64{-0.004, 100.004, 100.01, -1} {
		_, err := billing.ParsePercent(p)
		assert.ErrorIs(t, err, billing.ErrInvalidDiscount, "%v", p)
	}

	assert.Equal(t, billing.PercentFromFloat(20), b.Items()[0].DiscountPercent)
	assert.Equal(t, billing.PercentFromFloat(5), b.Draft().OverallDiscount)

	assert.NoError(t, b.SetItemDiscount(0, billing.HundredPercent))
	assert.Equal(t, billing.Money(0), b.Items()[0].LineTotal)
}

func TestFinalize_Preconditions(t *testing.T) {
	b := billing.NewBuilder()

	bill, err := b.Finalize(billing.Customer{VehicleNumber: "KL07AB1234"}, billing.PaymentCash, "")
	assert.Nil(t, bill)
	assert.ErrorIs(t, err, billing.ErrEmptyBill)

	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	bill, err = b.Finalize(billing.Customer{Name: "Asha", VehicleNumber: "  "}, billing.PaymentCash, "")
	assert.Nil(t, bill)
	assert.ErrorIs(t, err, billing.ErrMissingVehicleNumber)
	assert.Equal(t, billing.StateEditing, b.State())
}

func TestFinalize_SnapshotIsIndependentOfDraft(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	b := billing.NewBuilder(sequentialIDs(), fixedClock(created))
	require.NoError(t, b.AddCatalogItem(oilFilter))

	bill, err := b.Finalize(billing.Customer{Name: "Asha", VehicleNumber: "kl07ab1234"}, billing.PaymentUPI, "rear wiper")
	require.NoError(t, err)

	require.NoError(t, b.SetQuantity(0, 5))
	require.NoError(t, b.AddCustomItem("Wax", billing.MoneyFromMajor(300), ""))

	assert.Equal(t, "bill-1", bill.ID)
	assert.Equal(t, created, bill.CreatedAt)
	assert.Equal(t, "KL07AB1234", bill.Customer.VehicleNumber)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 1, bill.Items[0].Quantity)
	assert.Equal(t, billing.MoneyFromMajor(450), bill.GrandTotal)
	assert.Equal(t, billing.PaymentUPI, bill.PaymentMethod)
}

func TestFinalize_TwiceYieldsDistinctBills(t *testing.T) {
	b := billing.NewBuilder(sequentialIDs())
	require.NoError(t, b.AddCatalogItem(oilFilter))
	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	customer := billing.Customer{VehicleNumber: "TN09XY0001"}

	first, err := b.Finalize(customer, billing.PaymentCard, "")
	require.NoError(t, err)
	second, err := b.Finalize(customer, billing.PaymentCard, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.GrandTotal, second.GrandTotal)
	assert.Equal(t, first.SubTotal, second.SubTotal)
	assert.Len(t, b.Items(), 2)
}

func TestStateTransitions(t *testing.T) {
	b := billing.NewBuilder()
	assert.Equal(t, billing.StateEmpty, b.State())

	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	assert.Equal(t, billing.StateEditing, b.State())

	_, err := b.Finalize(billing.Customer{VehicleNumber: "KA01"}, billing.PaymentCash, "")
	require.NoError(t, err)
	assert.Equal(t, billing.StateFinalized, b.State())

	require.NoError(t, b.SetItemDiscount(0, billing.PercentFromFloat(5)))
	assert.Equal(t, billing.StateEditing, b.State())

	_, err = b.FinalizeDraft()
	require.NoError(t, err)
	assert.Equal(t, billing.StateFinalized, b.State())

	b.Reset()
	assert.Equal(t, billing.StateEmpty, b.State())
	assert.Empty(t, b.Draft().Customer.VehicleNumber)
}

func TestLineTotalsStayConsistent(t *testing.T) {
	b := billing.NewBuilder()
	require.NoError(t, b.AddCatalogItem(oilFilter))
	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	require.NoError(t, b.AddCustomItem("Polish", billing.MoneyFromMajor(333.33), ""))
	require.NoError(t, b.SetQuantity(0, 7))
	require.NoError(t, b.SetItemDiscount(0, billing.PercentFromFloat(12.5)))
	require.NoError(t, b.SetItemDiscount(2, billing.PercentFromFloat(33.33)))
	require.NoError(t, b.SetQuantity(2, 3))
	require.NoError(t, b.SetOverallDiscount(billing.PercentFromFloat(7.5)))

	var post billing.Money
	for _, item := range b.Items() {
		post += item.LineTotal
	}
	totals := b.ComputeTotals()
	assert.Equal(t, post, totals.PostItemDiscountTotal)
	assert.Equal(t, totals.SubTotal-totals.PostItemDiscountTotal, totals.ItemDiscountTotal)
	assert.Equal(t, totals, b.ComputeTotals())
}
