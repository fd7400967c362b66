package billing_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalizedBill(t *testing.T) *billing.Bill {
	t.Helper()
	b := billing.NewBuilder(
		billing.WithIDGenerator(func() string { return "7b0c" }),
		billing.WithClock(func() time.Time { return time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, b.AddCatalogItem(ceramicCoat))
	require.NoError(t, b.SetItemDiscount(0, billing.PercentFromFloat(10)))
	require.NoError(t, b.AddCustomItem("Engine Flush", billing.MoneyFromMajor(700), ""))
	require.NoError(t, b.SetOverallDiscount(billing.PercentFromFloat(5)))
	bill, err := b.Finalize(billing.Customer{Name: "Ravi", Mobile: "9800000000", VehicleNumber: "KL07AB1234"}, billing.PaymentCard, "paid")
	require.NoError(t, err)
	return bill
}

func TestBillWireShape(t *testing.T) {
	bill := finalizedBill(t)

	data, err := json.Marshal(bill)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "7b0c", got["id"])
	assert.Equal(t, "2026-01-02T09:00:00Z", got["date"])
	assert.Equal(t, 2500.0, got["subTotal"])
	assert.Equal(t, 5.0, got["discount"])
	assert.Equal(t, 2204.0, got["total"])
	assert.Equal(t, "card", got["paymentMethod"])
	assert.Equal(t, "paid", got["notes"])
	assert.Equal(t, map[string]any{
		"name": "Ravi", "mobile": "9800000000", "vehicleNumber": "KL07AB1234", "company": "",
	}, got["customer"])

	items := got["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, map[string]any{
		"id": "S001", "type": "service", "name": "Ceramic Coating", "code": "CC",
		"price": 1800.0, "quantity": 1.0, "discount": 10.0, "total": 1620.0,
	}, items[0])
	assert.Equal(t, "custom", items[1].(map[string]any)["type"])
}

func TestBillDecodeAndValidate(t *testing.T) {
	bill := finalizedBill(t)
	data, err := json.Marshal(bill)
	require.NoError(t, err)

	var decoded billing.Bill
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, decoded.Validate())

	assert.Equal(t, bill.GrandTotal, decoded.GrandTotal)
	assert.Equal(t, bill.ItemDiscountTotal, decoded.ItemDiscountTotal)
	assert.Equal(t, billing.KindCustom, decoded.Items[1].Kind)

	products, services := decoded.Split()
	assert.Equal(t, billing.Money(0), products)
	assert.Equal(t, billing.MoneyFromMajor(2320), services)
}

func TestBillDecode_LegacyCustomItem(t *testing.T) {
	payload := `{
		"date": "2026-01-02T09:00:00Z",
		"customer": {"name": "", "mobile": "", "vehicleNumber": "ka01mm7", "company": ""},
		"items": [{"id": "0", "type": "service", "name": "Seat wash", "code": "CUSTOM", "price": 250, "quantity": 2, "discount": 0, "total": 500}],
		"subTotal": 500, "discount": 0, "total": 500, "paymentMethod": "cash"
	}`

	var bill billing.Bill
	require.NoError(t, json.Unmarshal([]byte(payload), &bill))

	assert.Equal(t, billing.KindCustom, bill.Items[0].Kind)
	assert.Equal(t, "KA01MM7", bill.Customer.VehicleNumber)
	assert.NoError(t, bill.Validate())
}

func TestBillValidate_RejectsTamperedTotals(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(b *billing.Bill)
		wantErr error
	}{
		{name: "grand total", mutate: func(b *billing.Bill) { b.GrandTotal -= 100 }, wantErr: billing.ErrTotalsMismatch},
		{name: "line total", mutate: func(b *billing.Bill) { b.Items[0].LineTotal = 1 }, wantErr: billing.ErrTotalsMismatch},
		{name: "quantity", mutate: func(b *billing.Bill) { b.Items[0].Quantity = 0 }, wantErr: billing.ErrInvalidQuantity},
		{name: "quantity past ceiling", mutate: func(b *billing.Bill) { b.Items[0].Quantity = 10_000_000_000 }, wantErr: billing.ErrInvalidQuantity},
		{name: "unit price past ceiling", mutate: func(b *billing.Bill) { b.Items[0].UnitPrice = billing.MaxUnitPrice + 1 }, wantErr: billing.ErrInvalidInput},
		{name: "vehicle", mutate: func(b *billing.Bill) { b.Customer.VehicleNumber = "" }, wantErr: billing.ErrMissingVehicleNumber},
		{name: "no items", mutate: func(b *billing.Bill) { b.Items = nil }, wantErr: billing.ErrEmptyBill},
		{name: "discount", mutate: func(b *billing.Bill) { b.OverallDiscountPercent = billing.PercentFromFloat(101) }, wantErr: billing.ErrInvalidDiscount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bill := finalizedBill(t).Clone()
			tc.mutate(bill)
			assert.ErrorIs(t, bill.Validate(), tc.wantErr)
		})
	}
}

func TestBillDecode_RejectsDiscountThatRoundsIntoRange(t *testing.T) {
	for _, raw := range []string{"100.004", "-0.004"} {
		data := []byte(`{"customer":{"vehicleNumber":"KL07AB1234"},"items":[],"discount":` + raw + `}`)
		var bill billing.Bill
		assert.ErrorIs(t, json.Unmarshal(data, &bill), billing.ErrInvalidDiscount, raw)
	}
}
