package billing

// Totals are the derived figures of a set of line items.
type Totals struct {
	SubTotal               Money   `json:"subTotal"`
	PostItemDiscountTotal  Money   `json:"postItemDiscountTotal"`
	ItemDiscountTotal      Money   `json:"itemDiscountTotal"`
	OverallDiscountPercent Percent `json:"overallDiscountPercent"`
	OverallDiscountAmount  Money   `json:"overallDiscountAmount"`
	GrandTotal             Money   `json:"grandTotal"`
}

// ComputeTotals is pure: it reads items and returns the totals without
// modifying anything.
func ComputeTotals(items []LineItem, overall Percent) Totals {
	var t Totals
	for _, item := range items {
		t.SubTotal += item.Gross()
		t.PostItemDiscountTotal += applyDiscount(item.Gross(), item.DiscountPercent)
	}
	t.ItemDiscountTotal = t.SubTotal - t.PostItemDiscountTotal
	t.OverallDiscountPercent = overall
	t.GrandTotal = applyDiscount(t.PostItemDiscountTotal, overall)
	t.OverallDiscountAmount = t.PostItemDiscountTotal - t.GrandTotal
	return t
}
