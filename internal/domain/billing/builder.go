package billing

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer is the bill header. Only the vehicle number is mandatory, and
// only at finalization.
type Customer struct {
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	VehicleNumber string `json:"vehicleNumber"`
	Company       string `json:"company"`
}

// DraftBill is the in-progress invoice held by a Builder.
type DraftBill struct {
	Items           []LineItem    `json:"items"`
	Customer        Customer      `json:"customer"`
	OverallDiscount Percent       `json:"discount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	Notes           string        `json:"notes"`
}

func (d DraftBill) clone() DraftBill {
	d.Items = slices.Clone(d.Items)
	return d
}

// State is where a draft sits in its editing lifecycle.
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateFinalized:
		return "finalized"
	}
	return "unknown"
}

// Builder owns one DraftBill. It is not safe for concurrent use; callers
// that share a builder must serialize access.
type Builder struct {
	draft     DraftBill
	finalized bool
	now       func() time.Time
	newID     func() string
}

type Option func(*Builder)

// WithClock replaces time.Now as the source of bill timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator replaces the random bill id generator.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) { b.newID = fn }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Draft returns a copy of the current draft.
func (b *Builder) Draft() DraftBill {
	return b.draft.clone()
}

// Items returns a copy of the line items in display order.
func (b *Builder) Items() []LineItem {
	return slices.Clone(b.draft.Items)
}

func (b *Builder) State() State {
	switch {
	case len(b.draft.Items) == 0:
		return StateEmpty
	case b.finalized:
		return StateFinalized
	default:
		return StateEditing
	}
}

// Reset discards the draft.
func (b *Builder) Reset() {
	b.draft = DraftBill{}
	b.finalized = false
}

func (b *Builder) touched() {
	b.finalized = false
}

// AddCatalogItem adds one unit of entry, merging with an existing line for
// the same catalog row.
func (b *Builder) AddCatalogItem(entry CatalogEntry) error {
	if entry == nil || entry.EntryID() == "" {
		return newError(ErrInvalidInput, "Catalog item is required")
	}

	idx := b.indexOf(entry.EntryID(), entry.EntryKind())

	var price Money
	switch e := entry.(type) {
	case ProductEntry:
		if requested := b.productQuantity(e.ID) + 1; requested > e.Stock {
			return outOfStock(e.Stock)
		}
		price = e.Price
	case ServiceEntry:
		price = e.Price
	default:
		return newError(ErrInvalidInput, "Unsupported catalog item")
	}

	if idx < 0 {
		if err := checkLimits(price, 1); err != nil {
			return err
		}
		b.draft.Items = append(b.draft.Items, newLineItem(entry))
		b.touched()
		return nil
	}

	item := &b.draft.Items[idx]
	if err := checkLimits(item.UnitPrice, item.Quantity+1); err != nil {
		return err
	}
	if p, ok := entry.(ProductEntry); ok {
		item.stock = p.Stock
	}
	item.Quantity++
	item.recompute()
	b.touched()
	return nil
}

func newLineItem(entry CatalogEntry) LineItem {
	var item LineItem
	switch e := entry.(type) {
	case ProductEntry:
		item = LineItem{
			ID:              e.ID,
			Kind:            KindProduct,
			Code:            e.Code,
			Name:            e.Name,
			UnitPrice:       e.Price,
			DiscountPercent: e.DefaultDiscount,
			stock:           e.Stock,
		}
	case ServiceEntry:
		item = LineItem{
			ID:              e.ID,
			Kind:            KindService,
			Code:            e.Code,
			Name:            e.Name,
			Description:     e.Description,
			UnitPrice:       e.Price,
			DiscountPercent: e.DefaultDiscount,
		}
	}
	item.Quantity = 1
	item.recompute()
	return item
}

// AddCustomItem appends an ad-hoc charge that has no catalog row.
func (b *Builder) AddCustomItem(name string, price Money, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newError(ErrInvalidInput, "Service name is required")
	}
	if err := checkLimits(price, 1); err != nil {
		return err
	}

	item := LineItem{
		ID:          customItemID,
		Kind:        KindCustom,
		Code:        CustomCode,
		Name:        name,
		Description: strings.TrimSpace(description),
		UnitPrice:   price,
		Quantity:    1,
	}
	item.recompute()
	b.draft.Items = append(b.draft.Items, item)
	b.touched()
	return nil
}

func (b *Builder) RemoveItem(index int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	b.draft.Items = slices.Delete(b.draft.Items, index, index+1)
	b.touched()
	return nil
}

func (b *Builder) SetQuantity(index, quantity int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	item := &b.draft.Items[index]
	if err := checkLimits(item.UnitPrice, quantity); err != nil {
		return err
	}
	if item.Stocked() {
		requested := b.productQuantity(item.ID) - item.Quantity + quantity
		if requested > item.stock {
			return outOfStock(item.stock)
		}
	}

	item.Quantity = quantity
	item.recompute()
	b.touched()
	return nil
}

// UpdateStock refreshes the quantity on hand recorded for a product line.
// It does not re-validate existing quantities.
func (b *Builder) UpdateStock(productID string, stock int) {
	for i := range b.draft.Items {
		if b.draft.Items[i].matches(productID, KindProduct) {
			b.draft.Items[i].stock = stock
		}
	}
}

func (b *Builder) SetItemDiscount(index int, percent Percent) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if !percent.Valid() {
		return invalidDiscount()
	}
	item := &b.draft.Items[index]
	item.DiscountPercent = percent
	item.recompute()
	b.touched()
	return nil
}

// SetOverallDiscount sets the whole-bill discount. Line totals are not
// affected; the discount is applied by ComputeTotals.
func (b *Builder) SetOverallDiscount(percent Percent) error {
	if !percent.Valid() {
		return invalidDiscount()
	}
	b.draft.OverallDiscount = percent
	b.touched()
	return nil
}

func (b *Builder) SetCustomer(c Customer) {
	b.draft.Customer = c
	b.touched()
}

func (b *Builder) SetPaymentMethod(m PaymentMethod) {
	b.draft.PaymentMethod = m
	b.touched()
}

func (b *Builder) SetNotes(notes string) {
	b.draft.Notes = notes
	b.touched()
}

func (b *Builder) ComputeTotals() Totals {
	return ComputeTotals(b.draft.Items, b.draft.OverallDiscount)
}

// Finalize freezes the current items into a new Bill. The draft keeps its
// items; calling Finalize again yields another bill with a fresh id.
func (b *Builder) Finalize(customer Customer, method PaymentMethod, notes string) (*Bill, error) {
	if len(b.draft.Items) == 0 {
		return nil, newError(ErrEmptyBill, "Add at least one item to the bill")
	}
	customer = customer.normalized()
	if customer.VehicleNumber == "" {
		return nil, newError(ErrMissingVehicleNumber, "Vehicle number is required")
	}

	b.draft.Customer = customer
	b.draft.PaymentMethod = method
	b.draft.Notes = notes

	totals := b.ComputeTotals()
	bill := &Bill{
		ID:                     b.newID(),
		CreatedAt:              b.now().UTC(),
		Customer:               customer,
		Items:                  slices.Clone(b.draft.Items),
		SubTotal:               totals.SubTotal,
		ItemDiscountTotal:      totals.ItemDiscountTotal,
		OverallDiscountPercent: totals.OverallDiscountPercent,
		GrandTotal:             totals.GrandTotal,
		PaymentMethod:          method,
		Notes:                  notes,
	}
	b.finalized = true
	return bill, nil
}

// FinalizeDraft finalizes using the header already stored on the draft.
func (b *Builder) FinalizeDraft() (*Bill, error) {
	return b.Finalize(b.draft.Customer, b.draft.PaymentMethod, b.draft.Notes)
}

func (b *Builder) indexOf(id string, kind Kind) int {
	return slices.IndexFunc(b.draft.Items, func(l LineItem) bool {
		return l.matches(id, kind)
	})
}

func (b *Builder) productQuantity(id string) int {
	total := 0
	for _, item := range b.draft.Items {
		if item.matches(id, KindProduct) {
			total += item.Quantity
		}
	}
	return total
}

func (b *Builder) checkIndex(index int) error {
	if index < 0 || index >= len(b.draft.Items) {
		return newError(ErrIndexOutOfRange, "Line item %d does not exist", index+1)
	}
	return nil
}

func (c Customer) normalized() Customer {
	return Customer{
		Name:          strings.TrimSpace(c.Name),
		Mobile:        strings.TrimSpace(c.Mobile),
		VehicleNumber: strings.ToUpper(strings.TrimSpace(c.VehicleNumber)),
		Company:       strings.TrimSpace(c.Company),
	}
}

func outOfStock(available int) *Error {
	if available == 1 {
		return newError(ErrOutOfStock, "Only 1 unit available in stock")
	}
	return newError(ErrOutOfStock, "Only %d units available in stock", available)
}

func invalidDiscount() *Error {
	return newError(ErrInvalidDiscount, "Discount must be between 0 and 100")
}
