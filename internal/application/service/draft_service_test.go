package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	billingmocks "github.com/autospa/autospa-api/internal/domain/billing/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingStore is a Submitter that keeps every bill it accepts
type recordingStore struct {
	mu    sync.Mutex
	bills []*billing.Bill
	err   error
}

func (s *recordingStore) SubmitBill(ctx context.Context, bill *billing.Bill) error {
	_, err := s.Submit(ctx, bill)
	return err
}

func (s *recordingStore) Submit(_ context.Context, bill *billing.Bill) (*SubmitReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.bills = append(s.bills, bill)
	return &SubmitReceipt{BillingID: bill.ID, Message: "Bill submitted successfully"}, nil
}

func newDraftService(t *testing.T) (*DraftService, *billingmocks.MockCatalogProvider, *recordingStore) {
	ctrl := gomock.NewController(t)
	catalog := billingmocks.NewMockCatalogProvider(ctrl)
	catalog.EXPECT().FetchCatalog(gomock.Any()).Return(testCatalog(), nil).AnyTimes()
	store := &recordingStore{}
	return NewDraftService(catalog, store, time.Hour), catalog, store
}

func TestDraftService_BuildAndSubmit(t *testing.T) {
	svc, _, store := newDraftService(t)
	ctx := context.Background()
	owner := uuid.New()

	draft := svc.Create(ctx, owner)
	assert.Equal(t, billing.StateEmpty.String(), draft.State)

	_, err := svc.AddCatalogItem(ctx, owner, draft.ID, billing.KindProduct, oilFilterID.String())
	require.NoError(t, err)
	_, err = svc.AddCatalogItem(ctx, owner, draft.ID, billing.KindService, washID.String())
	require.NoError(t, err)
	view, err := svc.SetQuantity(ctx, owner, draft.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, billing.MoneyFromMajor(1200), view.Totals.GrandTotal)

	view, err = svc.SetOverallDiscount(ctx, owner, draft.ID, billing.PercentFromFloat(10))
	require.NoError(t, err)
	assert.Equal(t, billing.MoneyFromMajor(1080), view.Totals.GrandTotal)

	_, err = svc.SetHeader(ctx, owner, draft.ID, HeaderInput{
		Customer:      billing.Customer{Name: "Asha", VehicleNumber: " ka05mn4321 "},
		PaymentMethod: billing.PaymentCard,
	})
	require.NoError(t, err)

	receipt, err := svc.Submit(ctx, owner, draft.ID, true)
	require.NoError(t, err)
	require.Len(t, store.bills, 1)
	bill := store.bills[0]
	assert.Equal(t, bill.ID, receipt.BillingID)
	assert.Equal(t, "KA05MN4321", bill.Customer.VehicleNumber)
	assert.Equal(t, billing.PaymentCard, bill.PaymentMethod)
	assert.Equal(t, billing.MoneyFromMajor(1080), bill.GrandTotal)

	view, err = svc.Get(ctx, owner, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StateEmpty.String(), view.State)
}

func TestDraftService_SubmitWithoutClearKeepsDraft(t *testing.T) {
	svc, _, _ := newDraftService(t)
	ctx := context.Background()
	owner := uuid.New()
	draft := svc.Create(ctx, owner)

	_, err := svc.AddCustomItem(ctx, owner, draft.ID, "Headlight polish", billing.MoneyFromMajor(350), "")
	require.NoError(t, err)
	_, err = svc.SetHeader(ctx, owner, draft.ID, HeaderInput{Customer: billing.Customer{VehicleNumber: "DL3CAB0001"}})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, owner, draft.ID, false)
	require.NoError(t, err)

	view, err := svc.Get(ctx, owner, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.StateFinalized.String(), view.State)
	assert.Len(t, view.Draft.Items, 1)
}

func TestDraftService_FailedSubmitKeepsDraft(t *testing.T) {
	svc, _, store := newDraftService(t)
	store.err = billing.NewSubmissionError("Could not save the bill, please try again", nil)
	ctx := context.Background()
	owner := uuid.New()
	draft := svc.Create(ctx, owner)

	_, err := svc.AddCatalogItem(ctx, owner, draft.ID, billing.KindService, washID.String())
	require.NoError(t, err)
	_, err = svc.SetHeader(ctx, owner, draft.ID, HeaderInput{Customer: billing.Customer{VehicleNumber: "KA01AA0001"}})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, owner, draft.ID, true)
	requireAppError(t, err, http.StatusBadGateway)

	view, err := svc.Get(ctx, owner, draft.ID)
	require.NoError(t, err)
	assert.Len(t, view.Draft.Items, 1)
}

func TestDraftService_Rejections(t *testing.T) {
	svc, _, _ := newDraftService(t)
	ctx := context.Background()
	owner := uuid.New()
	draft := svc.Create(ctx, owner)
	_, err := svc.AddCatalogItem(ctx, owner, draft.ID, billing.KindProduct, oilFilterID.String())
	require.NoError(t, err)

	t.Run("quantity above stock", func(t *testing.T) {
		_, err := svc.SetQuantity(ctx, owner, draft.ID, 0, 4)
		requireAppError(t, err, http.StatusConflict)
	})

	t.Run("discount above 100", func(t *testing.T) {
		_, err := svc.SetItemDiscount(ctx, owner, draft.ID, 0, billing.PercentFromFloat(120))
		requireAppError(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := svc.RemoveItem(ctx, owner, draft.ID, 5)
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("unknown catalog item", func(t *testing.T) {
		_, err := svc.AddCatalogItem(ctx, owner, draft.ID, billing.KindProduct, uuid.NewString())
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("finalize without vehicle number", func(t *testing.T) {
		_, err := svc.Finalize(ctx, owner, draft.ID)
		requireAppError(t, err, http.StatusUnprocessableEntity)
	})

	view, err := svc.Get(ctx, owner, draft.ID)
	require.NoError(t, err)
	require.Len(t, view.Draft.Items, 1)
	assert.Equal(t, 1, view.Draft.Items[0].Quantity)
}

func TestDraftService_DraftsArePrivate(t *testing.T) {
	svc, _, _ := newDraftService(t)
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()
	draft := svc.Create(ctx, owner)

	_, err := svc.Get(ctx, other, draft.ID)
	requireAppError(t, err, http.StatusNotFound)

	err = svc.Discard(ctx, other, draft.ID)
	requireAppError(t, err, http.StatusNotFound)

	require.NoError(t, svc.Discard(ctx, owner, draft.ID))
	_, err = svc.Get(ctx, owner, draft.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestDraftService_Expire(t *testing.T) {
	svc, _, _ := newDraftService(t)
	ctx := context.Background()
	owner := uuid.New()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	stale := svc.Create(ctx, owner)
	now = now.Add(50 * time.Minute)
	fresh := svc.Create(ctx, owner)
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, svc.Expire())

	_, err := svc.Get(ctx, owner, stale.ID)
	requireAppError(t, err, http.StatusNotFound)
	_, err = svc.Get(ctx, owner, fresh.ID)
	assert.NoError(t, err)
}
