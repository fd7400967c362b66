package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/autospa/autospa-api/internal/domain/billing"
	billingmocks "github.com/autospa/autospa-api/internal/domain/billing/mocks"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/autospa/autospa-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type billServiceFixture struct {
	billRepo *mocks.MockBillRepository
	catalog  *billingmocks.MockCatalogProvider
	service  *BillService
}

func newBillServiceFixture(t *testing.T) *billServiceFixture {
	ctrl := gomock.NewController(t)
	f := &billServiceFixture{
		billRepo: mocks.NewMockBillRepository(ctrl),
		catalog:  billingmocks.NewMockCatalogProvider(ctrl),
	}
	f.service = NewBillService(f.billRepo, f.catalog, NewBillSubmitter(f.billRepo, nil))
	return f
}

func TestBillService_SubmitBill(t *testing.T) {
	f := newBillServiceFixture(t)
	ctx, _ := signedIn(t)
	bill := finalizedBill(t)

	f.catalog.EXPECT().FetchCatalog(gomock.Any()).Return(testCatalog(), nil)
	f.billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)

	receipt, err := f.service.SubmitBill(ctx, bill)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, receipt.BillingID)
}

func TestBillService_SubmitBill_AssignsIDWhenMissing(t *testing.T) {
	f := newBillServiceFixture(t)
	ctx, _ := signedIn(t)
	bill := finalizedBill(t)
	bill.ID = ""

	f.catalog.EXPECT().FetchCatalog(gomock.Any()).Return(testCatalog(), nil)
	f.billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)

	receipt, err := f.service.SubmitBill(ctx, bill)
	require.NoError(t, err)
	_, err = uuid.Parse(receipt.BillingID)
	assert.NoError(t, err)
}

func TestBillService_SubmitBill_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*billing.Bill, *billing.Catalog)
		catalog bool
		code    int
	}{
		{
			name:   "stated total does not match lines",
			mutate: func(b *billing.Bill, _ *billing.Catalog) { b.GrandTotal += 100 },
			code:   http.StatusUnprocessableEntity,
		},
		{
			name:   "bill id is not a uuid",
			mutate: func(b *billing.Bill, _ *billing.Catalog) { b.ID = "INV-7" },
			code:   http.StatusUnprocessableEntity,
		},
		{
			name: "catalog price changed",
			mutate: func(_ *billing.Bill, c *billing.Catalog) {
				c.Products[0].Price = billing.MoneyFromMajor(500)
			},
			catalog: true,
			code:    http.StatusUnprocessableEntity,
		},
		{
			name: "item removed from catalog",
			mutate: func(_ *billing.Bill, c *billing.Catalog) {
				c.Services = nil
			},
			catalog: true,
			code:    http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBillServiceFixture(t)
			ctx, _ := signedIn(t)
			bill := finalizedBill(t)
			catalog := testCatalog()
			tt.mutate(bill, &catalog)
			if tt.catalog {
				f.catalog.EXPECT().FetchCatalog(gomock.Any()).Return(catalog, nil)
			}

			_, err := f.service.SubmitBill(ctx, bill)
			requireAppError(t, err, tt.code)
		})
	}
}

func TestBillService_SubmitBill_CustomLinesSkipPriceCheck(t *testing.T) {
	f := newBillServiceFixture(t)
	ctx, _ := signedIn(t)

	b := billing.NewBuilder()
	require.NoError(t, b.AddCustomItem("Dent repair", billing.MoneyFromMajor(1250), "rear door"))
	bill, err := b.Finalize(billing.Customer{VehicleNumber: "MH12XY0001"}, billing.PaymentCash, "")
	require.NoError(t, err)

	f.catalog.EXPECT().FetchCatalog(gomock.Any()).Return(billing.Catalog{}, nil)
	f.billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)

	_, err = f.service.SubmitBill(ctx, bill)
	assert.NoError(t, err)
}

func TestBillService_SubmitBill_Duplicate(t *testing.T) {
	f := newBillServiceFixture(t)
	ctx, _ := signedIn(t)

	f.catalog.EXPECT().FetchCatalog(gomock.Any()).Return(testCatalog(), nil)
	f.billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicate)

	_, err := f.service.SubmitBill(ctx, finalizedBill(t))
	requireAppError(t, err, http.StatusConflict)
}

func TestBillService_VoidBill(t *testing.T) {
	id, userID := uuid.New(), uuid.New()

	t.Run("voids and returns the bill", func(t *testing.T) {
		f := newBillServiceFixture(t)
		f.billRepo.EXPECT().Void(gomock.Any(), id, userID).Return(nil)
		f.billRepo.EXPECT().GetByID(gomock.Any(), id).Return(&entity.Bill{ID: id, Status: enum.BillStatusVoid}, nil)

		bill, err := f.service.VoidBill(context.Background(), id, userID)
		require.NoError(t, err)
		assert.True(t, bill.IsVoid())
	})

	t.Run("unknown bill", func(t *testing.T) {
		f := newBillServiceFixture(t)
		f.billRepo.EXPECT().Void(gomock.Any(), id, userID).Return(repository.ErrNotFound)

		_, err := f.service.VoidBill(context.Background(), id, userID)
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("already void", func(t *testing.T) {
		f := newBillServiceFixture(t)
		f.billRepo.EXPECT().Void(gomock.Any(), id, userID).Return(repository.ErrAlreadyVoid)

		_, err := f.service.VoidBill(context.Background(), id, userID)
		requireAppError(t, err, http.StatusConflict)
	})
}

func TestBillService_ListBillsWithCursor_RejectsBadCursor(t *testing.T) {
	f := newBillServiceFixture(t)

	_, err := f.service.ListBillsWithCursor(context.Background(), &repository.BillCursorFilterParams{
		Cursor: &pagination.CursorParams{Cursor: "not-a-cursor!", Limit: 10},
	})
	requireAppError(t, err, http.StatusBadRequest)
}
