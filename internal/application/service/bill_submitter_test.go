package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func finalizedBill(t *testing.T) *billing.Bill {
	t.Helper()
	b := billing.NewBuilder(billing.WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	}))
	catalog := testCatalog()
	require.NoError(t, b.AddCatalogItem(catalog.Products[0]))
	require.NoError(t, b.AddCatalogItem(catalog.Services[0]))
	bill, err := b.Finalize(billing.Customer{Name: "Ravi", VehicleNumber: "ka01ab1234"}, billing.PaymentUPI, "")
	require.NoError(t, err)
	return bill
}

func TestBillSubmitter_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	billRepo := mocks.NewMockBillRepository(ctrl)
	archive := mocks.NewMockBillArchive(ctrl)
	ctx, userID := signedIn(t)
	bill := finalizedBill(t)
	customerID := uuid.New()

	billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *entity.Bill) error {
			assert.Equal(t, bill.ID, record.ID.String())
			assert.Equal(t, userID, record.CreatedBy)
			assert.Equal(t, "KA01AB1234", record.VehicleNumber)
			require.Len(t, record.Items, 2)
			require.NotNil(t, record.Items[0].ProductID)
			assert.Equal(t, oilFilterID, *record.Items[0].ProductID)
			require.NotNil(t, record.Items[1].ServiceID)
			record.CustomerID = customerID
			return nil
		})
	archive.EXPECT().Archive(gomock.Any(), bill).Return(nil)

	receipt, err := NewBillSubmitter(billRepo, archive).Submit(ctx, bill)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, receipt.BillingID)
	assert.Equal(t, customerID, receipt.CustomerID)
	assert.Equal(t, "Bill submitted successfully", receipt.Message)
}

func TestBillSubmitter_ArchiveFailureDoesNotFailSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	billRepo := mocks.NewMockBillRepository(ctrl)
	archive := mocks.NewMockBillArchive(ctrl)
	ctx, _ := signedIn(t)

	billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)
	archive.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(errors.New("throttled"))

	err := NewBillSubmitter(billRepo, archive).SubmitBill(ctx, finalizedBill(t))
	assert.NoError(t, err)
}

func TestBillSubmitter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		reason  string
		is      error
	}{
		{
			name:    "duplicate",
			repoErr: repository.ErrDuplicate,
			reason:  "This bill has already been submitted",
			is:      billing.ErrDuplicateBill,
		},
		{
			name:    "insufficient stock",
			repoErr: &repository.InsufficientStockError{ProductID: oilFilterID, Name: "Oil Filter", Requested: 4, Available: 3},
			reason:  "Only 3 units of Oil Filter available in stock",
		},
		{
			name:    "database failure",
			repoErr: errors.New("connection refused"),
			reason:  "Could not save the bill, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			billRepo := mocks.NewMockBillRepository(ctrl)
			ctx, _ := signedIn(t)
			billRepo.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(tt.repoErr)

			_, err := NewBillSubmitter(billRepo, nil).Submit(ctx, finalizedBill(t))

			var subErr *billing.SubmissionError
			require.ErrorAs(t, err, &subErr)
			assert.Equal(t, tt.reason, subErr.Reason)
			assert.ErrorIs(t, err, billing.ErrSubmissionFailed)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestBillSubmitter_RejectsWithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	billRepo := mocks.NewMockBillRepository(ctrl)

	_, err := NewBillSubmitter(billRepo, nil).Submit(context.Background(), finalizedBill(t))

	var subErr *billing.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "Sign in again to submit bills", subErr.Reason)
}

func TestBillSubmitter_RejectsUnknownCatalogID(t *testing.T) {
	ctrl := gomock.NewController(t)
	billRepo := mocks.NewMockBillRepository(ctrl)
	ctx, _ := signedIn(t)
	bill := finalizedBill(t)
	bill.Items[0].ID = "P001"

	_, err := NewBillSubmitter(billRepo, nil).Submit(ctx, bill)

	assert.ErrorIs(t, err, billing.ErrInvalidInput)
}
