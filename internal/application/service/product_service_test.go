package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProductService_CreateProductDiscount(t *testing.T) {
	testCases := []struct {
		name         string
		discount     float64
		wantDiscount int64
		wantStatus   int
	}{
		{name: "in range", discount: 12.5, wantDiscount: 1250},
		{name: "full", discount: 100, wantDiscount: 10000},
		{name: "just above hundred", discount: 100.004, wantStatus: http.StatusUnprocessableEntity},
		{name: "just below zero", discount: -0.004, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			products := mocks.NewMockProductRepository(ctrl)
			svc := NewProductService(products, mocks.NewMockSettingsRepository(ctrl))

			products.EXPECT().GetByCode(gomock.Any(), "OF-01").Return(nil, nil)
			if tc.wantStatus == 0 {
				products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			}

			product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
				UserID:   uuid.New(),
				Name:     "Oil Filter",
				Code:     "of-01",
				Quantity: 4,
				Price:    450.005,
				Discount: tc.discount,
			})
			if tc.wantStatus != 0 {
				requireAppError(t, err, tc.wantStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDiscount, product.Discount)
			assert.Equal(t, int64(45001), product.Price)
		})
	}
}

func TestProductService_UpdateProductRejectsDiscountThatRoundsIntoRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mocks.NewMockProductRepository(ctrl)
	svc := NewProductService(products, mocks.NewMockSettingsRepository(ctrl))

	id := uuid.New()
	products.EXPECT().GetByID(gomock.Any(), id).Return(&entity.Product{ID: id, Code: "OF-01", Discount: 500}, nil)

	discount := 100.004
	_, err := svc.UpdateProduct(context.Background(), &UpdateProductInput{ID: id, Discount: &discount})
	requireAppError(t, err, http.StatusUnprocessableEntity)
}
