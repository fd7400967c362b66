package validation_test

import (
	"errors"
	"testing"

	"github.com/autospa/autospa-api/internal/presentation/http/dto/request"
	"github.com/autospa/autospa-api/internal/presentation/http/validation"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := validation.Register(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestVehicleNumber(t *testing.T) {
	tests := []struct {
		plate string
		valid bool
	}{
		{"KA01AB1234", true},
		{"ka 01 ab 1234", true},
		{"MH-12-XY-0001", true},
		{"", true}, // optional on the header
		{"K", false},
		{"KA01#1234", false},
		{"-KA01AB1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.plate, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&request.HeaderRequest{
				Customer:      request.CustomerRequest{VehicleNumber: tt.plate},
				PaymentMethod: "cash",
			})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	err := binding.Validator.ValidateStruct(&request.HeaderRequest{
		Customer:      request.CustomerRequest{VehicleNumber: "??"},
		PaymentMethod: "cheque",
	})
	require.Error(t, err)

	fields := validation.FieldErrors(err)
	require.Len(t, fields, 2)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "must be a valid vehicle number", byField["vehicleNumber"])
	assert.Equal(t, "must be cash, card or upi", byField["paymentMethod"])
}

func TestFieldErrors_RequiredAndOneOf(t *testing.T) {
	err := binding.Validator.ValidateStruct(&request.AddItemRequest{Kind: "combo"})
	require.Error(t, err)

	byField := map[string]string{}
	for _, f := range validation.FieldErrors(err) {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "must be one of: product service", byField["kind"])
	assert.Equal(t, "is required", byField["id"])
}

func TestFieldErrors_NotAValidationError(t *testing.T) {
	assert.Nil(t, validation.FieldErrors(errors.New("unexpected EOF")))
}
