package billing_test

import (
	"encoding/json"
	"testing"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	testCases := []struct {
		input   string
		want    billing.PaymentMethod
		wantErr bool
	}{
		{input: "cash", want: billing.PaymentCash},
		{input: "Card", want: billing.PaymentCard},
		{input: "UPI", want: billing.PaymentUPI},
		{input: "uPI", want: billing.PaymentUPI},
		{input: "cASh", want: billing.PaymentCash},
		{input: " upi ", want: billing.PaymentUPI},
		{input: "cheque", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := billing.ParsePaymentMethod(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaymentMethodJSONIgnoresCase(t *testing.T) {
	var m billing.PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"cArD"`), &m))
	assert.Equal(t, billing.PaymentCard, m)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `"card"`, string(data))
}
