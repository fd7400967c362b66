package billing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDiscountRoundsHalfUp(t *testing.T) {
	testCases := []struct {
		name   string
		amount Money
		pct    Percent
		want   Money
	}{
		{name: "no discount", amount: 45000, pct: 0, want: 45000},
		{name: "full discount", amount: 45000, pct: HundredPercent, want: 0},
		{name: "exact", amount: 180000, pct: 1000, want: 162000},
		{name: "half rounds up", amount: 5, pct: 1000, want: 5},
		{name: "above half rounds up", amount: 3, pct: 1000, want: 3},
		{name: "below half rounds down", amount: 11, pct: 1000, want: 10},
		{name: "fractional percent", amount: 33333, pct: 3333, want: 22223},
		{name: "largest amount", amount: math.MaxInt64, pct: 1000, want: 8301034833169298226},
		{name: "largest amount undiscounted", amount: math.MaxInt64, pct: 0, want: math.MaxInt64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, applyDiscount(tc.amount, tc.pct))
		})
	}
}

func TestMoneyConversions(t *testing.T) {
	assert.Equal(t, Money(45050), MoneyFromMajor(450.5))
	assert.Equal(t, "1539.00", MoneyFromMajor(1539).String())
	assert.Equal(t, "-0.50", Money(-50).String())
	assert.Equal(t, Percent(1250), PercentFromFloat(12.5))
	assert.False(t, Percent(-1).Valid())
	assert.False(t, Percent(10001).Valid())
	assert.True(t, HundredPercent.Valid())
}

func TestMoneyTimesDetectsOverflow(t *testing.T) {
	got, ok := Money(180000).Times(MaxQuantity)
	assert.True(t, ok)
	assert.Equal(t, Money(1799820000), got)

	_, ok = Money(180000).Times(10_000_000_000_000)
	assert.False(t, ok)

	_, ok = Money(math.MaxInt64).Times(2)
	assert.False(t, ok)

	got, ok = Money(-50).Times(3)
	assert.True(t, ok)
	assert.Equal(t, Money(-150), got)
}

func TestMoneyParsesDecimalExactly(t *testing.T) {
	testCases := []struct {
		input string
		want  Money
	}{
		{input: "1.005", want: 101},
		{input: "2.675", want: 268},
		{input: "1.004", want: 100},
		{input: "450.5", want: 45050},
		{input: "-1.005", want: -101},
		{input: "1.5e2", want: 15000},
		{input: "0", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMoney(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			var decoded Money
			require.NoError(t, json.Unmarshal([]byte(tc.input), &decoded))
			assert.Equal(t, tc.want, decoded)
		})
	}

	assert.Equal(t, Money(101), MoneyFromMajor(1.005))
	assert.Equal(t, Money(268), MoneyFromMajor(2.675))

	for _, bad := range []string{"", "abc", "1/2", "0x10", "1e400", "99999999999999999999"} {
		_, err := ParseMoney(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePercent(t *testing.T) {
	testCases := []struct {
		input   float64
		want    Percent
		wantErr bool
	}{
		{input: 0, want: 0},
		{input: 12.5, want: 1250},
		{input: 100, want: HundredPercent},
		{input: 33.335, want: 3334},
		{input: 100.004, wantErr: true},
		{input: -0.004, wantErr: true},
		{input: math.NaN(), wantErr: true},
		{input: math.Inf(1), wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParsePercent(tc.input)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidDiscount, "%v", tc.input)
			continue
		}
		require.NoError(t, err, "%v", tc.input)
		assert.Equal(t, tc.want, got, "%v", tc.input)
	}
}

func TestPercentUnmarshalRejectsOutOfRange(t *testing.T) {
	var p Percent
	for _, raw := range []string{"100.004", "-0.004", "150"} {
		assert.ErrorIs(t, json.Unmarshal([]byte(raw), &p), ErrInvalidDiscount, raw)
	}
	require.NoError(t, json.Unmarshal([]byte("12.5"), &p))
	assert.Equal(t, Percent(1250), p)
}
