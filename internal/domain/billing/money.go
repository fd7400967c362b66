package billing

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

// Money is an amount in the currency's minor unit (paise).
type Money int64

// MaxUnitPrice caps the price of a single unit, 1 crore rupees. With
// MaxQuantity it keeps every line amount far inside int64.
const MaxUnitPrice Money = 1_000_000_000

// ParseMoney reads a decimal amount in major units such as "450.505" and
// rounds it half-up to the minor unit. The digits are used as written.
func ParseMoney(s string) (Money, error) {
	v, ok := scaleDecimal(s, 100)
	if !ok {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return Money(v), nil
}

// MoneyFromMajor converts a decimal amount such as 450.50 into minor units,
// rounding half-up on its shortest decimal form, so 1.005 becomes 101.
// Amounts that do not fit saturate and are caught by the unit price limit.
func MoneyFromMajor(v float64) Money {
	m, err := ParseMoney(strconv.FormatFloat(v, 'f', -1, 64))
	if err != nil {
		if v < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return m
}

// Major returns the amount as a decimal for display and JSON.
func (m Money) Major() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	sign := ""
	v := uint64(m)
	if m < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits the amount in major units, 1539.5 rather than 153950.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Major(), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Times multiplies the amount by a quantity. ok is false when the result
// does not fit in a Money.
func (m Money) Times(qty int) (Money, bool) {
	v, ok := mulInt64(int64(m), int64(qty))
	return Money(v), ok
}

// Percent is a percentage in basis points: 100 == 1%, 10000 == 100%.
type Percent int64

const (
	ZeroPercent    Percent = 0
	HundredPercent Percent = 10000
)

// ParsePercent converts a caller-supplied percentage such as 12.5 into
// basis points. Values outside [0, 100] are rejected before any rounding.
func ParsePercent(v float64) (Percent, error) {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return 0, invalidDiscount()
	}
	return parsePercent(strconv.FormatFloat(v, 'f', -1, 64))
}

func parsePercent(s string) (Percent, error) {
	r, ok := parseDecimal(s)
	if !ok {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	if r.Sign() < 0 || r.Cmp(big.NewRat(100, 1)) > 0 {
		return 0, invalidDiscount()
	}
	v, _ := roundRat(r.Mul(r, big.NewRat(100, 1)))
	return Percent(v), nil
}

// PercentFromFloat converts 12.5 into 1250 basis points. It is meant for
// literals known to be in range; input goes through ParsePercent.
func PercentFromFloat(v float64) Percent {
	return Percent(math.Round(v * 100))
}

// Float returns the percentage as a plain number, 1250 -> 12.5.
func (p Percent) Float() float64 {
	return float64(p) / 100
}

// Valid reports whether the percentage lies within [0, 100].
func (p Percent) Valid() bool {
	return p >= ZeroPercent && p <= HundredPercent
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(p.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON rejects percentages outside [0, 100] with ErrInvalidDiscount.
func (p *Percent) UnmarshalJSON(data []byte) error {
	v, err := parsePercent(string(data))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Percent) String() string {
	return strconv.FormatFloat(p.Float(), 'f', -1, 64) + "%"
}

// applyDiscount returns amount * (1 - p/100) rounded half-up to the minor
// unit. p must be Valid. The amount is split into whole hundreds of percent
// and a remainder so no intermediate product leaves int64.
func applyDiscount(amount Money, p Percent) Money {
	den := int64(HundredPercent)
	keep := den - int64(p)
	q, r := int64(amount)/den, int64(amount)%den
	return Money(q*keep + divRoundHalfUp(r*keep, den))
}

func divRoundHalfUp(num, den int64) int64 {
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}

func mulInt64(a, b int64) (int64, bool) {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absUint64(a), absUint64(b))
	if hi != 0 {
		return 0, false
	}
	if neg {
		if lo > 1<<63 {
			return 0, false
		}
		return int64(-lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return -uint64(v)
	}
	return uint64(v)
}

// parseDecimal reads a JSON number exactly. Exponent forms are expanded
// through float64 first so a huge exponent cannot blow up the rational.
func parseDecimal(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "/xXbBoO_") {
		return nil, false
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, false
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return new(big.Rat).SetString(s)
}

// scaleDecimal returns s * scale rounded half away from zero.
func scaleDecimal(s string, scale int64) (int64, bool) {
	r, ok := parseDecimal(s)
	if !ok {
		return 0, false
	}
	return roundRat(r.Mul(r, big.NewRat(scale, 1)))
}

func roundRat(r *big.Rat) (int64, bool) {
	den := r.Denom()
	q, rem := new(big.Int).QuoRem(new(big.Int).Abs(r.Num()), den, new(big.Int))
	if rem.Lsh(rem, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if r.Sign() < 0 {
		q.Neg(q)
	}
	if !q.IsInt64() {
		return 0, false
	}
	return q.Int64(), true
}
