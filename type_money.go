package fund

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency every fund amount is kept in.
const DefaultCurrency = "PKR"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// PKR is a convenient factory for amounts in the fund's currency.
func PKR[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return M(value, DefaultCurrency)
}

// ParseMoney parses a decimal string like "1500" or "1500.50" into a PKR amount.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return PKR(d), nil
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	c := m.cur
	if c == "" {
		c = DefaultCurrency
	}
	return *money.New(0, c).Currency()
}

// String returns the string representation of the money value, e.g. "₨1,500.00".
// Only the display is rounded to the currency fraction.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string          { return m.cur }
func (m Money) Decimal() decimal.Decimal  { return m.value }
func (m Money) Equal(n Money) bool        { return m.value.Equal(n.value) }
func (m Money) IsZero() bool              { return m.value.IsZero() }
func (m Money) IsNegative() bool          { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool  { return m.value.GreaterThan(n.value) }
func (m Money) Abs() Money                { return Money{value: m.value.Abs(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Ratio returns m/n as a float, 0 when n is zero. Only meant for display (bar lengths).
func (m Money) Ratio(n Money) float64 {
	if n.value.IsZero() {
		return 0
	}
	return m.value.Div(n.value).InexactFloat64()
}

// MarshalJSON writes the exact amount as a bare number, the currency is
// implied by the fund. No rounding, what is read back is what was written.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON reads a bare number (or a quoted decimal) into a PKR amount.
func (m *Money) UnmarshalJSON(b []byte) error {
	if err := m.value.UnmarshalJSON(b); err != nil {
		return err
	}
	m.cur = DefaultCurrency
	return nil
}
