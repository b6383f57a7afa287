package domain

import (
	"fmt"
	"math"
	"math/big"
)

// Money represents a monetary value with exact decimal arithmetic backed by big.Rat.
// The upstream catalog API ships prices as plain JSON numbers; converting them to a
// rational representation at the edge keeps comparisons exact everywhere else.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a Money from numerator and denominator.
// Example: NewMoney(249900, 100) represents 2499.00.
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// NewMoneyFromFloat creates a Money from a float64 as received in upstream JSON.
// NaN and infinities are rejected so malformed records can degrade instead of
// propagating garbage.
func NewMoneyFromFloat(value float64) (*Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("money value is not finite: %v", value)
	}
	rat := new(big.Rat).SetFloat64(value)
	if rat == nil {
		return nil, fmt.Errorf("cannot represent %v as a rational", value)
	}
	return &Money{rat: rat}, nil
}

// Numerator returns the numerator of the rational value.
func (m *Money) Numerator() int64 {
	return m.rat.Num().Int64()
}

// Denominator returns the denominator of the rational value.
func (m *Money) Denominator() int64 {
	return m.rat.Denom().Int64()
}

// Normalize returns a copy with the fraction reduced to lowest terms.
// big.Rat already keeps values reduced; this exists so storage code can be
// explicit about the invariant it relies on.
func (m *Money) Normalize() *Money {
	return m.Copy()
}

// IsSafeForStorage reports whether numerator and denominator both fit in int64,
// the representation used by the catalog_items columns.
func (m *Money) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}

// IsZero returns true if the value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// Equals returns true if both values are numerically equal.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// LessThan returns true if this value is less than other.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// Float64 returns an approximate float64 representation for JSON responses.
// Display only, never used for comparisons.
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns the value formatted with two decimal places.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
