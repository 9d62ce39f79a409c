package domain

import (
	"encoding/json"
	"math"
)

// Value is an optional scalar: a season aggregate that may be undefined
// because the season had no usable data.
type Value struct {
	V     float64
	Valid bool
}

// Some wraps a defined value.
func Some(v float64) Value { return Value{V: v, Valid: true} }

// None is the undefined value.
func None() Value { return Value{} }

// Float returns V, or NaN when the value is undefined.
func (v Value) Float() float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.V
}

// MarshalJSON encodes an undefined value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// UnmarshalJSON decodes null as an undefined value.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = None()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// YearSeries holds one optional value per year, ordered by year.
type YearSeries []Value

// Floats returns the series with undefined entries as NaN.
func (s YearSeries) Floats() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Float()
	}
	return out
}

// ValidCount returns the number of defined entries.
func (s YearSeries) ValidCount() int {
	n := 0
	for _, v := range s {
		if v.Valid {
			n++
		}
	}
	return n
}
