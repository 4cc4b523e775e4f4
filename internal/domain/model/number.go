package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is an optional float64. Sensor rows routinely omit fields, so
// absence flows through every computation explicitly instead of riding on a
// zero or NaN sentinel. The zero value is absent.
type Number struct {
	value float64
	valid bool
}

// Some returns a present Number holding v.
func Some(v float64) Number {
	return Number{value: v, valid: true}
}

// None returns an absent Number.
func None() Number {
	return Number{}
}

// FromFloat returns Some(v) for finite v and None for NaN or infinities.
func FromFloat(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return None()
	}
	return Some(v)
}

// Parse coerces a raw cell into a Number. Whitespace is trimmed, the empty
// string and anything non-numeric resolve to absent, and non-finite parses
// resolve to absent. Parse never fails.
func Parse(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return None()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None()
	}
	return FromFloat(v)
}

// Valid reports whether a value is present.
func (n Number) Valid() bool {
	return n.valid
}

// Value returns the held value and whether it is present.
func (n Number) Value() (float64, bool) {
	return n.value, n.valid
}

// Or returns the held value, or fallback when absent.
func (n Number) Or(fallback float64) float64 {
	if !n.valid {
		return fallback
	}
	return n.value
}

// String renders the value with two decimals, or "-" when absent.
func (n Number) String() string {
	if !n.valid {
		return "-"
	}
	return strconv.FormatFloat(n.value, 'f', 2, 64)
}

// MarshalJSON encodes an absent Number as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON decodes null, a JSON number, or a numeric-looking string.
// Anything else resolves to absent rather than an error, matching the
// ingestion coercion policy.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*n = FromFloat(v)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*n = Parse(raw)
		return nil
	}
	*n = None()
	return nil
}
