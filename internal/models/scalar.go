package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a float64 that tolerates the loose encodings found in the source
// documents: JSON numbers, numeric strings, null, or a missing field all
// decode without error. Anything unparseable becomes zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	v, _ := parseLooseFloat(data)
	*n = Number(v)
	return nil
}

// Float64 returns the underlying value.
func (n Number) Float64() float64 { return float64(n) }

// NullNumber is a Number that remembers whether the field carried a usable
// value. The distinction matters for display columns such as average_week,
// where absent means blank rather than 0.0.
type NullNumber struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullNumber) UnmarshalJSON(data []byte) error {
	n.Value, n.Valid = parseLooseFloat(data)
	return nil
}

// MarshalJSON renders null when no value was present.
func (n NullNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// NullInt is the integer counterpart of NullNumber, used for user_rank.
type NullInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullInt) UnmarshalJSON(data []byte) error {
	v, ok := parseLooseFloat(data)
	n.Value, n.Valid = int(v), ok
	return nil
}

// MarshalJSON renders null when no value was present.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func parseLooseFloat(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false
	}
	return v, true
}
