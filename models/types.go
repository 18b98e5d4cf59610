package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// FlexInt is an integer that also accepts integral floats (2.0) and numeric
// strings ("2") on decode. Fractional and non-numeric values are rejected.
type FlexInt int

// Int returns the value as a plain int.
func (f FlexInt) Int() int { return int(f) }

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty numeric value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		return f.parse(strings.TrimSpace(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return f.parse(string(trimmed))
	default:
		return fmt.Errorf("value %s is not a number", trimmed)
	}
}

func (f *FlexInt) parse(s string) error {
	if s == "" {
		return fmt.Errorf("empty numeric value")
	}
	if i, err := strconv.ParseInt(s, 10, 0); err == nil {
		*f = FlexInt(i)
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return fmt.Errorf("value %q is not an integer", s)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Errorf("value %q is out of range", s)
	}
	*f = FlexInt(int(v))
	return nil
}
