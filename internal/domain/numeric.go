package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ToNumber coerces any backend-sent value to a float64. The backend is
// inconsistent about numeric fields: the same field can arrive as a JSON
// number, a plain string, or a pt-BR formatted string ("1.234,56").
// Unparseable input yields 0, never an error.
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parseLocaleNumber(n)
	default:
		return 0
	}
}

// parseLocaleNumber parses a numeric string that may use pt-BR separators.
// A comma present means decimal comma: thousands dots are stripped and the
// comma becomes the decimal point.
func parseLocaleNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// FlexFloat is a float64 that unmarshals from either a JSON number or a
// string, tolerating pt-BR formatting. Anything unparseable (including null)
// decodes to 0.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(parseLocaleNumber(s))
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(n)
	return nil
}

// MarshalJSON emits a plain JSON number.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// Float64 returns the underlying value.
func (f FlexFloat) Float64() float64 {
	return float64(f)
}
