// Package jsonutil decodes loosely-typed JSON values found in activity logs.
package jsonutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// FlexibleInt64 is an integer that may arrive as a JSON number, a numeric string,
// an empty string or null. Empty strings and null decode to an invalid (absent) value.
type FlexibleInt64 struct {
	Int64 int64
	Valid bool
}

// NewFlexibleInt64 returns a valid FlexibleInt64 holding v.
func NewFlexibleInt64(v int64) FlexibleInt64 {
	return FlexibleInt64{Int64: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleInt64) UnmarshalJSON(raw []byte) error {
	*f = FlexibleInt64{}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
	} else {
		s = string(raw)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = NewFlexibleInt64(v)
		return nil
	}

	// Whole floats such as 39.0 show up when a producer round-trips through float columns.
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil || fv != float64(int64(fv)) {
		return fmt.Errorf("jsonutil: cannot decode %s into an integer", string(raw))
	}
	*f = NewFlexibleInt64(int64(fv))
	return nil
}
