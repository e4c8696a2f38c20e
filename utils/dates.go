// utils/dates.go
package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DisplayDateLayout = "02/01/2006"
	ExportDateLayout  = "02-01-2006"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	DisplayDateLayout,
	ExportDateLayout,
}

// Timestamp is the seconds/nanoseconds shape document stores use for dates.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, t.Nanoseconds).UTC()
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// IsDateOnly reports whether s carries no time-of-day component.
func IsDateOnly(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", DisplayDateLayout, ExportDateLayout} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// ToTime accepts time.Time, ISO-style strings, Timestamp values and decoded
// JSON objects with seconds/nanoseconds (optionally underscore-prefixed).
func ToTime(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return d, !d.IsZero()
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return *d, !d.IsZero()
	case FlexibleTime:
		return d.Time, !d.IsZero()
	case *FlexibleTime:
		if d == nil {
			return time.Time{}, false
		}
		return d.Time, !d.IsZero()
	case Timestamp:
		return d.Time(), true
	case *Timestamp:
		if d == nil {
			return time.Time{}, false
		}
		return d.Time(), true
	case string:
		if strings.TrimSpace(d) == "" {
			return time.Time{}, false
		}
		t, err := ParseDate(d)
		return t, err == nil
	case map[string]any:
		secs, ok := numberField(d, "seconds", "_seconds")
		if !ok {
			return time.Time{}, false
		}
		nanos, _ := numberField(d, "nanoseconds", "_nanoseconds")
		return Timestamp{Seconds: int64(secs), Nanoseconds: int64(nanos)}.Time(), true
	}
	return time.Time{}, false
}

func numberField(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch n := m[k].(type) {
		case float64:
			return n, true
		case int64:
			return float64(n), true
		case int:
			return float64(n), true
		}
	}
	return 0, false
}

// FormatDate renders v as dd/MM/yyyy, or "-" when v is missing or unreadable.
func FormatDate(v any) string {
	return FormatDateLayout(v, DisplayDateLayout)
}

func FormatDateLayout(v any, layout string) string {
	t, ok := ToTime(v)
	if !ok {
		return "-"
	}
	return t.Format(layout)
}

// FlexibleTime decodes a JSON date given either as a string or as a
// {"seconds": n, "nanoseconds": n} object.
type FlexibleTime struct {
	time.Time
}

func (f *FlexibleTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		t, err := ParseDate(s)
		if err != nil {
			return err
		}
		f.Time = t
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("unsupported date value %s", b)
	}
	t, ok := ToTime(m)
	if !ok {
		return fmt.Errorf("unsupported date value %s", b)
	}
	f.Time = t
	return nil
}

func (f *FlexibleTime) Ptr() *time.Time {
	if f == nil || f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}
