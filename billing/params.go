// Package billing computes invoice figures for tile orders.
//
// All functions are pure. Inputs are coerced to float64 with missing or
// non-numeric values counting as zero, and nothing is rounded here: callers
// round once when presenting a figure.
package billing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultSqft     = 27.55
	DefaultRate     = 0
	DefaultBillRate = 0
	DefaultInsu     = 0.5
	DefaultTax      = 18
)

// Selectable values offered by the invoice grid.
var (
	SqftChoices = []float64{46.50, 27.55, 25.83, 20.68, 15.50, 12.91, 8.67}
	InsuChoices = []float64{1, 0.5, 0.3, 0.25, 0}
)

// Params holds the editable invoice parameters of one order. A nil field is
// absent; WithDefaults fills absent fields.
type Params struct {
	Sqft     *float64 `json:"sqft,omitempty"`
	Rate     *float64 `json:"rate,omitempty"`
	BillRate *float64 `json:"billRate,omitempty"`
	Insu     *float64 `json:"insu,omitempty"`
	Tax      *float64 `json:"tax,omitempty"`
}

func Float(v float64) *float64 { return &v }

func value(p *float64) float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0
	}
	return *p
}

// WithDefaults returns a copy of p where every absent field carries the
// default invoice value.
func (p Params) WithDefaults() Params {
	out := p
	if out.Sqft == nil {
		out.Sqft = Float(DefaultSqft)
	}
	if out.Rate == nil {
		out.Rate = Float(DefaultRate)
	}
	if out.BillRate == nil {
		out.BillRate = Float(DefaultBillRate)
	}
	if out.Insu == nil {
		out.Insu = Float(DefaultInsu)
	}
	if out.Tax == nil {
		out.Tax = Float(DefaultTax)
	}
	return out
}

// Merge returns p overlaid with every field that is present in override.
func (p Params) Merge(override Params) Params {
	out := p
	if override.Sqft != nil {
		out.Sqft = Float(*override.Sqft)
	}
	if override.Rate != nil {
		out.Rate = Float(*override.Rate)
	}
	if override.BillRate != nil {
		out.BillRate = Float(*override.BillRate)
	}
	if override.Insu != nil {
		out.Insu = Float(*override.Insu)
	}
	if override.Tax != nil {
		out.Tax = Float(*override.Tax)
	}
	return out
}

// UnmarshalJSON accepts numbers or numeric strings for every field. A null
// leaves the field absent; any other unreadable value becomes 0.
func (p *Params) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	fields := map[string]**float64{
		"sqft":     &p.Sqft,
		"rate":     &p.Rate,
		"billRate": &p.BillRate,
		"insu":     &p.Insu,
		"tax":      &p.Tax,
	}
	for key, dst := range fields {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		*dst = Float(Number(v))
	}
	return nil
}

// Number coerces v to a float64; anything missing or non-numeric is 0.
func Number(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			return 1
		}
		return 0
	case *float64:
		return value(n)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
