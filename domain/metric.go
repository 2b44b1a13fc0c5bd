package domain

import (
	"encoding/json"
	"strconv"
)

// MetricKind distinguishes a numeric metric from the sentinel states a
// projection can produce.
type MetricKind int

const (
	MetricNumber MetricKind = iota
	MetricIndefinite
	MetricNA
)

// Metric is a derived figure that may be undefined ("n/a") or unbounded
// ("indefinite"). The zero value is the number 0.
type Metric struct {
	Kind  MetricKind
	Value float64
}

func Number(v float64) Metric { return Metric{Kind: MetricNumber, Value: v} }
func Indefinite() Metric      { return Metric{Kind: MetricIndefinite} }
func NA() Metric              { return Metric{Kind: MetricNA} }

// String renders the metric for display. Numbers are formatted with two
// decimal digits; formatting happens here, at the presentation boundary,
// never inside the calculator.
func (m Metric) String() string {
	switch m.Kind {
	case MetricIndefinite:
		return "indefinite"
	case MetricNA:
		return "n/a"
	default:
		return strconv.FormatFloat(m.Value, 'f', 2, 64)
	}
}

// MarshalJSON encodes numeric metrics as JSON numbers and the sentinel states
// as their display strings.
func (m Metric) MarshalJSON() ([]byte, error) {
	if m.Kind == MetricNumber {
		return json.Marshal(m.Value)
	}
	return json.Marshal(m.String())
}
