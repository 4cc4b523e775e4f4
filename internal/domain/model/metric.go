// Package model contains the domain types passed between the analyzer layers:
// the closed metric enumeration, the optional Number used everywhere a sensor
// value may be missing, and the per-throw record produced by ingestion.
package model

import (
	"fmt"
	"strings"
)

// Metric identifies one of the four benchmarked throw qualities.
// The enumeration is closed; there is no dynamic extension.
type Metric string

// The four benchmarked metrics. Power is the speed proxy: it reads a
// throw's speed field but is banded and diagnosed as "arm power".
const (
	MetricPower  Metric = "power"
	MetricSpin   Metric = "spin"
	MetricNose   Metric = "nose"
	MetricWobble Metric = "wobble"
)

// NoseTarget is the nose angle, in degrees, coaching treats as ideal.
// Nose goodness is proximity to this value, not a monotonic extreme.
const NoseTarget = 2.0

// Goodness describes how raw values of a metric compare against each other.
type Goodness int

const (
	// HigherIsBetter ranks larger values ahead of smaller ones.
	HigherIsBetter Goodness = iota
	// LowerIsBetter ranks smaller values ahead of larger ones.
	LowerIsBetter
	// NearestTarget ranks by absolute distance from a fixed target.
	NearestTarget
)

// AllMetrics returns the metrics in canonical display order.
func AllMetrics() []Metric {
	return []Metric{MetricPower, MetricSpin, MetricNose, MetricWobble}
}

// Valid reports whether m is one of the four known metrics.
func (m Metric) Valid() bool {
	switch m {
	case MetricPower, MetricSpin, MetricNose, MetricWobble:
		return true
	}
	return false
}

// Goodness returns the comparison polarity for m.
func (m Metric) Goodness() Goodness {
	switch m {
	case MetricWobble:
		return LowerIsBetter
	case MetricNose:
		return NearestTarget
	default:
		return HigherIsBetter
	}
}

// Label returns the human-readable name used in report headings.
func (m Metric) Label() string {
	switch m {
	case MetricPower:
		return "Arm power"
	case MetricSpin:
		return "Spin rate"
	case MetricNose:
		return "Nose angle"
	case MetricWobble:
		return "Off-axis wobble"
	default:
		return string(m)
	}
}

// Unit returns the unit label attached to values of m.
func (m Metric) Unit() string {
	switch m {
	case MetricPower:
		return "mph"
	case MetricSpin:
		return "rpm"
	default:
		return "°"
	}
}

// GoalLabel returns the coaching goal range shown next to diagnosed values.
func (m Metric) GoalLabel() string {
	switch m {
	case MetricPower:
		return "50+ mph"
	case MetricSpin:
		return "900+ rpm"
	case MetricNose:
		return "1–3°"
	case MetricWobble:
		return "under 3°"
	default:
		return ""
	}
}

// ParseMetric converts a user-supplied name into a Metric. It accepts the
// canonical names plus the common aliases seen in sensor exports.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "power", "speed":
		return MetricPower, nil
	case "spin", "rpm":
		return MetricSpin, nil
	case "nose", "nose_angle":
		return MetricNose, nil
	case "wobble", "oat", "offaxis":
		return MetricWobble, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}
