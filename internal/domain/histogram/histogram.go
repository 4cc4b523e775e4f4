// Package histogram buckets metric values into equal-width bins for
// display. The binning itself is generic; the display range applied to a
// metric is policy, padded from the observed data and clamped to sane
// per-metric bounds so a single wild outlier cannot blow out the scale.
package histogram

import (
	"math"

	"github.com/okian/throwbench/internal/domain/model"
)

const (
	// padFraction widens the observed data span by 8% on each side.
	padFraction = 0.08
	// singlePointPad is the absolute pad applied when the data span is a
	// single point, so the lone bucket still renders with width.
	singlePointPad = 1.0
)

// Range is the resolved display interval for one metric's histogram.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Counts buckets values into bins equal-width buckets across [min, max].
// Values outside the interval land in the edge buckets rather than being
// dropped. A degenerate interval (max <= min) yields all-zero counts, and
// a non-positive bin count yields nil. For max > min the counts always sum
// to len(values).
func Counts(values []float64, bins int, min, max float64) []int {
	if bins <= 0 {
		return nil
	}

	counts := make([]int, bins)
	if max <= min {
		return counts
	}

	span := max - min
	for _, v := range values {
		idx := int(math.Floor((v - min) / span * float64(bins)))
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return counts
}

// DisplayRange resolves the interval a metric's histogram is drawn over:
// the observed min/max padded by 8% of the span (an absolute 1-unit pad
// when all values coincide), clamped to the metric's sane display bounds.
// With no values at all the full sane bounds are returned.
func DisplayRange(m model.Metric, values []float64) Range {
	lo, hi := saneBounds(m)
	if len(values) == 0 {
		return Range{Min: lo, Max: hi}
	}

	dataMin, dataMax := values[0], values[0]
	for _, v := range values[1:] {
		if v < dataMin {
			dataMin = v
		}
		if v > dataMax {
			dataMax = v
		}
	}

	pad := (dataMax - dataMin) * padFraction
	if pad == 0 {
		pad = singlePointPad
	}

	r := Range{Min: dataMin - pad, Max: dataMax + pad}
	if r.Min < lo {
		r.Min = lo
	}
	if r.Max > hi {
		r.Max = hi
	}
	return r
}

// saneBounds returns the hard display clamp for m.
func saneBounds(m model.Metric) (float64, float64) {
	switch m {
	case model.MetricSpin:
		return 300, 1300
	case model.MetricPower:
		return 20, 75
	case model.MetricNose:
		return -10, 18
	case model.MetricWobble:
		return 0, 12
	default:
		return 0, 1
	}
}
