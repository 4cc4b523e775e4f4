// Package stats aggregates a session of throws into the summary the rest of
// the analyzer consumes: usable-throw count, per-metric mean and sample
// standard deviation, and the session's best speed and spin. A summary is
// derived on demand and never stored.
package stats

import (
	"math"

	"github.com/okian/throwbench/internal/domain/model"
)

// MetricStats is the aggregate for one metric over the throws that carry it.
// N may differ across metrics within the same session; a sensor that reports
// only spin still contributes a full spin sample. SD is absent (not zero)
// when fewer than two throws carry the metric.
type MetricStats struct {
	Mean model.Number `json:"mean"`
	SD   model.Number `json:"sd"`
	N    int          `json:"n"`
}

// Summary is the derived aggregate for one session.
type Summary struct {
	Throws    int          `json:"throws"`
	Usable    int          `json:"usable"`
	Speed     MetricStats  `json:"speed"`
	Spin      MetricStats  `json:"spin"`
	Nose      MetricStats  `json:"nose"`
	Wobble    MetricStats  `json:"wobble"`
	BestSpeed model.Number `json:"bestSpeed"`
	BestSpin  model.Number `json:"bestSpin"`
}

// Metric returns the aggregate for m. Power reads the speed aggregate.
func (s Summary) Metric(m model.Metric) MetricStats {
	switch m {
	case model.MetricPower:
		return s.Speed
	case model.MetricSpin:
		return s.Spin
	case model.MetricNose:
		return s.Nose
	case model.MetricWobble:
		return s.Wobble
	default:
		return MetricStats{}
	}
}

// Averages projects the per-metric means into the shape the band classifier
// and diagnosis engine consume.
func (s Summary) Averages() model.Averages {
	return model.Averages{
		Speed:  s.Speed.Mean,
		Spin:   s.Spin.Mean,
		Nose:   s.Nose.Mean,
		Wobble: s.Wobble.Mean,
	}
}

// Summarize aggregates throws into a Summary. An empty or all-absent input
// is fine: counts are zero and every mean, SD, and best value comes back
// absent rather than zero.
func Summarize(throws []model.Throw) Summary {
	s := Summary{Throws: len(throws)}

	var speed, spin, nose, wobble []float64
	for _, t := range throws {
		if t.Usable() {
			s.Usable++
		}
		speed = appendValid(speed, t.Speed)
		spin = appendValid(spin, t.Spin)
		nose = appendValid(nose, t.Nose)
		wobble = appendValid(wobble, t.Wobble)
	}

	s.Speed = metricStats(speed)
	s.Spin = metricStats(spin)
	s.Nose = metricStats(nose)
	s.Wobble = metricStats(wobble)
	s.BestSpeed = maxOf(speed)
	s.BestSpin = maxOf(spin)
	return s
}

func appendValid(dst []float64, n model.Number) []float64 {
	if v, ok := n.Value(); ok {
		dst = append(dst, v)
	}
	return dst
}

// metricStats computes mean and sample standard deviation over values.
// The SD divides by n-1 and is therefore undefined for n < 2; that is
// reported as absence, never as zero variance.
func metricStats(values []float64) MetricStats {
	n := len(values)
	if n == 0 {
		return MetricStats{Mean: model.None(), SD: model.None()}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	if n < 2 {
		return MetricStats{Mean: model.Some(mean), SD: model.None(), N: n}
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(n-1))
	return MetricStats{Mean: model.Some(mean), SD: model.Some(sd), N: n}
}

func maxOf(values []float64) model.Number {
	if len(values) == 0 {
		return model.None()
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return model.Some(best)
}
