// Package band classifies a single metric average into a three-level skill
// band with a qualitative note and a normalized quality score. Classification
// is a pure threshold table over the aggregate value, never the raw sample.
package band

import (
	"github.com/okian/throwbench/internal/domain/model"
)

// Band is a coarse skill level derived from one metric average.
type Band string

// Skill bands, ordered from least to most developed.
const (
	Beginner     Band = "Beginner"
	Intermediate Band = "Intermediate"
	Advanced     Band = "Advanced"
)

// Classification thresholds. Wobble and nose are degrees, spin is rpm,
// power is mph. The nose branches overlap by construction and are evaluated
// strictly top to bottom; reordering them changes the classification policy.
const (
	wobbleAdvancedBelow     = 3.0
	wobbleIntermediateBelow = 4.5

	noseIdealMin = 1.0
	noseIdealMax = 3.0
	noseMildMax  = 5.0

	spinAdvancedAt     = 1100.0
	spinIntermediateAt = 950.0

	powerAdvancedAt     = 60.0
	powerIntermediateAt = 52.0
)

// Result is one metric's classification. NoData marks the display fallback
// produced for an absent average so consumers can tell it apart from a
// genuine Beginner rating.
type Result struct {
	Band   Band    `json:"band"`
	Note   string  `json:"note"`
	Score  float64 `json:"score"`
	NoData bool    `json:"noData,omitempty"`
}

// For classifies the average value of metric m. An absent value yields the
// Beginner/"No data"/0 fallback with NoData set; it never reaches the
// threshold tables.
func For(m model.Metric, value model.Number) Result {
	v, ok := value.Value()
	if !ok {
		return Result{Band: Beginner, Note: "No data", Score: 0, NoData: true}
	}

	switch m {
	case model.MetricWobble:
		return wobbleBand(v)
	case model.MetricNose:
		return noseBand(v)
	case model.MetricSpin:
		return spinBand(v)
	case model.MetricPower:
		return powerBand(v)
	default:
		return Result{Band: Beginner, Note: "No data", Score: 0, NoData: true}
	}
}

func wobbleBand(v float64) Result {
	switch {
	case v < wobbleAdvancedBelow:
		return Result{Band: Advanced, Note: "Clean release with minimal off-axis wobble", Score: 0.9}
	case v < wobbleIntermediateBelow:
		return Result{Band: Intermediate, Note: "Some wobble; tighten the grip and release", Score: 0.6}
	default:
		return Result{Band: Beginner, Note: "Heavy wobble; work on a flat, smooth release", Score: 0.25}
	}
}

// noseBand is an ordered decision list. The documented ranges are not a
// clean partition: exactly 1 degree satisfies both the ideal window and the
// near-neutral branch, so the ideal window wins by evaluation order.
func noseBand(v float64) Result {
	switch {
	case v >= noseIdealMin && v <= noseIdealMax:
		return Result{Band: Advanced, Note: "Nose angle in the ideal window", Score: 0.9}
	case v > noseIdealMax && v <= noseMildMax:
		return Result{Band: Intermediate, Note: "Slightly nose-up; distance is leaking", Score: 0.55}
	case v > noseMildMax:
		return Result{Band: Beginner, Note: "Nose-up release; drive the nose down through the hit", Score: 0.2}
	case v > 0:
		return Result{Band: Intermediate, Note: "Near neutral; a touch more nose-down would help", Score: 0.65}
	default:
		return Result{Band: Intermediate, Note: "Neutral to nose-down; watch the negative angle", Score: 0.6}
	}
}

func spinBand(v float64) Result {
	switch {
	case v >= spinAdvancedAt:
		return Result{Band: Advanced, Note: "Strong spin; the disc will hold its line", Score: 0.9}
	case v >= spinIntermediateAt:
		return Result{Band: Intermediate, Note: "Solid spin for controlled fairway flights", Score: 0.65}
	default:
		return Result{Band: Beginner, Note: "Low spin; work on a snappier release", Score: 0.3}
	}
}

func powerBand(v float64) Result {
	switch {
	case v >= powerAdvancedAt:
		return Result{Band: Advanced, Note: "Big arm speed; full-distance territory", Score: 0.9}
	case v >= powerIntermediateAt:
		return Result{Band: Intermediate, Note: "Good speed for most fairway shots", Score: 0.65}
	default:
		return Result{Band: Beginner, Note: "Developing speed; form first, then power", Score: 0.35}
	}
}
