// Package diagnosis turns session averages into an ordered list of coaching
// issues. Each rule is an independent threshold over one metric average;
// several rules may fire in the same run, and an empty result means the
// session is clear, which renderers surface as an explicit all-clear state.
package diagnosis

import (
	"fmt"
	"sort"

	"github.com/okian/throwbench/internal/domain/model"
)

// Rule priorities. Higher runs first in the report; the wobble rule has a
// severe and a mild tier and fires at most once.
const (
	priorityWobbleSevere = 100
	priorityNoseUp       = 90
	priorityLowSpin      = 70
	priorityWobbleMild   = 60
	priorityLowSpeed     = 40
)

// Trigger thresholds, expressed over session averages.
const (
	wobbleSevereAbove = 4.0
	wobbleMildAbove   = 3.0
	noseUpAbove       = 4.0
	spinFloorBelow    = 900.0
	speedFloorBelow   = 50.0
)

// Issue is one triggered coaching diagnosis.
type Issue struct {
	Metric   model.Metric `json:"metric"`
	Priority int          `json:"priority"`
	Headline string       `json:"headline"`
	Detail   string       `json:"detail"`
	Value    float64      `json:"value"`
	Unit     string       `json:"unit"`
	Goal     string       `json:"goal"`
}

// Diagnose evaluates every rule against the session averages and returns the
// triggered issues sorted by descending priority. The sort is stable, so
// equal priorities keep rule-declaration order. A rule whose average is
// absent never fires; absence is not coerced to zero, which is why the spin
// and speed rules still carry an explicit positive guard.
func Diagnose(avg model.Averages) []Issue {
	var issues []Issue

	if v, ok := avg.Wobble.Value(); ok {
		switch {
		case v > wobbleSevereAbove:
			issues = append(issues, Issue{
				Metric:   model.MetricWobble,
				Priority: priorityWobbleSevere,
				Headline: "Severe off-axis wobble",
				Detail:   fmt.Sprintf("Average wobble of %.1f° is costing both distance and accuracy. Prioritize clean, flat releases before anything else.", v),
				Value:    v,
				Unit:     model.MetricWobble.Unit(),
				Goal:     model.MetricWobble.GoalLabel(),
			})
		case v > wobbleMildAbove:
			issues = append(issues, Issue{
				Metric:   model.MetricWobble,
				Priority: priorityWobbleMild,
				Headline: "Noticeable off-axis wobble",
				Detail:   fmt.Sprintf("Average wobble of %.1f° is washing out your lines. Smooth the pull-through and keep the disc flat at the hit.", v),
				Value:    v,
				Unit:     model.MetricWobble.Unit(),
				Goal:     model.MetricWobble.GoalLabel(),
			})
		}
	}

	if v, ok := avg.Nose.Value(); ok && v > noseUpAbove {
		issues = append(issues, Issue{
			Metric:   model.MetricNose,
			Priority: priorityNoseUp,
			Headline: "Nose-up release",
			Detail:   fmt.Sprintf("Average nose angle of %.1f° bleeds speed into lift and stalls the flight. Work on driving the nose down through the release.", v),
			Value:    v,
			Unit:     model.MetricNose.Unit(),
			Goal:     model.MetricNose.GoalLabel(),
		})
	}

	if v, ok := avg.Spin.Value(); ok && v > 0 && v < spinFloorBelow {
		issues = append(issues, Issue{
			Metric:   model.MetricSpin,
			Priority: priorityLowSpin,
			Headline: "Low spin rate",
			Detail:   fmt.Sprintf("Average spin of %.0f rpm is under the floor for stable flight. Snap the release harder; spin is what keeps the disc on line.", v),
			Value:    v,
			Unit:     model.MetricSpin.Unit(),
			Goal:     model.MetricSpin.GoalLabel(),
		})
	}

	if v, ok := avg.Speed.Value(); ok && v > 0 && v < speedFloorBelow {
		issues = append(issues, Issue{
			Metric:   model.MetricPower,
			Priority: priorityLowSpeed,
			Headline: "Limited arm speed",
			Detail:   fmt.Sprintf("Average speed of %.1f mph caps your distance ceiling. Timing and weight-shift drills will buy more than muscling it.", v),
			Value:    v,
			Unit:     model.MetricPower.Unit(),
			Goal:     model.MetricPower.GoalLabel(),
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Priority > issues[j].Priority
	})
	return issues
}
