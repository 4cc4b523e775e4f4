// Package rank locates an observed session aggregate inside a sorted
// reference population and reports it as an integer percentile in [0,100].
// Everything here is pure order statistics: no state, no side effects.
package rank

import (
	"math"
	"sort"

	"github.com/okian/throwbench/internal/domain/model"
)

const percentScale = 100

// PercentileOf returns the percentile of value against sortedAsc.
// A binary search finds the count of population entries not exceeding
// value (ties at the exact value are counted); the resulting fraction maps
// to fraction*100 when higher values are better and (1-fraction)*100 when
// lower values are better. ok is false for an empty population.
//
// The mapping is monotonic: raising value never lowers the percentile when
// higherIsBetter, and never raises it otherwise. A value below every entry
// scores 0 (or 100 when lower is better); a value at or above the maximum
// scores 100 (or 0).
func PercentileOf(value float64, sortedAsc []float64, higherIsBetter bool) (int, bool) {
	n := len(sortedAsc)
	if n == 0 {
		return 0, false
	}

	// First index strictly greater than value == count of entries <= value.
	count := sort.Search(n, func(i int) bool { return sortedAsc[i] > value })
	fraction := float64(count) / float64(n)
	if !higherIsBetter {
		fraction = 1 - fraction
	}
	return int(fraction * percentScale), true
}

// NearestTarget ranks value by its absolute distance from target: every
// population member is mapped to |member-target|, the distances are sorted
// ascending, and the observed |value-target| is ranked with lower distance
// treated as better. Used for nose angle, where goodness is proximity to
// the target rather than a monotonic extreme.
func NearestTarget(value float64, population []float64, target float64) (int, bool) {
	if len(population) == 0 {
		return 0, false
	}

	distances := make([]float64, len(population))
	for i, v := range population {
		distances[i] = math.Abs(v - target)
	}
	sort.Float64s(distances)

	return PercentileOf(math.Abs(value-target), distances, false)
}

// Percentile ranks a metric's session average against the metric's sorted
// reference array, honoring the metric's polarity. An absent average or an
// empty population yields ok=false; absence never coerces to 0.
func Percentile(m model.Metric, avg model.Number, sortedAsc []float64) (int, bool) {
	value, valid := avg.Value()
	if !valid {
		return 0, false
	}

	switch m.Goodness() {
	case model.NearestTarget:
		return NearestTarget(value, sortedAsc, model.NoseTarget)
	case model.LowerIsBetter:
		return PercentileOf(value, sortedAsc, false)
	default:
		return PercentileOf(value, sortedAsc, true)
	}
}
