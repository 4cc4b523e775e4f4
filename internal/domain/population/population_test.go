package population_test

import (
	"sort"
	"testing"

	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/internal/domain/population"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate_Reproducibility(t *testing.T) {
	Convey("Given a seed and a sample count", t, func() {
		Convey("When generating twice with identical inputs", func() {
			a := population.Generate(500, 42)
			b := population.Generate(500, 42)

			Convey("Then every array should match exactly", func() {
				for _, m := range model.AllMetrics() {
					av, bv := a.Values(m), b.Values(m)
					So(len(av), ShouldEqual, len(bv))
					for i := range av {
						So(av[i], ShouldEqual, bv[i])
					}
				}
			})
		})

		Convey("When generating with a different seed", func() {
			a := population.Generate(500, 42)
			b := population.Generate(500, 43)

			Convey("Then the populations should differ", func() {
				av, bv := a.Values(model.MetricSpin), b.Values(model.MetricSpin)
				same := 0
				for i := range av {
					if av[i] == bv[i] {
						same++
					}
				}
				So(same, ShouldBeLessThan, len(av))
			})
		})
	})
}

func TestGenerate_SortedViews(t *testing.T) {
	Convey("Given a generated population", t, func() {
		p := population.Generate(800, 7)

		Convey("Then each sorted view should be a non-decreasing permutation of its array", func() {
			for _, m := range model.AllMetrics() {
				values := p.Values(m)
				sorted := p.Sorted(m)

				So(len(sorted), ShouldEqual, len(values))
				So(sort.Float64sAreSorted(sorted), ShouldBeTrue)

				// Same multiset: independently sorting the raw array must
				// reproduce the view element for element.
				check := append([]float64(nil), values...)
				sort.Float64s(check)
				for i := range check {
					So(sorted[i], ShouldEqual, check[i])
				}
			}
		})
	})
}

func TestGenerate_Plausibility(t *testing.T) {
	Convey("Given a generated population", t, func() {
		p := population.Generate(2000, 42)

		Convey("Then every sample should sit inside its clamp range", func() {
			ranges := map[model.Metric][2]float64{
				model.MetricPower:  {25, 68},
				model.MetricWobble: {0.8, 11},
				model.MetricNose:   {-6, 14},
				model.MetricSpin:   {350, 1250},
			}
			for m, r := range ranges {
				for _, v := range p.Values(m) {
					So(v, ShouldBeGreaterThanOrEqualTo, r[0])
					So(v, ShouldBeLessThanOrEqualTo, r[1])
				}
			}
		})

		Convey("Then the medians should land near the documented centers", func() {
			median := func(m model.Metric) float64 {
				s := p.Sorted(m)
				return s[len(s)/2]
			}
			So(median(model.MetricPower), ShouldAlmostEqual, 47, 2)
			So(median(model.MetricSpin), ShouldAlmostEqual, 950, 40)
			So(median(model.MetricNose), ShouldAlmostEqual, 2.4, 1)
			So(median(model.MetricWobble), ShouldAlmostEqual, 5, 1)
		})

		Convey("Then speed and spin should be positively correlated", func() {
			speed, spin := p.Values(model.MetricPower), p.Values(model.MetricSpin)

			var sumX, sumY float64
			for i := range speed {
				sumX += speed[i]
				sumY += spin[i]
			}
			meanX := sumX / float64(len(speed))
			meanY := sumY / float64(len(spin))

			var cov float64
			for i := range speed {
				cov += (speed[i] - meanX) * (spin[i] - meanY)
			}
			So(cov, ShouldBeGreaterThan, 0)
		})
	})
}

func TestGenerate_Degenerate(t *testing.T) {
	Convey("Given degenerate sample counts", t, func() {
		Convey("When generating zero samples", func() {
			p := population.Generate(0, 1)

			Convey("Then all arrays should be empty but well-formed", func() {
				So(p.Size(), ShouldEqual, 0)
				for _, m := range model.AllMetrics() {
					So(len(p.Values(m)), ShouldEqual, 0)
					So(len(p.Sorted(m)), ShouldEqual, 0)
				}
			})
		})

		Convey("When generating a negative count", func() {
			p := population.Generate(-5, 1)

			Convey("Then it should be treated as zero", func() {
				So(p.Size(), ShouldEqual, 0)
			})
		})

		Convey("When generating a single sample", func() {
			p := population.Generate(1, 9)

			Convey("Then the sorted view should equal the array", func() {
				So(p.Size(), ShouldEqual, 1)
				So(p.Sorted(model.MetricSpin)[0], ShouldEqual, p.Values(model.MetricSpin)[0])
			})
		})
	})
}
