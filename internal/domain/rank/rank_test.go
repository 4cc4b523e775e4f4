package rank_test

import (
	"testing"

	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPercentileOf(t *testing.T) {
	Convey("Given a sorted reference population", t, func() {
		sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

		Convey("When higher values are better", func() {
			Convey("Then a value below every entry ranks at 0", func() {
				p, ok := rank.PercentileOf(0.5, sorted, true)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 0)
			})

			Convey("Then a value at the maximum ranks at 100", func() {
				p, ok := rank.PercentileOf(10, sorted, true)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 100)
			})

			Convey("Then a value above the maximum ranks at 100", func() {
				p, ok := rank.PercentileOf(42, sorted, true)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 100)
			})

			Convey("Then a mid value counts the entries at or below it", func() {
				p, ok := rank.PercentileOf(5, sorted, true)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 50)

				p, ok = rank.PercentileOf(5.5, sorted, true)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 50)
			})

			Convey("Then increasing the value never decreases the percentile", func() {
				prev := -1
				for v := 0.0; v <= 11; v += 0.25 {
					p, ok := rank.PercentileOf(v, sorted, true)
					So(ok, ShouldBeTrue)
					So(p, ShouldBeGreaterThanOrEqualTo, prev)
					prev = p
				}
			})
		})

		Convey("When lower values are better", func() {
			Convey("Then a value below every entry ranks at 100", func() {
				p, ok := rank.PercentileOf(0.5, sorted, false)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 100)
			})

			Convey("Then a value at the maximum ranks at 0", func() {
				p, ok := rank.PercentileOf(10, sorted, false)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 0)
			})

			Convey("Then matching the minimum still ranks near the top", func() {
				p, ok := rank.PercentileOf(1, sorted, false)
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 90)
			})

			Convey("Then increasing the value never increases the percentile", func() {
				prev := 101
				for v := 0.0; v <= 11; v += 0.25 {
					p, ok := rank.PercentileOf(v, sorted, false)
					So(ok, ShouldBeTrue)
					So(p, ShouldBeLessThanOrEqualTo, prev)
					prev = p
				}
			})
		})

		Convey("When the population is empty", func() {
			_, ok := rank.PercentileOf(5, nil, true)

			Convey("Then no percentile is produced", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestNearestTarget(t *testing.T) {
	Convey("Given a population ranked by distance to a target", t, func() {
		pop := []float64{0, 1, 2, 3, 4}

		Convey("When the value sits exactly on the target", func() {
			p, ok := rank.NearestTarget(2, pop, 2)

			Convey("Then only the equally-close entries outrank it", func() {
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 80)
			})
		})

		Convey("When the value is farther than everyone", func() {
			p, ok := rank.NearestTarget(9, pop, 2)
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, 0)
		})

		Convey("When moving away from the target on either side", func() {
			Convey("Then the percentile should fall symmetrically", func() {
				above, ok := rank.NearestTarget(3, pop, 2)
				So(ok, ShouldBeTrue)
				below, ok := rank.NearestTarget(1, pop, 2)
				So(ok, ShouldBeTrue)
				So(above, ShouldEqual, below)
			})
		})

		Convey("When the population is empty", func() {
			_, ok := rank.NearestTarget(2, nil, 2)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestPercentile_Metric(t *testing.T) {
	Convey("Given metric-aware percentile lookup", t, func() {
		Convey("When ranking spin (higher is better)", func() {
			sorted := []float64{800, 900, 1000, 1100}
			p, ok := rank.Percentile(model.MetricSpin, model.Some(1000), sorted)

			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, 75)
		})

		Convey("When ranking wobble (lower is better)", func() {
			sorted := []float64{2, 3, 4, 5}
			p, ok := rank.Percentile(model.MetricWobble, model.Some(2), sorted)

			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, 75)
		})

		Convey("When ranking nose (nearest the ideal angle)", func() {
			sorted := []float64{-2, 0, 2, 4, 6}
			p, ok := rank.Percentile(model.MetricNose, model.Some(2), sorted)

			Convey("Then sitting on the target beats every off-target entry", func() {
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 80)
			})
		})

		Convey("When the average is absent", func() {
			_, ok := rank.Percentile(model.MetricSpin, model.None(), []float64{1, 2, 3})

			Convey("Then absence propagates instead of ranking a phantom zero", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
