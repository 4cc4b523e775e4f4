package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/throwbench/internal/adapters/ingest"
	"github.com/okian/throwbench/internal/adapters/render"
	analyzer "github.com/okian/throwbench/internal/app"
	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/pkg/logger"
)

func init() {
	logger.Init()
	color.NoColor = true
}

func throwOf(speed, spin, nose, wobble float64) model.Throw {
	return model.Throw{
		Speed:  model.Some(speed),
		Spin:   model.Some(spin),
		Nose:   model.Some(nose),
		Wobble: model.Some(wobble),
	}
}

func reportFor(t *testing.T, source string, throws ...model.Throw) *analyzer.Report {
	t.Helper()

	report, err := analyzer.New().Analyze(context.Background(), ingest.Session{
		Source: source,
		Throws: throws,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return report
}

func TestTextRenderer(t *testing.T) {
	Convey("Given a clean session report", t, func() {
		report := reportFor(t, "healthy.csv",
			throwOf(60, 1130, 1.8, 1.8),
			throwOf(62, 1150, 2.0, 2.0),
			throwOf(64, 1170, 2.2, 2.2),
		)

		Convey("When rendered as text", func() {
			var buf bytes.Buffer
			err := render.Text(&buf, report)
			So(err, ShouldBeNil)
			out := buf.String()

			Convey("Then the report layout is complete", func() {
				So(out, ShouldContainSubstring, "Throw quality report: healthy.csv")
				So(out, ShouldContainSubstring, "600 synthetic throwers, seed 42")
				So(out, ShouldContainSubstring, "Arm power")
				So(out, ShouldContainSubstring, "Spin rate")
				So(out, ShouldContainSubstring, "Nose angle")
				So(out, ShouldContainSubstring, "Off-axis wobble")
				So(out, ShouldContainSubstring, "Advanced")
			})

			Convey("Then the all-clear state is explicit", func() {
				So(out, ShouldContainSubstring, "All clear.")
				So(out, ShouldNotContainSubstring, "Diagnosed issues")
			})

			Convey("Then each metric row carries a sparkline", func() {
				So(strings.Count(out, "▁"), ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given a session that trips every rule", t, func() {
		report := reportFor(t, "struggling.csv",
			throwOf(43, 800, 5.5, 5.0),
			throwOf(44, 820, 6.0, 5.2),
			throwOf(45, 840, 6.5, 5.4),
		)

		Convey("When rendered as text", func() {
			var buf bytes.Buffer
			So(render.Text(&buf, report), ShouldBeNil)
			out := buf.String()

			Convey("Then issues are listed with coaching material", func() {
				So(out, ShouldContainSubstring, "Diagnosed issues")
				So(out, ShouldContainSubstring, "Severe off-axis wobble")
				So(out, ShouldContainSubstring, "Nose-up release")
				So(out, ShouldContainSubstring, "Low spin rate")
				So(out, ShouldContainSubstring, "Limited arm speed")
				So(out, ShouldContainSubstring, "goal under 3°")
				So(out, ShouldContainSubstring, "https://")
				So(out, ShouldNotContainSubstring, "All clear.")
			})
		})
	})

	Convey("Given a report with no throw data", t, func() {
		report := reportFor(t, "empty.csv")

		Convey("When rendered as text", func() {
			var buf bytes.Buffer
			So(render.Text(&buf, report), ShouldBeNil)
			out := buf.String()

			Convey("Then absence is distinguished from all clear", func() {
				So(out, ShouldContainSubstring, "No usable throw data.")
				So(out, ShouldNotContainSubstring, "All clear.")
				So(out, ShouldContainSubstring, "n/a")
				So(out, ShouldContainSubstring, "no data")
			})
		})
	})
}

func TestJSONRenderer(t *testing.T) {
	Convey("Given a clean session report", t, func() {
		report := reportFor(t, "healthy.csv",
			throwOf(60, 1130, 1.8, 1.8),
			throwOf(62, 1150, 2.0, 2.0),
		)

		Convey("When rendered as JSON", func() {
			var buf bytes.Buffer
			So(render.JSON(&buf, report), ShouldBeNil)

			Convey("Then the document decodes with its full shape", func() {
				var decoded map[string]any
				So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
				So(decoded["source"], ShouldEqual, "healthy.csv")
				So(decoded["allClear"], ShouldEqual, true)

				ms, ok := decoded["metrics"].([]any)
				So(ok, ShouldBeTrue)
				So(len(ms), ShouldEqual, 4)
			})

			Convey("Then the document round-trips into the report type", func() {
				var back analyzer.Report
				So(json.Unmarshal(buf.Bytes(), &back), ShouldBeNil)
				So(back.Source, ShouldEqual, report.Source)
				So(back.Samples, ShouldEqual, report.Samples)
				So(len(back.Metrics), ShouldEqual, len(report.Metrics))
			})
		})
	})

	Convey("Given a report with no throw data", t, func() {
		report := reportFor(t, "empty.csv")

		Convey("When rendered as JSON", func() {
			var buf bytes.Buffer
			So(render.JSON(&buf, report), ShouldBeNil)

			Convey("Then absent percentiles and means are null, not zero", func() {
				var decoded struct {
					Metrics []struct {
						Mean       *float64 `json:"mean"`
						Percentile *int     `json:"percentile"`
					} `json:"metrics"`
					AllClear bool `json:"allClear"`
				}
				So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
				So(decoded.AllClear, ShouldBeFalse)
				for _, m := range decoded.Metrics {
					So(m.Mean, ShouldBeNil)
					So(m.Percentile, ShouldBeNil)
				}
			})
		})
	})
}

func TestHTMLRenderer(t *testing.T) {
	Convey("Given a clean session report", t, func() {
		report := reportFor(t, "healthy.csv",
			throwOf(60, 1130, 1.8, 1.8),
			throwOf(62, 1150, 2.0, 2.0),
		)

		Convey("When rendered as HTML", func() {
			var buf bytes.Buffer
			So(render.HTML(&buf, report), ShouldBeNil)
			out := buf.String()

			Convey("Then a chart page is produced for every metric", func() {
				So(out, ShouldContainSubstring, "<html")
				So(out, ShouldContainSubstring, "Throwbench session report")
				So(out, ShouldContainSubstring, "Arm power")
				So(out, ShouldContainSubstring, "Spin rate")
				So(out, ShouldContainSubstring, "Nose angle")
				So(out, ShouldContainSubstring, "Off-axis wobble")
			})

			Convey("Then the session bucket is highlighted", func() {
				So(out, ShouldContainSubstring, "#ee6666")
				So(out, ShouldContainSubstring, "percentile")
			})
		})
	})

	Convey("Given a report with no throw data", t, func() {
		report := reportFor(t, "empty.csv")

		Convey("When rendered as HTML", func() {
			var buf bytes.Buffer
			So(render.HTML(&buf, report), ShouldBeNil)

			Convey("Then charts render without a session marker", func() {
				So(buf.String(), ShouldContainSubstring, "no session data for this metric")
			})
		})
	})
}

func TestByFormat(t *testing.T) {
	Convey("Given the format registry", t, func() {
		Convey("When known formats are requested", func() {
			for _, format := range render.Formats() {
				r, err := render.ByFormat(format)
				So(err, ShouldBeNil)
				So(r, ShouldNotBeNil)
			}
		})

		Convey("When casing and padding vary", func() {
			r, err := render.ByFormat("  JSON ")
			So(err, ShouldBeNil)
			So(r, ShouldNotBeNil)
		})

		Convey("When an unknown format is requested", func() {
			r, err := render.ByFormat("xml")
			So(r, ShouldBeNil)
			So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
		})
	})
}
