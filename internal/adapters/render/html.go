package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	analyzer "github.com/okian/throwbench/internal/app"
	"github.com/okian/throwbench/pkg/metrics"
)

const (
	chartWidth  = "900px"
	chartHeight = "420px"
	labelRotate = 45

	populationColor = "#5470c6"
	sessionColor    = "#ee6666"
)

// HTML writes a standalone page with one population bar chart per metric.
// The bucket holding the session mean is drawn in a contrasting color, and
// each chart's subtitle carries the session mean, percentile, and band.
func HTML(w io.Writer, report *analyzer.Report) error {
	return HTMLAll(w, []*analyzer.Report{report})
}

// HTMLAll writes a single page holding every report's charts. With more
// than one report the chart titles carry the session source, so a combined
// page from a batch run stays readable.
func HTMLAll(w io.Writer, reports []*analyzer.Report) error {
	page := components.NewPage()
	page.PageTitle = "Throwbench session report"
	page.SetLayout(components.PageCenterLayout)

	for _, report := range reports {
		for _, mr := range report.Metrics {
			title := mr.Label
			if len(reports) > 1 {
				title = report.Source + ": " + mr.Label
			}
			page.AddCharts(metricChart(mr, title))
		}
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("%w: %v", ErrChartFailed, err)
	}

	metrics.RecordReportRendered(FormatHTML)
	return nil
}

func metricChart(mr analyzer.MetricReport, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: chartSubtitle(mr),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      mr.Unit,
			AxisLabel: &opts.AxisLabel{Rotate: labelRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "throwers"}),
	)

	labels, data := chartSeries(mr)
	bar.SetXAxis(labels)
	bar.AddSeries("population", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: populationColor}),
	)

	return bar
}

// chartSeries maps histogram buckets to bar entries labeled by bucket
// midpoint. The session-mean bucket overrides the series color.
func chartSeries(mr analyzer.MetricReport) ([]string, []opts.BarData) {
	h := mr.Histogram
	bins := len(h.Counts)
	if bins == 0 || h.Max <= h.Min {
		return nil, nil
	}

	width := (h.Max - h.Min) / float64(bins)
	marker := markerBucket(h)
	prec := precisionFor(mr.Metric)

	labels := make([]string, bins)
	data := make([]opts.BarData, bins)
	for i, c := range h.Counts {
		mid := h.Min + (float64(i)+0.5)*width
		labels[i] = strconv.FormatFloat(mid, 'f', prec, 64)
		data[i] = opts.BarData{Value: c}
		if i == marker {
			data[i].ItemStyle = &opts.ItemStyle{Color: sessionColor}
		}
	}

	return labels, data
}

func chartSubtitle(mr analyzer.MetricReport) string {
	v, ok := mr.Mean.Value()
	if !ok {
		return "no session data for this metric"
	}

	s := "session mean " + valueWithUnit(v, mr.Unit, precisionFor(mr.Metric))
	if mr.Percentile != nil {
		s += fmt.Sprintf(", %s percentile", ordinal(*mr.Percentile))
	}
	if !mr.Band.NoData {
		s += ", " + string(mr.Band.Band)
	}
	return s
}
