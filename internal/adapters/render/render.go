// Package render turns an analysis report into one of the supported output
// formats: a colored terminal report, machine-readable JSON, or an HTML page
// of population charts. Renderers only read the report; all analysis happens
// upstream.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	analyzer "github.com/okian/throwbench/internal/app"
	"github.com/okian/throwbench/internal/domain/model"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// Renderer writes a report to w in one concrete format.
type Renderer func(w io.Writer, report *analyzer.Report) error

// ByFormat returns the renderer registered under format.
func ByFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		return Text, nil
	case FormatJSON:
		return JSON, nil
	case FormatHTML:
		return HTML, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Formats lists the supported format names in display order.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatHTML}
}

const missingValue = "n/a"

// precisionFor returns the decimal places a metric's values are shown with.
// Spin runs in the hundreds of rpm; tenths would be noise.
func precisionFor(m model.Metric) int {
	if m == model.MetricSpin {
		return 0
	}
	return 1
}

// valueWithUnit formats a measured value with its unit. Degree signs attach
// directly; word units get a space.
func valueWithUnit(v float64, unit string, precision int) string {
	if unit == "°" {
		return fmt.Sprintf("%.*f°", precision, v)
	}
	return fmt.Sprintf("%.*f %s", precision, v, unit)
}

// numberCell formats an optional value for table display, without a unit.
func numberCell(n model.Number, precision int) string {
	v, ok := n.Value()
	if !ok {
		return missingValue
	}
	return fmt.Sprintf("%.*f", precision, v)
}

// ordinal renders n as an English ordinal: 1st, 2nd, 63rd, 111th.
func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// markerBucket returns the histogram bucket holding the session mean, or -1
// when there is no mean to mark. Means outside the display range clamp to
// the edge buckets, mirroring how the counts themselves are bucketed.
func markerBucket(h analyzer.Histogram) int {
	v, ok := h.SessionMean.Value()
	bins := len(h.Counts)
	if !ok || bins == 0 || h.Max <= h.Min {
		return -1
	}

	idx := int(math.Floor((v - h.Min) / (h.Max - h.Min) * float64(bins)))
	if idx < 0 {
		idx = 0
	}
	if idx >= bins {
		idx = bins - 1
	}
	return idx
}
