package analyzer

import (
	"time"

	"github.com/okian/throwbench/internal/adapters/catalog"
	"github.com/okian/throwbench/internal/domain/band"
	"github.com/okian/throwbench/internal/domain/diagnosis"
	"github.com/okian/throwbench/internal/domain/model"
)

// Histogram is the population distribution for one metric, bucketed over the
// display range, with the session mean carried alongside so renderers can
// draw the "you are here" marker.
type Histogram struct {
	Bins        int          `json:"bins"`
	Min         float64      `json:"min"`
	Max         float64      `json:"max"`
	Counts      []int        `json:"counts"`
	SessionMean model.Number `json:"sessionMean"`
}

// MetricReport is the full analysis result for a single metric: session
// aggregates, the percentile against the reference population, the skill
// band, and the population histogram. Percentile is nil when the session
// carries no data for the metric; the absence is preserved, never rendered
// as a zero.
type MetricReport struct {
	Metric     model.Metric `json:"metric"`
	Label      string       `json:"label"`
	Unit       string       `json:"unit"`
	Mean       model.Number `json:"mean"`
	SD         model.Number `json:"sd"`
	Best       model.Number `json:"best"`
	N          int          `json:"n"`
	Percentile *int         `json:"percentile"`
	Band       band.Result  `json:"band"`
	Histogram  Histogram    `json:"histogram"`
}

// Issue is a triggered diagnosis together with the coaching resources that
// address it.
type Issue struct {
	diagnosis.Issue

	Resources []catalog.Resource `json:"resources,omitempty"`
}

// Report is the complete output of analyzing one session.
//
// AllClear is true only when the diagnosis ran over actual data and found
// nothing: a session with no usable throws has an empty issue list too, but
// that is "no data", not "all clear", and renderers must not congratulate it.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Source      string    `json:"source"`

	Seed    uint32 `json:"seed"`
	Samples int    `json:"samples"`

	Throws     int `json:"throws"`
	Usable     int `json:"usable"`
	Duplicates int `json:"duplicates"`

	Metrics  []MetricReport `json:"metrics"`
	Issues   []Issue        `json:"issues"`
	AllClear bool           `json:"allClear"`
}
