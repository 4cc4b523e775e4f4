// Package ingest reads throw sessions from sensor export files. It accepts
// CSV with a header row and JSON arrays of loosely-typed row objects, applies
// the numeric coercion policy (bad cells become absent values, never errors),
// and drops rows whose id was already seen in the same file. Only the file
// itself failing to parse is a real error.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/pkg/logger"
	"github.com/okian/throwbench/pkg/metrics"
)

// Session is one ingested file: the accepted throws in input order plus the
// duplicate-row count for reporting.
type Session struct {
	Source     string
	Throws     []model.Throw
	Duplicates int
}

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithLogger sets the logger used for per-row diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}

// Reader loads session files.
type Reader struct {
	log logger.Logger
}

// NewReader creates a session file reader with configuration options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}

	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		r.log = logger.Get()
	}

	return r
}

// ReadFile loads a session from path, dispatching on the file extension.
func (r *Reader) ReadFile(ctx context.Context, path string) (Session, error) {
	f, err := os.Open(path)
	if err != nil {
		metrics.RecordIngestionError()
		return Session{}, fmt.Errorf("open session file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return r.ReadCSV(ctx, f, path)
	case ".json":
		return r.ReadJSON(ctx, f, path)
	default:
		metrics.RecordIngestionError()
		return Session{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// row is the format-independent shape of one input record, after header
// aliasing and numeric coercion but before dedupe.
type row struct {
	id        string
	timeLabel string
	note      string
	types     []string
	speed     model.Number
	spin      model.Number
	nose      model.Number
	wobble    model.Number
	hyzer     model.Number
	launch    model.Number
}

// accept appends rw to the session unless its id repeats an earlier row.
// Sequence numbers are 1-based over accepted rows only.
func (r *Reader) accept(ctx context.Context, s *Session, seen map[string]struct{}, rw row) {
	if rw.id != "" {
		if _, dup := seen[rw.id]; dup {
			s.Duplicates++
			metrics.RecordRowDuplicate()
			r.log.Debug(ctx, "duplicate row dropped",
				logger.String("source", s.Source),
				logger.String("id", rw.id),
			)
			return
		}
		seen[rw.id] = struct{}{}
	}

	s.Throws = append(s.Throws, model.Throw{
		Seq:       len(s.Throws) + 1,
		ID:        rw.id,
		TimeLabel: rw.timeLabel,
		Speed:     rw.speed,
		Spin:      rw.spin,
		Nose:      rw.nose,
		Wobble:    rw.wobble,
		Hyzer:     rw.hyzer,
		Launch:    rw.launch,
		Types:     rw.types,
		Note:      rw.note,
	})
}

// finish logs the per-file summary and records ingestion metrics.
func (r *Reader) finish(ctx context.Context, s *Session, format string) {
	metrics.RecordFileIngested(format)
	metrics.RecordThrowsIngested(len(s.Throws))
	r.log.Info(ctx, "session loaded",
		logger.String("source", s.Source),
		logger.String("format", format),
		logger.Int("throws", len(s.Throws)),
		logger.Int("duplicates", s.Duplicates),
	)
}

// column identifies the canonical meaning of an input column or object key.
type column int

const (
	colSkip column = iota
	colID
	colTime
	colSpeed
	colSpin
	colNose
	colWobble
	colHyzer
	colLaunch
	colType
	colNote
)

// columnFor maps a raw header cell or JSON key to its canonical column.
// Matching is case-insensitive and tolerant of spaces and dashes.
func columnFor(name string) column {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")

	switch key {
	case "id", "throw_id":
		return colID
	case "time", "timestamp":
		return colTime
	case "speed", "speed_mph", "mph":
		return colSpeed
	case "spin", "spin_rpm", "rpm":
		return colSpin
	case "nose", "nose_angle":
		return colNose
	case "wobble", "offaxis", "off_axis", "oat":
		return colWobble
	case "hyzer", "hyzer_angle":
		return colHyzer
	case "launch", "launch_angle":
		return colLaunch
	case "type", "types", "throw_type":
		return colType
	case "note", "notes", "tags":
		return colNote
	default:
		return colSkip
	}
}

// splitTypes turns a raw throw-type cell into labels. Multi-valued cells use
// a pipe separator in the exports we have seen.
func splitTypes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, "|")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			types = append(types, p)
		}
	}
	return types
}
