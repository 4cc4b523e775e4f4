package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/pkg/metrics"
)

// ReadCSV loads a session from a header-driven CSV stream. The header row
// decides what each column means; unknown columns are ignored and ragged
// rows are tolerated. A header with no recognizable column at all is a file
// error, since every row would come back empty.
func (r *Reader) ReadCSV(ctx context.Context, src io.Reader, source string) (Session, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		// An empty file is an empty session, not a failure.
		s := Session{Source: source}
		r.finish(ctx, &s, "csv")
		return s, nil
	}
	if err != nil {
		metrics.RecordIngestionError()
		return Session{}, fmt.Errorf("%w: read header: %v", ErrMalformedFile, err)
	}

	cols := make([]column, len(header))
	known := 0
	for i, cell := range header {
		cols[i] = columnFor(cell)
		if cols[i] != colSkip {
			known++
		}
	}
	if known == 0 {
		metrics.RecordIngestionError()
		return Session{}, fmt.Errorf("%w: %q", ErrNoKnownColumns, source)
	}

	s := Session{Source: source}
	seen := make(map[string]struct{})
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.RecordIngestionError()
			return Session{}, fmt.Errorf("%w: line %d: %v", ErrMalformedFile, line, err)
		}
		r.accept(ctx, &s, seen, rowFromRecord(cols, rec))
	}

	r.finish(ctx, &s, "csv")
	return s, nil
}

// rowFromRecord coerces one CSV record through the column mapping. Cells
// beyond the header width are dropped; missing trailing cells stay absent.
func rowFromRecord(cols []column, rec []string) row {
	var rw row
	for i, cell := range rec {
		if i >= len(cols) {
			break
		}
		switch cols[i] {
		case colID:
			rw.id = strings.TrimSpace(cell)
		case colTime:
			rw.timeLabel = strings.TrimSpace(cell)
		case colSpeed:
			rw.speed = model.Parse(cell)
		case colSpin:
			rw.spin = model.Parse(cell)
		case colNose:
			rw.nose = model.Parse(cell)
		case colWobble:
			rw.wobble = model.Parse(cell)
		case colHyzer:
			rw.hyzer = model.Parse(cell)
		case colLaunch:
			rw.launch = model.Parse(cell)
		case colType:
			rw.types = splitTypes(cell)
		case colNote:
			rw.note = strings.TrimSpace(cell)
		case colSkip:
		}
	}
	return rw
}
