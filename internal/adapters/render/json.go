package render

import (
	"encoding/json"
	"fmt"
	"io"

	analyzer "github.com/okian/throwbench/internal/app"
	"github.com/okian/throwbench/pkg/metrics"
)

// JSON writes the report as indented JSON, one document per call. Absent
// values marshal as null, so consumers can tell "no data" from zero.
func JSON(w io.Writer, report *analyzer.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	metrics.RecordReportRendered(FormatJSON)
	return nil
}
