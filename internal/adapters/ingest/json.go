package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/pkg/metrics"
)

// ReadJSON loads a session from a JSON array of loosely-typed row objects.
// Keys go through the same aliasing as CSV headers, and values may be
// numbers, numeric-looking strings, or junk that coerces to absent. Anything
// other than an array of objects is a file error.
func (r *Reader) ReadJSON(ctx context.Context, src io.Reader, source string) (Session, error) {
	var raw []map[string]any
	dec := json.NewDecoder(src)
	if err := dec.Decode(&raw); err != nil {
		metrics.RecordIngestionError()
		return Session{}, fmt.Errorf("%w: decode json: %v", ErrMalformedFile, err)
	}

	s := Session{Source: source}
	seen := make(map[string]struct{})
	for _, obj := range raw {
		r.accept(ctx, &s, seen, rowFromObject(obj))
	}

	r.finish(ctx, &s, "json")
	return s, nil
}

// rowFromObject coerces one JSON object through the key aliasing. Keys are
// visited in sorted order so two spellings aliasing to the same column
// resolve the same way on every run.
func rowFromObject(obj map[string]any) row {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rw row
	for _, key := range keys {
		val := obj[key]
		switch columnFor(key) {
		case colID:
			rw.id = stringFromAny(val)
		case colTime:
			rw.timeLabel = stringFromAny(val)
		case colSpeed:
			rw.speed = numberFromAny(val)
		case colSpin:
			rw.spin = numberFromAny(val)
		case colNose:
			rw.nose = numberFromAny(val)
		case colWobble:
			rw.wobble = numberFromAny(val)
		case colHyzer:
			rw.hyzer = numberFromAny(val)
		case colLaunch:
			rw.launch = numberFromAny(val)
		case colType:
			rw.types = typesFromAny(val)
		case colNote:
			rw.note = stringFromAny(val)
		case colSkip:
		}
	}
	return rw
}

// numberFromAny applies the coercion policy to a decoded JSON value.
func numberFromAny(v any) model.Number {
	switch t := v.(type) {
	case float64:
		return model.FromFloat(t)
	case string:
		return model.Parse(t)
	case json.Number:
		return model.Parse(t.String())
	default:
		return model.None()
	}
}

// stringFromAny renders a decoded JSON value as a trimmed label.
func stringFromAny(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

// typesFromAny accepts either a single label or an array of labels.
func typesFromAny(v any) []string {
	switch t := v.(type) {
	case string:
		return splitTypes(t)
	case []any:
		var types []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				types = append(types, splitTypes(s)...)
			}
		}
		return types
	default:
		return nil
	}
}
