package model

// Throw is one observed throw after ingestion coercion. All numeric fields
// are independently optional: a sensor may report any subset per throw.
// A Throw is created once per input row and never mutated afterwards.
type Throw struct {
	Seq       int      `json:"seq"`                  // 1-based order of appearance
	ID        string   `json:"id,omitempty"`         // source row id, when present
	TimeLabel string   `json:"time,omitempty"`       // timestamp label as given
	Speed     Number   `json:"speed"`                // mph
	Spin      Number   `json:"spin"`                 // rpm
	Nose      Number   `json:"nose"`                 // degrees, positive = nose up
	Wobble    Number   `json:"wobble"`               // degrees of off-axis wobble
	Launch    Number   `json:"launch"`               // launch angle, degrees
	Hyzer     Number   `json:"hyzer"`                // hyzer angle, degrees
	Types     []string `json:"throw_types,omitempty"`
	Note      string   `json:"note,omitempty"`
}

// Usable reports whether the throw counts toward the session's usable total.
// A throw counts only if it carries speed or spin data.
func (t Throw) Usable() bool {
	return t.Speed.Valid() || t.Spin.Valid()
}

// Metric returns the throw's value for m. Power reads the speed field.
func (t Throw) Metric(m Metric) Number {
	switch m {
	case MetricPower:
		return t.Speed
	case MetricSpin:
		return t.Spin
	case MetricNose:
		return t.Nose
	case MetricWobble:
		return t.Wobble
	default:
		return None()
	}
}

// Averages carries the per-metric session means consumed by banding and
// diagnosis. Absent means stay absent; they are never defaulted to 0.
type Averages struct {
	Speed  Number `json:"speed"`
	Spin   Number `json:"spin"`
	Nose   Number `json:"nose"`
	Wobble Number `json:"wobble"`
}

// Metric returns the average for m. Power reads the speed average.
func (a Averages) Metric(m Metric) Number {
	switch m {
	case MetricPower:
		return a.Speed
	case MetricSpin:
		return a.Spin
	case MetricNose:
		return a.Nose
	case MetricWobble:
		return a.Wobble
	default:
		return None()
	}
}
