// Package simulate generates synthetic practice sessions for demos and
// pipeline testing. Output is fully deterministic for a given profile, seed,
// and count, and uses the same CSV dialect the ingestion reader accepts, so
// a generated file round-trips through the whole pipeline.
package simulate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/pkg/rng"
)

// Profile selects which kind of thrower a session imitates.
type Profile string

// The three built-in thrower profiles. Beginner sessions trip every
// diagnosis rule; advanced sessions come back clean.
const (
	ProfileBeginner     Profile = "beginner"
	ProfileIntermediate Profile = "intermediate"
	ProfileAdvanced     Profile = "advanced"
)

// Generation defaults and clamp bounds.
const (
	defaultCount          = 20
	defaultSeed    uint32 = 7
	defaultDropout        = 0.05

	speedMin  = 20.0
	speedMax  = 75.0
	spinMin   = 300.0
	spinMax   = 1300.0
	noseMin   = -6.0
	noseMax   = 14.0
	wobbleMin = 0.2
	wobbleMax = 11.0

	backhandShare = 0.7
	throwInterval = 40 * time.Second
)

// dist is a normal distribution by center and spread.
type dist struct {
	mean float64
	sd   float64
}

type params struct {
	speed  dist
	spin   dist
	nose   dist
	wobble dist
}

// profileParams returns the metric distributions for p. Centers are chosen
// so that a session of the default size lands squarely inside the matching
// skill band rather than on a boundary.
func profileParams(p Profile) params {
	switch p {
	case ProfileAdvanced:
		return params{
			speed:  dist{mean: 63, sd: 3},
			spin:   dist{mean: 1150, sd: 50},
			nose:   dist{mean: 1.8, sd: 0.8},
			wobble: dist{mean: 1.8, sd: 0.6},
		}
	case ProfileIntermediate:
		return params{
			speed:  dist{mean: 54, sd: 3},
			spin:   dist{mean: 1000, sd: 60},
			nose:   dist{mean: 3.2, sd: 1.2},
			wobble: dist{mean: 3.6, sd: 0.8},
		}
	default:
		return params{
			speed:  dist{mean: 45, sd: 3},
			spin:   dist{mean: 820, sd: 60},
			nose:   dist{mean: 6, sd: 1.5},
			wobble: dist{mean: 5.5, sd: 1.2},
		}
	}
}

// ParseProfile converts a user-supplied name into a Profile.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProfileBeginner, ProfileIntermediate, ProfileAdvanced:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// Profiles lists the profile names in difficulty order.
func Profiles() []string {
	return []string{string(ProfileBeginner), string(ProfileIntermediate), string(ProfileAdvanced)}
}

// Generator produces synthetic sessions for one profile. A Generator is
// stateless between calls: every Throws or WriteCSV call replays the same
// deterministic stream from the seed.
type Generator struct {
	profile Profile
	seed    uint32
	count   int
	dropout float64
}

// New constructs a Generator for the given profile.
func New(profile Profile, opts ...Option) (*Generator, error) {
	if _, err := ParseProfile(string(profile)); err != nil {
		return nil, err
	}

	g := &Generator{
		profile: profile,
		seed:    defaultSeed,
		count:   defaultCount,
		dropout: defaultDropout,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Throws generates the session. The per-throw draw order is fixed — speed,
// spin, nose, wobble, the two dropout draws, then the throw-type draw — so a
// given (profile, seed, count, dropout) always reproduces the same session.
// Dropouts blank the nose and wobble cells to mimic sensors that lose track
// of disc orientation.
func (g *Generator) Throws() []model.Throw {
	src := rng.New(g.seed)
	p := profileParams(g.profile)
	base := time.Date(2026, time.April, 12, 9, 30, 0, 0, time.UTC)

	throws := make([]model.Throw, g.count)
	for i := range throws {
		speed := clamp(p.speed.mean+p.speed.sd*src.Norm(), speedMin, speedMax)
		spin := clamp(p.spin.mean+p.spin.sd*src.Norm(), spinMin, spinMax)
		nose := clamp(p.nose.mean+p.nose.sd*src.Norm(), noseMin, noseMax)
		wobble := clamp(p.wobble.mean+p.wobble.sd*src.Norm(), wobbleMin, wobbleMax)

		dropNose := src.Float64() < g.dropout
		dropWobble := src.Float64() < g.dropout

		form := "backhand"
		if src.Float64() >= backhandShare {
			form = "forehand"
		}

		t := model.Throw{
			Seq:       i + 1,
			ID:        rowID(g.profile, g.seed, i),
			TimeLabel: base.Add(time.Duration(i) * throwInterval).Format("15:04:05"),
			Speed:     model.Some(speed),
			Spin:      model.Some(spin),
			Types:     []string{form},
		}
		if !dropNose {
			t.Nose = model.Some(nose)
		}
		if !dropWobble {
			t.Wobble = model.Some(wobble)
		}
		throws[i] = t
	}

	return throws
}

// WriteCSV writes the session in the reader's CSV dialect: a header row,
// then one row per throw with dropped cells left blank.
func (g *Generator) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "time", "speed", "spin", "nose", "wobble", "type"}); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	for _, t := range g.Throws() {
		rec := []string{
			t.ID,
			t.TimeLabel,
			cell(t.Speed, 1),
			cell(t.Spin, 0),
			cell(t.Nose, 1),
			cell(t.Wobble, 1),
			strings.Join(t.Types, "|"),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// rowID derives a stable v5 UUID per throw so regenerated sessions keep
// their row identities.
func rowID(profile Profile, seed uint32, i int) string {
	name := fmt.Sprintf("throwbench/%s/%d/%d", profile, seed, i)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func cell(n model.Number, precision int) string {
	v, ok := n.Value()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
