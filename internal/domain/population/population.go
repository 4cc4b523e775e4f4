// Package population builds the synthetic reference population a session is
// benchmarked against. Real cohort data is rarely available, so the
// generator draws a plausible, internally-correlated distribution of throw
// metrics from a deterministic source: equal (seed, size) inputs always
// reproduce the identical population.
package population

import (
	"math"
	"sort"

	"github.com/okian/throwbench/internal/domain/model"
	"github.com/okian/throwbench/pkg/rng"
)

// Generation coefficients. Every synthetic thrower gets one latent skill
// deviate; each metric is an affine mix of that skill factor, independent
// noise, and — for nose and spin — the sample's own already-computed wobble
// and speed deviations. Constants are calibration policy: relative signs
// matter (skill pushes speed and spin up, wobble and nose error down),
// exact magnitudes are tunable.
const (
	speedBase   = 47.0
	speedSkill  = 4.2
	speedNoise  = 3.8
	speedMin    = 25.0
	speedMax    = 68.0

	wobbleBase  = 4.3
	wobbleSkill = -0.9
	wobbleNoise = 0.9
	wobbleMin   = 0.8
	wobbleMax   = 11.0

	noseBase      = 2.2
	noseSkill     = -0.55
	noseWobbleDev = 0.35
	noseNoise     = 1.6
	noseMin       = -6.0
	noseMax       = 14.0

	spinBase      = 960.0
	spinSpeedDev  = 6.5
	spinSkill     = 90.0
	spinWobbleDev = -18.0
	spinNoise     = 70.0
	spinMin       = 350.0
	spinMax       = 1250.0
)

// Population holds four parallel metric arrays for N synthetic throwers
// plus ascending-sorted copies of each, derived exactly once at generation
// time. A Population is immutable after Generate returns and is safe to
// share across any number of concurrent readers. Accessors return the
// backing arrays; callers must treat them as read-only.
type Population struct {
	seed uint32
	size int

	speed  []float64
	wobble []float64
	nose   []float64
	spin   []float64

	sortedSpeed  []float64
	sortedWobble []float64
	sortedNose   []float64
	sortedSpin   []float64
}

// Generate draws n correlated samples from the stream seeded with seed.
// The per-sample draw order is fixed — skill, speed noise, wobble noise,
// nose noise, spin noise — because nose and spin read the same sample's
// computed wobble and speed, and because reproducibility is part of the
// contract. A non-positive n yields an empty population.
func Generate(n int, seed uint32) *Population {
	if n < 0 {
		n = 0
	}

	p := &Population{
		seed:   seed,
		size:   n,
		speed:  make([]float64, n),
		wobble: make([]float64, n),
		nose:   make([]float64, n),
		spin:   make([]float64, n),
	}

	src := rng.New(seed)
	for i := 0; i < n; i++ {
		skill := src.Norm()

		speed := clamp(speedBase+speedSkill*skill+speedNoise*src.Norm(), speedMin, speedMax)
		wobble := clamp(wobbleBase+wobbleSkill*skill+wobbleNoise*math.Abs(src.Norm()), wobbleMin, wobbleMax)
		nose := clamp(noseBase+noseSkill*skill+noseWobbleDev*(wobble-wobbleBase)+noseNoise*src.Norm(), noseMin, noseMax)
		spin := clamp(spinBase+spinSpeedDev*(speed-speedBase)+spinSkill*skill+spinWobbleDev*(wobble-wobbleBase)+spinNoise*src.Norm(), spinMin, spinMax)

		p.speed[i] = speed
		p.wobble[i] = wobble
		p.nose[i] = nose
		p.spin[i] = spin
	}

	p.sortedSpeed = sortedCopy(p.speed)
	p.sortedWobble = sortedCopy(p.wobble)
	p.sortedNose = sortedCopy(p.nose)
	p.sortedSpin = sortedCopy(p.spin)

	return p
}

// Seed returns the seed the population was generated from.
func (p *Population) Seed() uint32 {
	return p.seed
}

// Size returns the number of synthetic throwers.
func (p *Population) Size() int {
	return p.size
}

// Values returns the unsorted array for m, in generation order.
func (p *Population) Values(m model.Metric) []float64 {
	switch m {
	case model.MetricPower:
		return p.speed
	case model.MetricSpin:
		return p.spin
	case model.MetricNose:
		return p.nose
	case model.MetricWobble:
		return p.wobble
	default:
		return nil
	}
}

// Sorted returns the ascending-sorted array for m. The sort happened once
// at generation time; the returned slice is never re-sorted or mutated.
func (p *Population) Sorted(m model.Metric) []float64 {
	switch m {
	case model.MetricPower:
		return p.sortedSpeed
	case model.MetricSpin:
		return p.sortedSpin
	case model.MetricNose:
		return p.sortedNose
	case model.MetricWobble:
		return p.sortedWobble
	default:
		return nil
	}
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
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
