package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrBadWeights marks a degenerate weight configuration: mismatched lengths
// or a vector that sums to zero. These are configuration defects, never
// transient conditions.
var ErrBadWeights = errors.New("sampler: invalid weights")

// maxDateAttempts bounds the rejection-sampling loop in SeasonalDate. Past
// the cap the last candidate is accepted unconditionally so the draw always
// terminates, even under a pathological weight table.
const maxDateAttempts = 100

// Sampler wraps a seeded PRNG. All draws for a generation run go through one
// Sampler so that a seed fully determines every table.
type Sampler struct {
	rng *rand.Rand
}

// New returns a Sampler seeded with seed. Identical seeds produce identical
// draw sequences.
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly drawn element of items.
func (s *Sampler) Pick(items []string) string {
	return items[s.rng.Intn(len(items))]
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func (s *Sampler) IntBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// Between returns a uniform float in [lo, hi).
func (s *Sampler) Between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Int63Between returns a uniform int64 in [lo, hi] inclusive.
func (s *Sampler) Int63Between(lo, hi int64) int64 {
	return lo + s.rng.Int63n(hi-lo+1)
}

// Bernoulli returns true with probability p.
func (s *Sampler) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

// NormalClamped draws from N(mean, sd), clamps to [lo, hi] and rounds to one
// decimal place.
func (s *Sampler) NormalClamped(mean, sd, lo, hi float64) float64 {
	v := s.rng.NormFloat64()*sd + mean
	v = math.Max(lo, math.Min(hi, v))
	return math.Round(v*10) / 10
}

// WeightedIndex draws an index with probability proportional to weights[i].
// Weights need not sum to 1; they are normalized internally.
func (s *Sampler) WeightedIndex(weights []float64) (int, error) {
	var total float64
	for _, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("%w: negative weight %v", ErrBadWeights, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: all weights are zero", ErrBadWeights)
	}
	r := s.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i, nil
		}
	}
	// Float round-off can leave r at exactly zero after the loop.
	return len(weights) - 1, nil
}

// WeightedChoice draws one of items with probability proportional to its
// weight. Fails if the item and weight counts mismatch or the weights are
// degenerate.
func (s *Sampler) WeightedChoice(items []string, weights []float64) (string, error) {
	if len(items) == 0 || len(items) != len(weights) {
		return "", fmt.Errorf("%w: %d items vs %d weights", ErrBadWeights, len(items), len(weights))
	}
	i, err := s.WeightedIndex(weights)
	if err != nil {
		return "", err
	}
	return items[i], nil
}

// DateBetween returns a uniform calendar day in [start, end] inclusive.
func (s *Sampler) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, s.rng.Intn(days+1))
}

// SeasonalDate draws a day in [start, end] biased toward months with higher
// weight. It rejection-samples: a uniform candidate is accepted with
// probability weight(month)/maxWeight, otherwise redrawn. The loop is bounded
// by maxDateAttempts; past the bound the last candidate is accepted so the
// routine terminates deterministically under any weight table.
func (s *Sampler) SeasonalDate(start, end time.Time, weight func(time.Month) float64) time.Time {
	maxW := 0.0
	for m := time.January; m <= time.December; m++ {
		if w := weight(m); w > maxW {
			maxW = w
		}
	}
	candidate := s.DateBetween(start, end)
	if maxW <= 0 {
		return candidate
	}
	for attempt := 0; attempt < maxDateAttempts; attempt++ {
		if s.rng.Float64() <= weight(candidate.Month())/maxW {
			return candidate
		}
		candidate = s.DateBetween(start, end)
	}
	return candidate
}

// Round2 rounds to two decimal places, the precision of every monetary column.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
