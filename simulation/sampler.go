package simulation

import (
	"math/rand"
	"sort"

	"cricket-engine/models"
)

// Sampler draws one label from a discrete categorical distribution with
// probability proportional to its (non-negative, not necessarily
// normalized) weight. It is the single source of randomness threaded
// through delivery outcome, dismissal mode, fielder selection, toss
// choice, and follow-on decisions, so that seeding one *rand.Rand
// makes a whole Match reproducible.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler wraps an RNG. Callers share one Sampler (and hence one RNG)
// per Match to keep delivery-for-delivery reproducibility.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Draw samples a label proportional to its weight. Weights need not sum
// to one. Fails with EmptyDistribution if every weight is zero or the
// map is empty.
func (s *Sampler) Draw(weights map[string]float64) (string, error) {
	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Strings(labels) // deterministic iteration order given a fixed seed

	var total float64
	for _, l := range labels {
		if weights[l] > 0 {
			total += weights[l]
		}
	}
	if total <= 0 {
		return "", models.NewError(models.EmptyDistribution, "all weights are zero or distribution is empty")
	}

	r := s.rng.Float64() * total
	var cumulative float64
	for _, l := range labels {
		w := weights[l]
		if w <= 0 {
			continue
		}
		cumulative += w
		if r < cumulative {
			return l, nil
		}
	}
	// Floating point edge case: return the last positive-weight label.
	for i := len(labels) - 1; i >= 0; i-- {
		if weights[labels[i]] > 0 {
			return labels[i], nil
		}
	}
	return "", models.NewError(models.EmptyDistribution, "all weights are zero or distribution is empty")
}

// DrawUniform samples uniformly among the given labels, falling back
// behavior used to recover from EmptyDistribution in fielder selection.
func (s *Sampler) DrawUniform(labels []string) (string, error) {
	if len(labels) == 0 {
		return "", models.NewError(models.EmptyDistribution, "no eligible labels for uniform draw")
	}
	return labels[s.rng.Intn(len(labels))], nil
}

// Float64 returns the next uniform sample in [0,1), used directly by
// BowlingManager's take-off check and Match's toss/follow-on Bernoulli
// draws.
func (s *Sampler) Float64() float64 {
	return s.rng.Float64()
}
