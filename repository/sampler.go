package repository

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/loiht2/chess-trainer/models"
)

// Sampler picks up to count distinct puzzles from candidates. Implementations
// must not return duplicates and must not modify candidates.
type Sampler interface {
	Sample(rng *rand.Rand, candidates []models.Puzzle, count int) []models.Puzzle
}

// UniformSampler draws every candidate with equal probability
type UniformSampler struct{}

// Sample runs a partial Fisher-Yates shuffle over a copy of candidates
func (UniformSampler) Sample(rng *rand.Rand, candidates []models.Puzzle, count int) []models.Puzzle {
	if count <= 0 || len(candidates) == 0 {
		return []models.Puzzle{}
	}
	pool := make([]models.Puzzle, len(candidates))
	copy(pool, candidates)
	if count > len(pool) {
		count = len(pool)
	}
	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}

// BalancedSampler spreads the sample across theme buckets. Each candidate is
// bucketed by its first theme; buckets are visited round-robin in random
// order and each contributes one random member per round.
type BalancedSampler struct{}

// Sample implements Sampler
func (BalancedSampler) Sample(rng *rand.Rand, candidates []models.Puzzle, count int) []models.Puzzle {
	if count <= 0 || len(candidates) == 0 {
		return []models.Puzzle{}
	}

	buckets := make(map[models.Theme][]models.Puzzle)
	for _, p := range candidates {
		var key models.Theme
		if len(p.Themes) > 0 {
			key = p.Themes[0]
		}
		buckets[key] = append(buckets[key], p)
	}

	keys := make([]models.Theme, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// map iteration order is not seeded by rng
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	queues := make([][]models.Puzzle, len(keys))
	for i, k := range keys {
		queues[i] = UniformSampler{}.Sample(rng, buckets[k], len(buckets[k]))
	}

	out := make([]models.Puzzle, 0, min(count, len(candidates)))
	for len(out) < count {
		progressed := false
		for i := range queues {
			if len(queues[i]) == 0 || len(out) == count {
				continue
			}
			out = append(out, queues[i][0])
			queues[i] = queues[i][1:]
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return out
}

// sampling bundles the samplers and random source shared by the repositories
type sampling struct {
	rng        *rand.Rand
	themed     Sampler
	healthyMix Sampler
}

func newSampling(opts []Option) sampling {
	now := uint64(time.Now().UnixNano())
	s := sampling{
		rng:        rand.New(rand.NewPCG(now, now>>1|1)),
		themed:     UniformSampler{},
		healthyMix: BalancedSampler{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s *sampling) samplerFor(choice models.ThemeChoice) Sampler {
	if choice.IsHealthyMix() {
		return s.healthyMix
	}
	return s.themed
}

// Option configures puzzle repository sampling
type Option func(*sampling)

// WithRand sets the random source, mainly for deterministic tests
func WithRand(rng *rand.Rand) Option {
	return func(s *sampling) { s.rng = rng }
}

// WithThemeSampler sets the sampler used for explicit theme choices
func WithThemeSampler(sampler Sampler) Option {
	return func(s *sampling) { s.themed = sampler }
}

// WithHealthyMixSampler sets the sampler used for the healthy mix
func WithHealthyMixSampler(sampler Sampler) Option {
	return func(s *sampling) { s.healthyMix = sampler }
}
