package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loiht2/chess-trainer/models"
)

func candidates(themes ...models.Theme) []models.Puzzle {
	out := make([]models.Puzzle, len(themes))
	for i, theme := range themes {
		out[i] = models.Puzzle{ID: models.PuzzleID(i + 1), Themes: []models.Theme{theme}}
	}
	return out
}

func TestUniformSampler(t *testing.T) {
	pool := candidates(models.ThemeFork, models.ThemeFork, models.ThemePin, models.ThemePin, models.ThemeSkewer)
	before := ids(pool)

	sample := UniformSampler{}.Sample(testRand(), pool, 3)
	assert.Len(t, sample, 3)
	assert.Len(t, uniqueIDs(sample), 3)
	assert.Equal(t, before, ids(pool), "candidates must not be reordered")

	all := UniformSampler{}.Sample(testRand(), pool, 10)
	assert.ElementsMatch(t, before, ids(all))

	assert.Empty(t, UniformSampler{}.Sample(testRand(), pool, 0))
	assert.Empty(t, UniformSampler{}.Sample(testRand(), nil, 5))
}

func TestBalancedSamplerSpreadsAcrossThemes(t *testing.T) {
	themes := make([]models.Theme, 0, 40)
	for i := 0; i < 30; i++ {
		themes = append(themes, models.ThemeFork)
	}
	for i := 0; i < 5; i++ {
		themes = append(themes, models.ThemePin, models.ThemeSkewer)
	}
	pool := candidates(themes...)

	sample := BalancedSampler{}.Sample(testRand(), pool, 15)
	require.Len(t, sample, 15)
	assert.Len(t, uniqueIDs(sample), 15)

	counts := make(map[models.Theme]int)
	for _, p := range sample {
		counts[p.Themes[0]]++
	}
	assert.Equal(t, map[models.Theme]int{
		models.ThemeFork:   5,
		models.ThemePin:    5,
		models.ThemeSkewer: 5,
	}, counts)
}

func TestBalancedSamplerFallsBackToLargerBuckets(t *testing.T) {
	pool := candidates(
		models.ThemeFork, models.ThemeFork, models.ThemeFork, models.ThemeFork,
		models.ThemePin,
	)
	pool = append(pool, models.Puzzle{ID: 6, Themes: []models.Theme{}})

	sample := BalancedSampler{}.Sample(testRand(), pool, 5)
	require.Len(t, sample, 5)
	assert.Len(t, uniqueIDs(sample), 5)

	got := ids(sample)
	assert.Contains(t, got, models.PuzzleID(5))
	assert.Contains(t, got, models.PuzzleID(6))

	all := BalancedSampler{}.Sample(testRand(), pool, 100)
	assert.Len(t, all, 6)
	assert.Empty(t, BalancedSampler{}.Sample(testRand(), pool, 0))
}

func TestSamplingOptions(t *testing.T) {
	s := newSampling(nil)
	assert.IsType(t, BalancedSampler{}, s.samplerFor(models.HealthyMix()))
	assert.IsType(t, UniformSampler{}, s.samplerFor(models.ThemesOf(models.ThemeFork)))

	rng := testRand()
	s = newSampling([]Option{
		WithRand(rng),
		WithThemeSampler(BalancedSampler{}),
		WithHealthyMixSampler(UniformSampler{}),
	})
	assert.Same(t, rng, s.rng)
	assert.IsType(t, UniformSampler{}, s.samplerFor(models.HealthyMix()))
	assert.IsType(t, BalancedSampler{}, s.samplerFor(models.ThemesOf()))
}
