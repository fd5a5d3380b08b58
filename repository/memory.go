package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/loiht2/chess-trainer/models"
)

// InMemoryPuzzleRepository keeps puzzles in a map guarded by a single mutex,
// which also covers the ID sequence, so creation is linearizable.
type InMemoryPuzzleRepository struct {
	mu         sync.Mutex
	puzzles    map[models.PuzzleID]models.Puzzle
	idSequence models.PuzzleID
	sampling   sampling
}

// NewInMemoryPuzzleRepository creates an empty puzzle repository
func NewInMemoryPuzzleRepository(opts ...Option) *InMemoryPuzzleRepository {
	return &InMemoryPuzzleRepository{
		puzzles:  make(map[models.PuzzleID]models.Puzzle),
		sampling: newSampling(opts),
	}
}

// Create assigns the next ID and stores the puzzle
func (r *InMemoryPuzzleRepository) Create(_ context.Context, create models.CreatePuzzle) (models.Puzzle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.idSequence++
	puzzle := models.Puzzle{
		ID:                     r.idSequence,
		FEN:                    create.FEN,
		Moves:                  create.Moves,
		LichessID:              create.LichessID,
		LichessRating:          create.LichessRating,
		LichessRatingDeviation: create.LichessRatingDeviation,
		LichessPopularity:      create.LichessPopularity,
		LichessPlayCount:       create.LichessPlayCount,
		Themes:                 cloneThemes(create.Themes),
		LichessGameURL:         create.LichessGameURL,
	}
	r.puzzles[puzzle.ID] = puzzle
	return clonePuzzle(puzzle), nil
}

// Find returns every stored puzzle ordered by ID
func (r *InMemoryPuzzleRepository) Find(_ context.Context) ([]models.Puzzle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Puzzle, 0, len(r.puzzles))
	for _, p := range r.puzzles {
		out = append(out, clonePuzzle(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindRandom filters by rating and themes, then samples without replacement
func (r *InMemoryPuzzleRepository) FindRandom(_ context.Context, count int, rating models.RatingRange, themes models.ThemeChoice) ([]models.Puzzle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidates := make([]models.Puzzle, 0)
	for _, p := range r.puzzles {
		if rating.Contains(p.LichessRating) && themes.Matches(p.Themes) {
			candidates = append(candidates, p)
		}
	}
	// sort before sampling so a seeded rng gives repeatable results
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	sampled := r.sampling.samplerFor(themes).Sample(r.sampling.rng, candidates, count)
	out := make([]models.Puzzle, len(sampled))
	for i, p := range sampled {
		out[i] = clonePuzzle(p)
	}
	return out, nil
}

// InMemoryTrainingSetRepository keeps training sets in a mutex-guarded map
type InMemoryTrainingSetRepository struct {
	mu   sync.Mutex
	sets map[models.TrainingSetID]models.TrainingSet
}

// NewInMemoryTrainingSetRepository creates an empty training set repository
func NewInMemoryTrainingSetRepository() *InMemoryTrainingSetRepository {
	return &InMemoryTrainingSetRepository{
		sets: make(map[models.TrainingSetID]models.TrainingSet),
	}
}

// Create assigns a random UUID and stores the set
func (r *InMemoryTrainingSetRepository) Create(_ context.Context, create models.CreateTrainingSet) (models.TrainingSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := models.TrainingSet{
		ID:              uuid.New(),
		PuzzleIDs:       create.PuzzleIDs,
		Name:            create.Name,
		Rating:          create.Rating,
		Themes:          create.Themes,
		CurrentProgress: create.CurrentProgress,
		CyclesDone:      create.CyclesDone,
	}
	r.sets[set.ID] = cloneSet(set)
	return cloneSet(set), nil
}

// FindByID returns ErrNotFound for unknown IDs
func (r *InMemoryTrainingSetRepository) FindByID(_ context.Context, id models.TrainingSetID) (models.TrainingSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sets[id]
	if !ok {
		return models.TrainingSet{}, ErrNotFound
	}
	return cloneSet(set), nil
}

func cloneThemes(themes []models.Theme) []models.Theme {
	out := make([]models.Theme, len(themes))
	copy(out, themes)
	return out
}

func clonePuzzle(p models.Puzzle) models.Puzzle {
	p.Themes = cloneThemes(p.Themes)
	return p
}

func cloneSet(s models.TrainingSet) models.TrainingSet {
	ids := make([]models.PuzzleID, len(s.PuzzleIDs))
	copy(ids, s.PuzzleIDs)
	s.PuzzleIDs = ids
	return s
}
