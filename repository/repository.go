package repository

import (
	"context"
	"errors"

	"github.com/loiht2/chess-trainer/config"
	"github.com/loiht2/chess-trainer/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// PuzzleRepository stores imported puzzles
type PuzzleRepository interface {
	// Create stores a puzzle and returns it with its assigned ID
	Create(ctx context.Context, puzzle models.CreatePuzzle) (models.Puzzle, error)
	// Find returns all puzzles ordered by ID
	Find(ctx context.Context) ([]models.Puzzle, error)
	// FindRandom returns up to count distinct puzzles whose rating lies in
	// rating and whose themes satisfy themes. Order is the sampling order.
	FindRandom(ctx context.Context, count int, rating models.RatingRange, themes models.ThemeChoice) ([]models.Puzzle, error)
}

// TrainingSetRepository stores assembled training sets
type TrainingSetRepository interface {
	// Create stores a training set and returns it with its assigned ID
	Create(ctx context.Context, set models.CreateTrainingSet) (models.TrainingSet, error)
	// FindByID returns ErrNotFound for unknown IDs
	FindByID(ctx context.Context, id models.TrainingSetID) (models.TrainingSet, error)
}

// New returns the repositories backing cfg: gorm stores when a database is
// open, in-memory stores otherwise.
func New(cfg *config.Config, opts ...Option) (PuzzleRepository, TrainingSetRepository) {
	if cfg.DB == nil {
		return NewInMemoryPuzzleRepository(opts...), NewInMemoryTrainingSetRepository()
	}
	return NewGormPuzzleRepository(cfg.DB, opts...), NewGormTrainingSetRepository(cfg.DB)
}
