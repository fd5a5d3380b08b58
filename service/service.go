package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/loiht2/chess-trainer/models"
	"github.com/loiht2/chess-trainer/repository"
)

// Popularity bounds of an importable puzzle
const (
	MinPopularity = -100
	MaxPopularity = 100
)

// PuzzleService imports puzzles and assembles training sets
type PuzzleService struct {
	puzzles      repository.PuzzleRepository
	trainingSets repository.TrainingSetRepository
	logger       *zap.Logger
}

// NewPuzzleService creates a service over the given repositories. A nil
// logger discards output.
func NewPuzzleService(puzzles repository.PuzzleRepository, trainingSets repository.TrainingSetRepository, logger *zap.Logger) *PuzzleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PuzzleService{
		puzzles:      puzzles,
		trainingSets: trainingSets,
		logger:       logger,
	}
}

// ImportPuzzle validates a dataset row and stores it. Out of range
// popularity is rejected, never clamped.
func (s *PuzzleService) ImportPuzzle(ctx context.Context, puzzle models.LichessPuzzleImport) (models.Puzzle, error) {
	if puzzle.Popularity < MinPopularity || puzzle.Popularity > MaxPopularity {
		return models.Puzzle{}, &ValidationError{PuzzleID: puzzle.PuzzleID, Popularity: puzzle.Popularity}
	}
	return s.puzzles.Create(ctx, puzzle.ToCreatePuzzle())
}

// ListPuzzles returns the whole catalogue
func (s *PuzzleService) ListPuzzles(ctx context.Context) ([]models.Puzzle, error) {
	return s.puzzles.Find(ctx)
}

// CreateSet validates options, samples puzzles and stores the training set.
// Checks run in a fixed order and the first failure is returned.
func (s *PuzzleService) CreateSet(ctx context.Context, options models.CreateTrainingSetOptions) (models.TrainingSet, error) {
	if options.Name == "" {
		return models.TrainingSet{}, ErrEmptyName
	}
	if len(options.Name) > models.MaxSetNameLength {
		return models.TrainingSet{}, ErrNameLengthLimitExceeded
	}
	if options.Size < models.MinSetSize {
		return models.TrainingSet{}, ErrSizeTooSmall
	}
	if options.Size > models.MaxSetSize {
		return models.TrainingSet{}, ErrSizeLimitExceeded
	}

	puzzles, err := s.puzzles.FindRandom(ctx, options.Size, options.Rating, options.Themes)
	if err != nil {
		return models.TrainingSet{}, &RepositoryError{Err: err}
	}
	if len(puzzles) != options.Size {
		s.logger.Debug("Training set criteria unmet",
			zap.String("name", options.Name),
			zap.Int("requested", options.Size),
			zap.Int("found", len(puzzles)))
		return models.TrainingSet{}, ErrCriteriaUnmet
	}

	puzzleIDs := make([]models.PuzzleID, len(puzzles))
	for i, p := range puzzles {
		puzzleIDs[i] = p.ID
	}

	set, err := s.trainingSets.Create(ctx, models.CreateTrainingSet{
		PuzzleIDs:       puzzleIDs,
		Name:            options.Name,
		Rating:          options.Rating,
		Themes:          options.Themes,
		CurrentProgress: 0,
		CyclesDone:      0,
	})
	if err != nil {
		return models.TrainingSet{}, &RepositoryError{Err: err}
	}

	s.logger.Info("Training set created",
		zap.String("id", set.ID.String()),
		zap.String("name", set.Name),
		zap.Int("size", len(set.PuzzleIDs)))
	return set, nil
}

// GetSet returns a stored training set
func (s *PuzzleService) GetSet(ctx context.Context, id models.TrainingSetID) (models.TrainingSet, error) {
	set, err := s.trainingSets.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.TrainingSet{}, ErrTrainingSetNotFound
	}
	if err != nil {
		return models.TrainingSet{}, &RepositoryError{Err: err}
	}
	return set, nil
}
