package service

import (
	"errors"
	"fmt"

	"github.com/loiht2/chess-trainer/models"
)

// Training set creation errors. All are recoverable; handlers map each to a
// user-facing message.
var (
	ErrEmptyName               = errors.New("set name can't be blank")
	ErrNameLengthLimitExceeded = fmt.Errorf("set name length can't exceed %d", models.MaxSetNameLength)
	ErrSizeTooSmall            = fmt.Errorf("set size must be at least %d", models.MinSetSize)
	ErrSizeLimitExceeded       = fmt.Errorf("set size can't exceed %d", models.MaxSetSize)
	ErrCriteriaUnmet           = errors.New("not enough puzzles meet the criteria given")
)

// ErrTrainingSetNotFound is returned by GetSet for unknown IDs
var ErrTrainingSetNotFound = errors.New("training set not found")

// RepositoryError wraps a storage failure. Its message is generic; the cause
// is available through Unwrap for logging.
type RepositoryError struct {
	Err error
}

func (e *RepositoryError) Error() string { return "repository error" }

func (e *RepositoryError) Unwrap() error { return e.Err }

// ValidationError rejects an imported puzzle whose popularity is out of range
type ValidationError struct {
	PuzzleID   string
	Popularity int8
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("puzzle %s: popularity %d is out of range [%d, %d]",
		e.PuzzleID, e.Popularity, MinPopularity, MaxPopularity)
}
