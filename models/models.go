package models

import (
	"github.com/google/uuid"
)

// Training set limits enforced on creation
const (
	MaxSetNameLength = 100
	MinSetSize       = 5
	MaxSetSize       = 1000
)

// PuzzleID is assigned by the puzzle repository
type PuzzleID = uint64

// TrainingSetID is assigned by the training set repository
type TrainingSetID = uuid.UUID

// Puzzle is an imported Lichess puzzle. It is never mutated after creation.
type Puzzle struct {
	ID                     PuzzleID `json:"id"`
	FEN                    string   `json:"fen"`
	Moves                  string   `json:"moves"`
	LichessID              string   `json:"lichess_id"`
	LichessRating          uint16   `json:"lichess_rating"`
	LichessRatingDeviation uint16   `json:"lichess_rating_deviation"`
	LichessPopularity      int8     `json:"lichess_popularity"`
	LichessPlayCount       uint32   `json:"lichess_play_count"`
	Themes                 []Theme  `json:"themes"`
	LichessGameURL         string   `json:"lichess_game_url"`
}

// CreatePuzzle holds every puzzle field except the repository-assigned ID
type CreatePuzzle struct {
	FEN                    string
	Moves                  string
	LichessID              string
	LichessRating          uint16
	LichessRatingDeviation uint16
	LichessPopularity      int8
	LichessPlayCount       uint32
	Themes                 []Theme
	LichessGameURL         string
}

// LichessPuzzleImport is a single row of the Lichess puzzle dataset
type LichessPuzzleImport struct {
	PuzzleID        string
	FEN             string
	Moves           string
	Rating          uint16
	RatingDeviation uint16
	Popularity      int8
	PlayCount       uint32
	Themes          []Theme
	GameURL         string
}

// ToCreatePuzzle maps the dataset columns onto the repository creation record
func (p LichessPuzzleImport) ToCreatePuzzle() CreatePuzzle {
	return CreatePuzzle{
		FEN:                    p.FEN,
		Moves:                  p.Moves,
		LichessID:              p.PuzzleID,
		LichessRating:          p.Rating,
		LichessRatingDeviation: p.RatingDeviation,
		LichessPopularity:      p.Popularity,
		LichessPlayCount:       p.PlayCount,
		Themes:                 p.Themes,
		LichessGameURL:         p.GameURL,
	}
}

// RatingRange is an inclusive puzzle rating band
type RatingRange struct {
	Min uint16 `json:"min"`
	Max uint16 `json:"max"`
}

// Contains reports whether rating lies within the range, bounds included
func (r RatingRange) Contains(rating uint16) bool {
	return rating >= r.Min && rating <= r.Max
}

// TrainingSet is a named, fixed-size selection of puzzles
type TrainingSet struct {
	ID              TrainingSetID `json:"id"`
	PuzzleIDs       []PuzzleID    `json:"puzzle_ids"`
	Name            string        `json:"name"`
	Rating          RatingRange   `json:"rating"`
	Themes          ThemeChoice   `json:"themes"`
	CurrentProgress uint32        `json:"current_progress"`
	CyclesDone      uint32        `json:"cycles_done"`
}

// CreateTrainingSet holds every training set field except the repository-assigned ID
type CreateTrainingSet struct {
	PuzzleIDs       []PuzzleID
	Name            string
	Rating          RatingRange
	Themes          ThemeChoice
	CurrentProgress uint32
	CyclesDone      uint32
}

// CreateTrainingSetOptions are the caller-supplied parameters of a new training set
type CreateTrainingSetOptions struct {
	Name   string
	Size   int
	Rating RatingRange
	Themes ThemeChoice
}

// CreateTrainingSetRequest represents the request payload from frontend
type CreateTrainingSetRequest struct {
	Name   string      `json:"name"`
	Size   int         `json:"size"`
	Rating RatingRange `json:"rating"`
	Themes ThemeChoice `json:"themes"`
}

// ToOptions converts the request into service options
func (r CreateTrainingSetRequest) ToOptions() CreateTrainingSetOptions {
	return CreateTrainingSetOptions{
		Name:   r.Name,
		Size:   r.Size,
		Rating: r.Rating,
		Themes: r.Themes,
	}
}
