package converter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/loiht2/chess-trainer/models"
)

// Column positions of the Lichess puzzle dataset
const (
	ColumnPuzzleID = iota
	ColumnFEN
	ColumnMoves
	ColumnRating
	ColumnRatingDeviation
	ColumnPopularity
	ColumnNbPlays
	ColumnThemes
	ColumnGameURL

	// RequiredColumns is the minimum row width; later columns such as OpeningTags are ignored
	RequiredColumns
)

// HeaderPuzzleID is the first header cell of the published dataset
const HeaderPuzzleID = "PuzzleId"

// ErrMalformedRecord is returned for rows with too few columns
var ErrMalformedRecord = errors.New("malformed puzzle record")

// Converter handles conversion from dataset rows to import models
type Converter struct{}

// NewConverter creates a new converter instance
func NewConverter() *Converter {
	return &Converter{}
}

// ParseRecord converts one CSV row into a LichessPuzzleImport. Numeric
// columns are parsed at their field width and theme tokens against the
// theme vocabulary; any failure names the offending column.
func (c *Converter) ParseRecord(record []string) (models.LichessPuzzleImport, error) {
	if len(record) < RequiredColumns {
		return models.LichessPuzzleImport{}, fmt.Errorf("%w: expected at least %d columns, got %d",
			ErrMalformedRecord, RequiredColumns, len(record))
	}

	rating, err := strconv.ParseUint(strings.TrimSpace(record[ColumnRating]), 10, 16)
	if err != nil {
		return models.LichessPuzzleImport{}, fmt.Errorf("invalid Rating: %w", err)
	}
	ratingDeviation, err := strconv.ParseUint(strings.TrimSpace(record[ColumnRatingDeviation]), 10, 16)
	if err != nil {
		return models.LichessPuzzleImport{}, fmt.Errorf("invalid RatingDeviation: %w", err)
	}
	popularity, err := strconv.ParseInt(strings.TrimSpace(record[ColumnPopularity]), 10, 8)
	if err != nil {
		return models.LichessPuzzleImport{}, fmt.Errorf("invalid Popularity: %w", err)
	}
	playCount, err := strconv.ParseUint(strings.TrimSpace(record[ColumnNbPlays]), 10, 32)
	if err != nil {
		return models.LichessPuzzleImport{}, fmt.Errorf("invalid NbPlays: %w", err)
	}
	themes, err := models.ParseThemes(record[ColumnThemes])
	if err != nil {
		return models.LichessPuzzleImport{}, fmt.Errorf("invalid Themes: %w", err)
	}

	return models.LichessPuzzleImport{
		PuzzleID:        record[ColumnPuzzleID],
		FEN:             record[ColumnFEN],
		Moves:           record[ColumnMoves],
		Rating:          uint16(rating),
		RatingDeviation: uint16(ratingDeviation),
		Popularity:      int8(popularity),
		PlayCount:       uint32(playCount),
		Themes:          themes,
		GameURL:         record[ColumnGameURL],
	}, nil
}

// IsHeader reports whether record is the dataset header row
func (c *Converter) IsHeader(record []string) bool {
	return len(record) > 0 && strings.TrimPrefix(record[0], "\ufeff") == HeaderPuzzleID
}
