package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/loiht2/chess-trainer/converter"
	"github.com/loiht2/chess-trainer/models"
)

// PuzzleImporter stores a single validated dataset row
type PuzzleImporter interface {
	ImportPuzzle(ctx context.Context, puzzle models.LichessPuzzleImport) (models.Puzzle, error)
}

// Result counts the rows of one import run
type Result struct {
	Imported int
	Failed   int
}

// Importer streams a Lichess puzzle CSV into a PuzzleImporter
type Importer struct {
	target    PuzzleImporter
	converter *converter.Converter
	logger    *zap.Logger
}

// New creates an importer writing into target
func New(target PuzzleImporter, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		target:    target,
		converter: converter.NewConverter(),
		logger:    logger,
	}
}

// Run imports every row of r. Rows that fail to parse or validate are
// counted and skipped; only read errors and cancellation stop the run.
// A leading header row is detected and skipped.
func (i *Importer) Run(ctx context.Context, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var result Result
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			result.Failed++
			i.logger.Debug("Skipping unreadable row", zap.Int("row", row), zap.Error(err))
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		if row == 1 && i.converter.IsHeader(record) {
			continue
		}

		puzzle, err := i.converter.ParseRecord(record)
		if err != nil {
			result.Failed++
			i.logger.Debug("Skipping malformed row", zap.Int("row", row), zap.Error(err))
			continue
		}

		if _, err := i.target.ImportPuzzle(ctx, puzzle); err != nil {
			result.Failed++
			i.logger.Debug("Skipping rejected puzzle",
				zap.Int("row", row),
				zap.String("puzzle_id", puzzle.PuzzleID),
				zap.Error(err))
			continue
		}
		result.Imported++
	}

	i.logger.Info("Import finished",
		zap.Int("imported", result.Imported),
		zap.Int("failed", result.Failed))
	return result, nil
}
