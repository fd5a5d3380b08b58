package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loiht2/chess-trainer/config"
	"github.com/loiht2/chess-trainer/models"
)

// findBatchSize bounds the puzzle ids bound into one query, well under the
// SQLite and Postgres bind parameter limits
const findBatchSize = 500

// GormPuzzleRepository handles puzzle database operations
type GormPuzzleRepository struct {
	db *gorm.DB

	// guards sampling.rng
	mu       sync.Mutex
	sampling sampling
}

// NewGormPuzzleRepository creates a new puzzle repository instance
func NewGormPuzzleRepository(db *gorm.DB, opts ...Option) *GormPuzzleRepository {
	return &GormPuzzleRepository{db: db, sampling: newSampling(opts)}
}

// Create inserts the puzzle and its themes in one transaction
func (r *GormPuzzleRepository) Create(ctx context.Context, create models.CreatePuzzle) (models.Puzzle, error) {
	record := &config.PuzzleRecord{
		FEN:                    create.FEN,
		Moves:                  create.Moves,
		LichessID:              create.LichessID,
		LichessRating:          create.LichessRating,
		LichessRatingDeviation: create.LichessRatingDeviation,
		LichessPopularity:      create.LichessPopularity,
		LichessPlayCount:       create.LichessPlayCount,
		LichessGameURL:         create.LichessGameURL,
	}
	for i, t := range create.Themes {
		record.Themes = append(record.Themes, config.PuzzleThemeRecord{Position: i, Theme: string(t)})
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return models.Puzzle{}, fmt.Errorf("failed to create puzzle %s: %w", create.LichessID, err)
	}
	return toPuzzle(record)
}

// Find lists all puzzles ordered by ID. Rows are read in batches so the
// theme preload never binds more than findBatchSize puzzle ids.
func (r *GormPuzzleRepository) Find(ctx context.Context) ([]models.Puzzle, error) {
	out := make([]models.Puzzle, 0)
	var batch []config.PuzzleRecord
	err := r.withThemes(ctx).FindInBatches(&batch, findBatchSize, func(_ *gorm.DB, _ int) error {
		puzzles, err := toPuzzles(batch)
		if err != nil {
			return err
		}
		out = append(out, puzzles...)
		return nil
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	return out, nil
}

// candidateRow is a matching puzzle id with its first theme, NULL when untagged
type candidateRow struct {
	ID    uint64
	Theme *string
}

// FindRandom samples over lightweight candidates (id and first theme), then
// loads only the chosen rows, returned in sampling order.
func (r *GormPuzzleRepository) FindRandom(ctx context.Context, count int, rating models.RatingRange, themes models.ThemeChoice) ([]models.Puzzle, error) {
	query := r.db.WithContext(ctx).
		Model(&config.PuzzleRecord{}).
		Select("puzzles.id AS id, puzzle_themes.theme AS theme").
		Joins("LEFT JOIN puzzle_themes ON puzzle_themes.puzzle_id = puzzles.id AND puzzle_themes.position = 0").
		Where("puzzles.lichess_rating BETWEEN ? AND ?", rating.Min, rating.Max)

	if !themes.IsHealthyMix() {
		names := make([]string, 0, len(themes.Themes()))
		for _, t := range themes.Themes() {
			names = append(names, string(t))
		}
		if len(names) == 0 {
			return []models.Puzzle{}, nil
		}
		query = query.Where("puzzles.id IN (?)",
			r.db.Model(&config.PuzzleThemeRecord{}).Select("puzzle_id").Where("theme IN ?", names))
	}

	var rows []candidateRow
	if err := query.Order("puzzles.id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query puzzle candidates: %w", err)
	}
	candidates := make([]models.Puzzle, len(rows))
	for i, row := range rows {
		candidates[i].ID = row.ID
		if row.Theme != nil {
			candidates[i].Themes = []models.Theme{models.Theme(*row.Theme)}
		}
	}

	r.mu.Lock()
	sampled := r.sampling.samplerFor(themes).Sample(r.sampling.rng, candidates, count)
	r.mu.Unlock()

	ids := make([]models.PuzzleID, len(sampled))
	for i, p := range sampled {
		ids[i] = p.ID
	}
	return r.findByIDs(ctx, ids)
}

// findByIDs loads puzzles with their themes in the order of ids
func (r *GormPuzzleRepository) findByIDs(ctx context.Context, ids []models.PuzzleID) ([]models.Puzzle, error) {
	byID := make(map[models.PuzzleID]models.Puzzle, len(ids))
	for start := 0; start < len(ids); start += findBatchSize {
		end := min(start+findBatchSize, len(ids))
		var records []config.PuzzleRecord
		if err := r.withThemes(ctx).Where("id IN ?", ids[start:end]).Find(&records).Error; err != nil {
			return nil, fmt.Errorf("failed to load sampled puzzles: %w", err)
		}
		puzzles, err := toPuzzles(records)
		if err != nil {
			return nil, err
		}
		for _, p := range puzzles {
			byID[p.ID] = p
		}
	}

	out := make([]models.Puzzle, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("sampled puzzle %d disappeared", id)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *GormPuzzleRepository) withThemes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Themes", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func toPuzzles(records []config.PuzzleRecord) ([]models.Puzzle, error) {
	out := make([]models.Puzzle, 0, len(records))
	for i := range records {
		p, err := toPuzzle(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toPuzzle(record *config.PuzzleRecord) (models.Puzzle, error) {
	themes := make([]models.Theme, 0, len(record.Themes))
	for _, tr := range record.Themes {
		t, err := models.ParseTheme(tr.Theme)
		if err != nil {
			return models.Puzzle{}, fmt.Errorf("puzzle %d: %w", record.ID, err)
		}
		themes = append(themes, t)
	}
	return models.Puzzle{
		ID:                     record.ID,
		FEN:                    record.FEN,
		Moves:                  record.Moves,
		LichessID:              record.LichessID,
		LichessRating:          record.LichessRating,
		LichessRatingDeviation: record.LichessRatingDeviation,
		LichessPopularity:      record.LichessPopularity,
		LichessPlayCount:       record.LichessPlayCount,
		Themes:                 themes,
		LichessGameURL:         record.LichessGameURL,
	}, nil
}

// GormTrainingSetRepository handles training set database operations
type GormTrainingSetRepository struct {
	db *gorm.DB
}

// NewGormTrainingSetRepository creates a new training set repository instance
func NewGormTrainingSetRepository(db *gorm.DB) *GormTrainingSetRepository {
	return &GormTrainingSetRepository{db: db}
}

// Create inserts the set and its ordered puzzle references in one transaction
func (r *GormTrainingSetRepository) Create(ctx context.Context, create models.CreateTrainingSet) (models.TrainingSet, error) {
	themesJSON, err := json.Marshal(create.Themes)
	if err != nil {
		return models.TrainingSet{}, fmt.Errorf("failed to marshal theme choice: %w", err)
	}

	record := &config.TrainingSetRecord{
		ID:              uuid.New().String(),
		Name:            create.Name,
		RatingMin:       create.Rating.Min,
		RatingMax:       create.Rating.Max,
		Themes:          string(themesJSON),
		CurrentProgress: create.CurrentProgress,
		CyclesDone:      create.CyclesDone,
	}
	for i, id := range create.PuzzleIDs {
		record.Puzzles = append(record.Puzzles, config.TrainingSetPuzzleRecord{Position: i, PuzzleID: id})
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return models.TrainingSet{}, fmt.Errorf("failed to create training set: %w", err)
	}
	return toTrainingSet(record)
}

// FindByID retrieves a training set by ID
func (r *GormTrainingSetRepository) FindByID(ctx context.Context, id models.TrainingSetID) (models.TrainingSet, error) {
	var record config.TrainingSetRecord
	err := r.db.WithContext(ctx).
		Preload("Puzzles", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("id = ?", id.String()).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TrainingSet{}, ErrNotFound
	}
	if err != nil {
		return models.TrainingSet{}, fmt.Errorf("failed to get training set %s: %w", id, err)
	}
	return toTrainingSet(&record)
}

func toTrainingSet(record *config.TrainingSetRecord) (models.TrainingSet, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return models.TrainingSet{}, fmt.Errorf("invalid training set id %q: %w", record.ID, err)
	}
	var themes models.ThemeChoice
	if err := json.Unmarshal([]byte(record.Themes), &themes); err != nil {
		return models.TrainingSet{}, fmt.Errorf("failed to unmarshal theme choice: %w", err)
	}
	puzzleIDs := make([]models.PuzzleID, 0, len(record.Puzzles))
	for _, p := range record.Puzzles {
		puzzleIDs = append(puzzleIDs, p.PuzzleID)
	}
	return models.TrainingSet{
		ID:              id,
		PuzzleIDs:       puzzleIDs,
		Name:            record.Name,
		Rating:          models.RatingRange{Min: record.RatingMin, Max: record.RatingMax},
		Themes:          themes,
		CurrentProgress: record.CurrentProgress,
		CyclesDone:      record.CyclesDone,
	}, nil
}
