package config

import (
	"time"
)

// PuzzleRecord represents a puzzle in the database
type PuzzleRecord struct {
	ID                     uint64              `gorm:"primaryKey;autoIncrement"`
	FEN                    string              `gorm:"not null"`
	Moves                  string              `gorm:"not null"`
	LichessID              string              `gorm:"index;not null"`
	LichessRating          uint16              `gorm:"index;not null"`
	LichessRatingDeviation uint16              `gorm:"not null"`
	LichessPopularity      int8                `gorm:"not null;check:lichess_popularity BETWEEN -100 AND 100"`
	LichessPlayCount       uint32              `gorm:"not null"`
	LichessGameURL         string              `gorm:"type:text"`
	Themes                 []PuzzleThemeRecord `gorm:"foreignKey:PuzzleID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time
}

// TableName overrides the table name
func (PuzzleRecord) TableName() string {
	return "puzzles"
}

// PuzzleThemeRecord tags a puzzle with one theme; Position keeps the dataset order
type PuzzleThemeRecord struct {
	PuzzleID uint64 `gorm:"primaryKey;autoIncrement:false"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	Theme    string `gorm:"index;not null"`
}

// TableName overrides the table name
func (PuzzleThemeRecord) TableName() string {
	return "puzzle_themes"
}

// TrainingSetRecord represents a training set in the database
type TrainingSetRecord struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	Name            string `gorm:"index;not null"`
	RatingMin       uint16
	RatingMax       uint16
	Themes          string `gorm:"type:text"` // JSON theme choice
	CurrentProgress uint32
	CyclesDone      uint32
	Puzzles         []TrainingSetPuzzleRecord `gorm:"foreignKey:TrainingSetID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the table name
func (TrainingSetRecord) TableName() string {
	return "training_sets"
}

// TrainingSetPuzzleRecord references one puzzle of a training set at its sampled position
type TrainingSetPuzzleRecord struct {
	TrainingSetID string `gorm:"primaryKey;type:varchar(36)"`
	Position      int    `gorm:"primaryKey;autoIncrement:false"`
	PuzzleID      uint64 `gorm:"index;not null"`
}

// TableName overrides the table name
func (TrainingSetPuzzleRecord) TableName() string {
	return "training_set_puzzles"
}
