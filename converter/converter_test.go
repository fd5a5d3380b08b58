package converter

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loiht2/chess-trainer/models"
)

func validRecord() []string {
	return []string{
		"00008",
		"r6k/pp2r2p/4Rp1Q/3p4/8/1N1P2R1/PqP2bPP/7K b - - 0 24",
		"f2g3 e6e7 b2b1 b3c1 b1c1 h6c1",
		"1760",
		"80",
		"83",
		"72",
		"crushing hangingPiece long middlegame",
		"https://lichess.org/787zsVup/black#48",
	}
}

func TestParseRecord(t *testing.T) {
	c := NewConverter()

	puzzle, err := c.ParseRecord(validRecord())
	require.NoError(t, err)
	assert.Equal(t, models.LichessPuzzleImport{
		PuzzleID:        "00008",
		FEN:             "r6k/pp2r2p/4Rp1Q/3p4/8/1N1P2R1/PqP2bPP/7K b - - 0 24",
		Moves:           "f2g3 e6e7 b2b1 b3c1 b1c1 h6c1",
		Rating:          1760,
		RatingDeviation: 80,
		Popularity:      83,
		PlayCount:       72,
		Themes:          []models.Theme{models.ThemeCrushing, models.ThemeHangingPiece, models.ThemeLong, models.ThemeMiddlegame},
		GameURL:         "https://lichess.org/787zsVup/black#48",
	}, puzzle)
}

func TestParseRecordIgnoresTrailingColumns(t *testing.T) {
	record := append(validRecord(), "Kings_Pawn_Game Kings_Pawn_Game_Other")

	puzzle, err := NewConverter().ParseRecord(record)
	require.NoError(t, err)
	assert.Equal(t, "00008", puzzle.PuzzleID)
	assert.Equal(t, "https://lichess.org/787zsVup/black#48", puzzle.GameURL)
}

func TestParseRecordBoundaryValues(t *testing.T) {
	record := validRecord()
	record[ColumnRating] = "65535"
	record[ColumnPopularity] = "-100"
	record[ColumnNbPlays] = "4294967295"
	record[ColumnThemes] = ""

	puzzle, err := NewConverter().ParseRecord(record)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), puzzle.Rating)
	assert.Equal(t, int8(-100), puzzle.Popularity)
	assert.Equal(t, uint32(4294967295), puzzle.PlayCount)
	assert.Empty(t, puzzle.Themes)
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name    string
		column  int
		value   string
		wantErr error
		message string
	}{
		{name: "unknown theme", column: ColumnThemes, value: "fork notATheme", wantErr: models.ErrUnknownTheme, message: "invalid Themes"},
		{name: "popularity overflow", column: ColumnPopularity, value: "200", wantErr: strconv.ErrRange, message: "invalid Popularity"},
		{name: "rating overflow", column: ColumnRating, value: "70000", wantErr: strconv.ErrRange, message: "invalid Rating"},
		{name: "negative rating", column: ColumnRating, value: "-5", wantErr: strconv.ErrSyntax, message: "invalid Rating"},
		{name: "rating deviation text", column: ColumnRatingDeviation, value: "high", wantErr: strconv.ErrSyntax, message: "invalid RatingDeviation"},
		{name: "empty play count", column: ColumnNbPlays, value: "", wantErr: strconv.ErrSyntax, message: "invalid NbPlays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			record[tt.column] = tt.value

			_, err := NewConverter().ParseRecord(record)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseRecordTooFewColumns(t *testing.T) {
	_, err := NewConverter().ParseRecord(validRecord()[:RequiredColumns-1])
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = NewConverter().ParseRecord(nil)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestIsHeader(t *testing.T) {
	c := NewConverter()
	header := []string{"PuzzleId", "FEN", "Moves", "Rating", "RatingDeviation", "Popularity", "NbPlays", "Themes", "GameUrl", "OpeningTags"}

	assert.True(t, c.IsHeader(header))
	header[0] = "\ufeffPuzzleId"
	assert.True(t, c.IsHeader(header))
	assert.False(t, c.IsHeader(validRecord()))
	assert.False(t, c.IsHeader(nil))
}
