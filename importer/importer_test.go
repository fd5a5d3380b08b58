package importer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/loiht2/chess-trainer/models"
	"github.com/loiht2/chess-trainer/repository"
	"github.com/loiht2/chess-trainer/service"
)

const dataset = `PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl,OpeningTags
00008,r6k/pp2r2p/4Rp1Q/3p4/8/1N1P2R1/PqP2bPP/7K b - - 0 24,f2g3 e6e7 b2b1 b3c1 b1c1 h6c1,1760,80,83,72,crushing hangingPiece long middlegame,https://lichess.org/787zsVup/black#48,
0000D,5rk1/1p3ppp/pq3b2/8/8/1P1Q1N2/P4PPP/3R2K1 w - - 2 27,d3d6 f8d8 d6d8 f6d8,1582,74,95,2961,advantage endgame short,https://lichess.org/F8M8OS71#53,
0009B,r2qr1k1/b1p2ppp/pp4n1/P1P1p3/4P1n1/B2P2Pb/3NBP1P/RN1QR1K1 b - - 1 16,b6c5 e2g4 h3g4 d1g4,1103,75,-128,569,advantage opening short,https://lichess.org/4MWQCxQ6/black#32,Kings_Pawn_Game
000Vc,8/8/4k1p1/2KpP2p/5PP1/8/8/8 w - - 0 53,g4h5 g6h5 f4f5 e6e5,1560,76,92,90,crushing endgame notATheme,https://lichess.org/l6AejDMO#105,
000Zo,4r3/1k6/pp3r2/1b2P2p/3R1p2/P1R2P2/1P4PP/6K1 w - - 0 35,e5f6 e8e1 g1f2 e1f1,1377,72,-100,95,endgame mate mateIn2 short,https://lichess.org/n8Ff742v#69,
00143,r2q1rk1/ppp2ppp/2n5/3p4/3P4/2PB1N2/P4PPP/R2Q1RK1 w - - 0 12,too short
`

func newService() *service.PuzzleService {
	return service.NewPuzzleService(
		repository.NewInMemoryPuzzleRepository(),
		repository.NewInMemoryTrainingSetRepository(),
		nil,
	)
}

func TestRun(t *testing.T) {
	svc := newService()

	result, err := New(svc, zaptest.NewLogger(t)).Run(context.Background(), strings.NewReader(dataset))
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 3, Failed: 3}, result)

	puzzles, err := svc.ListPuzzles(context.Background())
	require.NoError(t, err)
	require.Len(t, puzzles, 3)

	assert.Equal(t, models.Puzzle{
		ID:                     1,
		FEN:                    "r6k/pp2r2p/4Rp1Q/3p4/8/1N1P2R1/PqP2bPP/7K b - - 0 24",
		Moves:                  "f2g3 e6e7 b2b1 b3c1 b1c1 h6c1",
		LichessID:              "00008",
		LichessRating:          1760,
		LichessRatingDeviation: 80,
		LichessPopularity:      83,
		LichessPlayCount:       72,
		Themes:                 []models.Theme{models.ThemeCrushing, models.ThemeHangingPiece, models.ThemeLong, models.ThemeMiddlegame},
		LichessGameURL:         "https://lichess.org/787zsVup/black#48",
	}, puzzles[0])

	lichessIDs := make([]string, len(puzzles))
	for i, p := range puzzles {
		lichessIDs[i] = p.LichessID
	}
	assert.Equal(t, []string{"00008", "0000D", "000Zo"}, lichessIDs)
	assert.Equal(t, int8(-100), puzzles[2].LichessPopularity)
}

func TestRunWithoutHeader(t *testing.T) {
	svc := newService()
	body := strings.SplitN(dataset, "\n", 2)[1]

	result, err := New(svc, nil).Run(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 3, Failed: 3}, result)
}

func TestRunEmptyInput(t *testing.T) {
	result, err := New(newService(), nil).Run(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
}

func TestRunCountsUnreadableRows(t *testing.T) {
	input := "00008,\"bad\"quote,m,1,1,1,1,fork,u\n" +
		"0000D,fen,moves,1500,80,50,10,fork,https://lichess.org/x\n"

	result, err := New(newService(), nil).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 1, Failed: 1}, result)
}

func TestRunStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(newService(), nil).Run(ctx, strings.NewReader(dataset))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Result{}, result)
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestRunAbortsOnReadError(t *testing.T) {
	errBoom := errors.New("connection reset")
	reader := &failingReader{
		data: "0000D,fen,moves,1500,80,50,10,fork,https://lichess.org/x\n",
		err:  errBoom,
	}

	result, err := New(newService(), nil).Run(context.Background(), reader)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, result.Imported)
}

var _ io.Reader = (*failingReader)(nil)
