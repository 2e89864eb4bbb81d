package engine

import (
	"os"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

// A quiet middlegame position that is not in the opening book.
const middlegameFEN = "r2q1rk1/pp2bppp/2n1pn2/3p4/3P1B2/2NBPN2/PP3PPP/R2Q1RK1 w - - 4 10"

func legalMoveSet(b *dragontoothmg.Board) map[dragontoothmg.Move]bool {
	set := make(map[dragontoothmg.Move]bool)
	for _, m := range b.GenerateLegalMoves() {
		set[m] = true
	}
	return set
}

func TestApplyMoveRejectsIllegalMoveWithoutMutation(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	eng := New(4)
	eng.NewGame(&board)

	before := board.ToFen()
	move, err := dragontoothmg.ParseMove("e2e5")
	require.NoError(t, err)

	err = eng.ApplyMove(&board, move)
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, before, board.ToFen(), "illegal move must not touch the position")
}

func TestApplyMovePlaysLegalMove(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	eng := New(4)
	eng.NewGame(&board)

	move, err := dragontoothmg.ParseMove("e2e4")
	require.NoError(t, err)
	require.NoError(t, eng.ApplyMove(&board, move))
	assert.False(t, board.Wtomove)
}

func TestSelectMoveReturnsLegalMove(t *testing.T) {
	board := dragontoothmg.ParseFen(middlegameFEN)
	eng := New(3)
	eng.NewGame(&board)

	result, err := eng.SelectMove(&board)
	require.NoError(t, err)
	assert.True(t, legalMoveSet(&board)[result.Move], "selected move %s not legal", result.Move.String())
	assert.Equal(t, 1, eng.TimeManager().MovesPlayed())
}

func TestSelectMoveUsesOpeningBookOnStartPosition(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	eng := New(6)
	eng.NewGame(&board)

	result, err := eng.SelectMove(&board)
	require.NoError(t, err)
	assert.True(t, result.FromBook)
	assert.True(t, legalMoveSet(&board)[result.Move])
}

func TestComputeMoveOnTerminalPositionFails(t *testing.T) {
	// Fool's mate: White is checkmated.
	board := dragontoothmg.ParseFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	eng := New(4)
	eng.NewGame(&board)

	_, err := eng.ComputeMove(&board, 3, 1000, Options{})
	assert.ErrorIs(t, err, ErrNoLegalMoves)

	_, err = eng.SelectMove(&board)
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}

func TestNewGameResetsSessionState(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	eng := New(5)
	eng.NewGame(&board)

	eng.TimeManager().RecordMoveTime(1000, 200)
	require.NotZero(t, eng.TimeManager().Bank())

	eng.NewGame(&board)
	assert.Zero(t, eng.TimeManager().Bank())
	assert.Zero(t, eng.TimeManager().MovesPlayed())
}
