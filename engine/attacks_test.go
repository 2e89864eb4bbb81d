package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square converts algebraic notation to a 0-63 index, a1 = 0.
func square(t *testing.T, alg string) uint8 {
	t.Helper()
	require.Len(t, alg, 2)
	file := alg[0] - 'a'
	rank := alg[1] - '1'
	return rank*8 + file
}

func TestGetPieceTypeAtPosition(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)

	piece, occupied := GetPieceTypeAtPosition(square(t, "e1"), &board.White)
	assert.True(t, occupied)
	assert.Equal(t, dragontoothmg.Piece(dragontoothmg.King), piece)

	piece, occupied = GetPieceTypeAtPosition(square(t, "b1"), &board.White)
	assert.True(t, occupied)
	assert.Equal(t, dragontoothmg.Piece(dragontoothmg.Knight), piece)

	_, occupied = GetPieceTypeAtPosition(square(t, "e4"), &board.White)
	assert.False(t, occupied)

	// Black pieces are invisible through the White bitboards.
	_, occupied = GetPieceTypeAtPosition(square(t, "e8"), &board.White)
	assert.False(t, occupied)
}

func TestCountAttackersAndDefenders(t *testing.T) {
	// Black queen on d5 is attacked by the e4 pawn and the d2 queen,
	// defended by the c6 pawn.
	board := dragontoothmg.ParseFen("6k1/5ppp/2p5/3q4/4P3/8/3Q1PPP/6K1 w - - 0 1")

	attackers, defenders := countAttackersAndDefenders(&board, square(t, "d5"), false)
	assert.Equal(t, 2, attackers)
	assert.Equal(t, 1, defenders)
}

func TestIsCaptureAndVictimType(t *testing.T) {
	board := dragontoothmg.ParseFen("6k1/5ppp/2p5/3q4/4P3/8/3Q1PPP/6K1 w - - 0 1")

	take := mustMove(t, "e4d5")
	assert.True(t, isCapture(&board, take))
	victim, ok := capturedPieceType(&board, take)
	require.True(t, ok)
	assert.Equal(t, dragontoothmg.Piece(dragontoothmg.Queen), victim)

	push := mustMove(t, "e4e5")
	assert.False(t, isCapture(&board, push))
	_, ok = capturedPieceType(&board, push)
	assert.False(t, ok)
}

func TestIsCaptureEnPassant(t *testing.T) {
	// 1.e4 d5 2.e5 f5: exf6 takes en passant, landing on an empty
	// square.
	board := dragontoothmg.ParseFen("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	ep := mustMove(t, "e5f6")
	require.True(t, legalMoveSet(&board)[ep])

	assert.True(t, isCapture(&board, ep))
	victim, ok := capturedPieceType(&board, ep)
	require.True(t, ok)
	assert.Equal(t, dragontoothmg.Piece(dragontoothmg.Pawn), victim)
}

func TestGivesCheck(t *testing.T) {
	board := dragontoothmg.ParseFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")

	assert.True(t, givesCheck(&board, mustMove(t, "a1a8")))
	assert.False(t, givesCheck(&board, mustMove(t, "a1a2")))
	assert.Equal(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", board.ToFen())
}

func TestAttackersOfSliderBlocking(t *testing.T) {
	// The rook on a1 attacks a8 on an empty file but not once a piece
	// blocks at a4.
	open := dragontoothmg.ParseFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	occupancy := open.White.All | open.Black.All
	assert.NotZero(t, attackersOf(square(t, "a8"), &open.White, occupancy, true))

	blocked := dragontoothmg.ParseFen("6k1/5ppp/8/8/N7/8/5PPP/R5K1 w - - 0 1")
	occupancy = blocked.White.All | blocked.Black.All
	assert.Zero(t, attackersOf(square(t, "a8"), &blocked.White, occupancy, true))
}
