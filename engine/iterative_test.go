package engine

import (
	"testing"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterativeAlwaysReturnsLegalMove(t *testing.T) {
	// Anytime contract: whatever the budget, the move that comes back
	// must be playable.
	budgets := []int64{1, 10, 50, 200, 0}
	for _, budgetMs := range budgets {
		e := New(6)
		board := dragontoothmg.ParseFen(middlegameFEN)

		result, err := e.ComputeMoveIterative(&board, IterativeOptions{
			MinDepth:    1,
			MaxDepth:    3,
			TimeLimitMs: budgetMs,
		})
		require.NoError(t, err, "budget %dms", budgetMs)
		assert.True(t, legalMoveSet(&board)[result.Move], "budget %dms produced illegal move %s", budgetMs, result.Move.String())
		assert.GreaterOrEqual(t, result.Depth, int8(1))
	}
}

func TestIterativeReachesMaxDepthWithoutDeadline(t *testing.T) {
	e := New(6)
	board := dragontoothmg.ParseFen(middlegameFEN)

	result, err := e.ComputeMoveIterative(&board, IterativeOptions{
		MinDepth: 1,
		MaxDepth: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int8(3), result.Depth)
	assert.False(t, result.TimedOut)
	assert.Greater(t, result.Nodes, uint64(0))
}

func TestIterativeDepthGrowsWithBudget(t *testing.T) {
	board := dragontoothmg.ParseFen(middlegameFEN)

	tiny := New(8)
	small, err := tiny.ComputeMoveIterative(&board, IterativeOptions{
		MinDepth: 1, MaxDepth: 6, TimeLimitMs: 5,
	})
	require.NoError(t, err)

	roomy := New(8)
	large, err := roomy.ComputeMoveIterative(&board, IterativeOptions{
		MinDepth: 1, MaxDepth: 6, TimeLimitMs: 5000,
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, large.Depth, small.Depth)
}

func TestIterativeRespectsBudget(t *testing.T) {
	e := New(8)
	board := dragontoothmg.ParseFen(middlegameFEN)

	start := time.Now()
	result, err := e.ComputeMoveIterative(&board, IterativeOptions{
		MinDepth:    1,
		MaxDepth:    12,
		TimeLimitMs: 100,
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.NotNil(t, result)
	// The driver may finish the iteration in flight, so allow slack
	// beyond the nominal budget but not runaway search.
	assert.Less(t, elapsed, 3*time.Second)
}

func TestIterativeStillFindsMate(t *testing.T) {
	e := New(6)
	board := dragontoothmg.ParseFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")

	result, err := e.ComputeMoveIterative(&board, IterativeOptions{
		MinDepth: 1,
		MaxDepth: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "a1a8", result.Move.String())
	assert.GreaterOrEqual(t, result.Evaluation, MateScore)
}

func TestIterativeTerminalPosition(t *testing.T) {
	e := New(6)
	// Fool's mate delivered, White to move with no legal replies.
	board := dragontoothmg.ParseFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	_, err := e.ComputeMoveIterative(&board, IterativeOptions{MinDepth: 1, MaxDepth: 2})
	assert.ErrorIs(t, err, ErrNoLegalMoves)
}
