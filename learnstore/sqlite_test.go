package learnstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPositionBiasUnknownKeyIsZero(t *testing.T) {
	store := openTestStore(t)
	bias, err := store.PositionBias("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)
	assert.Equal(t, 0, bias)
}

func TestRecordBiasRoundTrip(t *testing.T) {
	store := openTestStore(t)
	key := "8/8/8/8/8/8/8/K6k w - -"

	require.NoError(t, store.RecordBias(key, 40))
	bias, err := store.PositionBias(key)
	require.NoError(t, err)
	assert.Equal(t, 40, bias)
}

func TestRecordBiasRunningAverage(t *testing.T) {
	store := openTestStore(t)
	key := "8/8/8/8/8/8/8/K6k w - -"

	require.NoError(t, store.RecordBias(key, 40))
	require.NoError(t, store.RecordBias(key, 20))

	bias, err := store.PositionBias(key)
	require.NoError(t, err)
	assert.Equal(t, 30, bias)
}

func TestLearnedMoveConfidenceFiltering(t *testing.T) {
	store := openTestStore(t)
	key := "startpos"

	require.NoError(t, store.RecordMove(key, "e2e4", 0.9))
	require.NoError(t, store.RecordMove(key, "d2d4", 0.6))

	move, ok, err := store.LearnedMove(key, 0.5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "e2e4", move)

	_, ok, err = store.LearnedMove(key, 0.95)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLearnedMoveUnknownPosition(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.LearnedMove("no such key", 0.1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordMoveKeepsBestConfidence(t *testing.T) {
	store := openTestStore(t)
	key := "startpos"

	require.NoError(t, store.RecordMove(key, "e2e4", 0.9))
	require.NoError(t, store.RecordMove(key, "e2e4", 0.4))

	move, ok, err := store.LearnedMove(key, 0.85)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "e2e4", move)
}
