package engine

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// LearningStore is the optional persisted learning backend. All engine
// consumption is failure-absorbing: an erroring or missing store can
// only ever cost accuracy, never a move.
type LearningStore interface {
	// PositionBias returns a centipawn adjustment for the position,
	// zero when the position is unknown.
	PositionBias(key string) (int, error)
	// LearnedMove returns a previously learned move in UCI notation
	// for the position, if one exists at or above minConfidence.
	LearnedMove(key string, minConfidence float64) (move string, ok bool, err error)
}

// positionKey is the canonical store key for a position: the first
// four FEN fields, so move counters don't fragment the data.
func positionKey(b *dragontoothmg.Board) string {
	fields := strings.Fields(b.ToFen())
	if len(fields) < 4 {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:4], " ")
}

// learnedMove consults the store for a trusted move and validates it
// against the legal set. Anything that goes wrong degrades to "no
// learned move".
func learnedMove(store LearningStore, b *dragontoothmg.Board, minConfidence float64) (dragontoothmg.Move, bool) {
	if store == nil {
		return 0, false
	}
	key := positionKey(b)
	moveStr, ok, err := store.LearnedMove(key, minConfidence)
	if err != nil {
		log.Debug().Err(err).Str("position", key).Msg("learned move lookup failed")
		return 0, false
	}
	if !ok {
		return 0, false
	}
	move, err := dragontoothmg.ParseMove(moveStr)
	if err != nil {
		log.Debug().Err(err).Str("move", moveStr).Msg("learned move unparseable")
		return 0, false
	}
	for _, legal := range b.GenerateLegalMoves() {
		if legal == move {
			return move, true
		}
	}
	log.Debug().Str("move", moveStr).Str("position", key).Msg("learned move not legal here")
	return 0, false
}
