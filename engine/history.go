package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

const fiftyMoveLimit = 100

type histState struct {
	hash   uint64
	rule50 int
}

// GameHistory tracks the hashes seen in one game so the search can
// recognize threefold repetitions and fifty-move draws. The apply/undo
// wrappers in the search push and pop it in lockstep with the board, so
// it must never be shared between concurrent searches.
type GameHistory struct {
	states []histState
}

func NewGameHistory(board *dragontoothmg.Board) *GameHistory {
	h := &GameHistory{states: make([]histState, 0, 256)}
	h.push(board)
	return h
}

// Reset rebuilds the history so it only contains the current board.
func (h *GameHistory) Reset(board *dragontoothmg.Board) {
	h.states = h.states[:0]
	h.push(board)
}

// Sync guarantees the top of the history reflects the board position,
// rebuilding from scratch when the caller moved the board without
// telling us.
func (h *GameHistory) Sync(board *dragontoothmg.Board) {
	if len(h.states) == 0 {
		h.push(board)
		return
	}
	last := &h.states[len(h.states)-1]
	if last.hash != board.Hash() {
		h.Reset(board)
		return
	}
	last.rule50 = int(board.Halfmoveclock)
}

func (h *GameHistory) push(board *dragontoothmg.Board) {
	h.states = append(h.states, histState{
		hash:   board.Hash(),
		rule50: int(board.Halfmoveclock),
	})
}

func (h *GameHistory) pop() {
	if len(h.states) == 0 {
		return
	}
	h.states = h.states[:len(h.states)-1]
}

func (h *GameHistory) top() int {
	return len(h.states) - 1
}

// isDraw reports whether the current position is drawn by the fifty
// move rule or by repetition. A single repetition inside the search
// tree (at or past rootIndex) already counts as a draw: the opponent
// can force it.
func (h *GameHistory) isDraw(rootIndex int) bool {
	if len(h.states) == 0 {
		return false
	}
	curr := h.states[len(h.states)-1]
	if curr.rule50 >= fiftyMoveLimit {
		return true
	}

	count, firstIdx := h.repetitionInfo(curr.hash, curr.rule50)
	if count >= 2 {
		return true
	}
	return count >= 1 && firstIdx >= rootIndex && firstIdx != -1
}

func (h *GameHistory) repetitionInfo(hash uint64, rule50 int) (count int, firstIdx int) {
	firstIdx = -1
	if len(h.states) <= 1 {
		return 0, firstIdx
	}
	start := len(h.states) - 1 - rule50
	if start < 0 {
		start = 0
	}
	end := len(h.states) - 2
	for i := start; i <= end; i++ {
		if h.states[i].hash == hash {
			count++
			if firstIdx == -1 {
				firstIdx = i
			}
		}
	}
	return count, firstIdx
}
