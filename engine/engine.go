// Package engine implements an adaptive move-search engine for chess:
// alpha-beta minimax with quiescence under an anytime iterative
// deepening driver, with heuristic time budgeting scaled by a
// difficulty level and by how tactically critical the position looks.
//
// Move legality, apply/undo and board representation come from
// dragontoothmg; this package only ever plays moves that generator
// produced or validated. A single Engine instance is stateful per game
// session (time bank, position history) and is not safe for concurrent
// searches; use one instance per concurrent game.
//
// Known trade-off: at high difficulty the root move list can be
// truncated to a beam by a cheap ordering pass before the expensive
// hang-detection pass runs. A safe move misranked by the cheap pass
// can fall outside the beam. That behavior is inherited deliberately
// and is controlled by Options.BeamWidth.
package engine

import (
	"errors"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoLegalMoves means a move was requested for a position with no
	// legal moves. The caller reached a terminal position and should
	// have noticed; this is a precondition violation, not a draw.
	ErrNoLegalMoves = errors.New("engine: no legal moves in position")
	// ErrSearchFoundNoMove means the search finished without producing
	// a move on a position that has legal moves. It indicates a broken
	// search and is never recovered from silently.
	ErrSearchFoundNoMove = errors.New("engine: search did not find a move")
	// ErrIllegalMove means the requested move is not legal in the
	// current position. The position is left untouched.
	ErrIllegalMove = errors.New("engine: illegal move requested")
)

// SearchResult is the fixed diagnostics record of one move search.
type SearchResult struct {
	Move       dragontoothmg.Move
	Depth      int8
	Evaluation int // centipawns, positive favors White
	Elapsed    time.Duration
	TimedOut   bool
	Nodes      uint64
	PV         []dragontoothmg.Move
	FromBook   bool
	FromLearn  bool
}

// IterativeOptions parameterizes ComputeMoveIterative.
type IterativeOptions struct {
	MinDepth          int8
	MaxDepth          int8
	TimeLimitMs       int64
	MinTimePerDepthMs int64
}

// Engine is one game session's move searcher. It owns the time bank
// and the position history for that session. Concurrent use of one
// Engine is not supported; create independent instances instead.
type Engine struct {
	level       Level
	timeManager *TimeManager
	history     *GameHistory
	store       LearningStore
	biasCache   map[string]int
}

// New creates an engine at the given difficulty level (1-8).
func New(levelNumber int) *Engine {
	level := LevelByNumber(levelNumber)
	return &Engine{
		level:       level,
		timeManager: NewTimeManager(level.BaseTimePerMoveMs, level.MaxTimePerMoveMs, level.MaxBankMs),
		biasCache:   make(map[string]int),
	}
}

// SetLearningStore attaches an optional persisted learning store. A
// nil store disables bias and learned-move lookups.
func (e *Engine) SetLearningStore(store LearningStore) {
	e.store = store
}

// Level returns the difficulty settings the engine was built with.
func (e *Engine) Level() Level {
	return e.level
}

// TimeManager exposes the per-game time account, mainly for callers
// that settle move times themselves.
func (e *Engine) TimeManager() *TimeManager {
	return e.timeManager
}

// NewGame clears all per-game state: the time bank, the position
// history and the bias cache. Nothing leaks across games.
func (e *Engine) NewGame(board *dragontoothmg.Board) {
	e.timeManager.Reset()
	e.history = NewGameHistory(board)
	e.biasCache = make(map[string]int)
}

func (e *Engine) ensureHistory(board *dragontoothmg.Board) *GameHistory {
	if e.history == nil {
		e.history = NewGameHistory(board)
	}
	return e.history
}

// ApplyMove validates and plays a move on the board, recording it in
// the game history. An illegal move leaves the position untouched and
// returns ErrIllegalMove.
func (e *Engine) ApplyMove(board *dragontoothmg.Board, move dragontoothmg.Move) error {
	legal := false
	for _, lm := range board.GenerateLegalMoves() {
		if lm == move {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalMove
	}
	history := e.ensureHistory(board)
	history.Sync(board)
	board.Apply(move)
	history.push(board)
	return nil
}

// ComputeMove searches the position to the given nominal depth within
// the given wall-clock budget. A budget of zero or less means no
// deadline. Running out of time is not an error: the best move found
// so far comes back with TimedOut set.
func (e *Engine) ComputeMove(board *dragontoothmg.Board, depth int8, timeBudgetMs int64, opts Options) (*SearchResult, error) {
	if len(board.GenerateLegalMoves()) == 0 {
		return nil, ErrNoLegalMoves
	}

	start := time.Now()
	var deadline time.Time
	hasDeadline := timeBudgetMs > 0
	if hasDeadline {
		deadline = start.Add(time.Duration(timeBudgetMs) * time.Millisecond)
	}

	history := e.ensureHistory(board)
	sc := newSearchContext(board, history, opts, biasFromStore(e.store, e.biasCache), deadline, hasDeadline)

	center := sc.sideEval()
	move, score, pv, searched := sc.searchRootWithAspiration(depth, center)
	if searched == 0 {
		return nil, ErrSearchFoundNoMove
	}

	return &SearchResult{
		Move:       move,
		Depth:      depth,
		Evaluation: whiteView(score, board.Wtomove),
		Elapsed:    time.Since(start),
		TimedOut:   sc.timedOut,
		Nodes:      sc.nodes,
		PV:         pv.Moves,
	}, nil
}

// AnalyzeCriticality exposes the criticality heuristic for
// diagnostics. It is a pure function of the position.
func (e *Engine) AnalyzeCriticality(board *dragontoothmg.Board) CriticalityAssessment {
	return AnalyzeCriticality(board)
}

// SelectMove is the full per-move flow: consult the opening book and
// the learning store, then budget time from the criticality assessment
// and run the iterative deepening search. It settles the time account
// afterwards.
func (e *Engine) SelectMove(board *dragontoothmg.Board) (*SearchResult, error) {
	legalMoves := board.GenerateLegalMoves()
	if len(legalMoves) == 0 {
		return nil, ErrNoLegalMoves
	}

	if e.level.UseOpeningBook {
		if move, ok := probeOpeningBook(board); ok {
			log.Debug().Str("move", move.String()).Msg("book move")
			return &SearchResult{
				Move:       move,
				Evaluation: Evaluate(board),
				FromBook:   true,
			}, nil
		}
	}

	if e.level.LearnedMoveMinConfidence > 0 {
		if move, ok := learnedMove(e.store, board, e.level.LearnedMoveMinConfidence); ok {
			log.Debug().Str("move", move.String()).Msg("learned move")
			return &SearchResult{
				Move:       move,
				Evaluation: Evaluate(board),
				FromLearn:  true,
			}, nil
		}
	}

	criticality := AnalyzeCriticality(board)
	moveNumber := int(board.Fullmoveno)
	budget := e.timeManager.CalculateMoveTime(criticality, moveNumber)

	maxDepth := e.level.MaxDepth + criticality.RecommendedDepthBonus
	start := time.Now()
	result, err := e.ComputeMoveIterative(board, IterativeOptions{
		MinDepth:    e.level.MinDepth,
		MaxDepth:    maxDepth,
		TimeLimitMs: budget.AllocatedMs,
	})
	if err != nil {
		return nil, err
	}

	e.timeManager.RecordMoveTime(budget.AllocatedMs, time.Since(start).Milliseconds())
	return result, nil
}

// whiteView converts a side-to-move score to the White-positive
// orientation used in results.
func whiteView(score int, whiteToMove bool) int {
	if whiteToMove {
		return score
	}
	return -score
}
