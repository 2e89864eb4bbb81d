package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
)

const (
	// MateScore is the base magnitude for checkmate scores; remaining
	// depth is folded in so nearer mates score higher.
	MateScore = 100000
	// ScoreInfinity bounds the alpha-beta window above any mate score.
	ScoreInfinity = 1000000
	// MaxSearchPly hard-caps the recursion, quiescence included.
	MaxSearchPly = 64
)

// PVLine holds the principal variation found below a node.
// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []dragontoothmg.Move
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
}

// Update the principal variation line with a new best move, and the
// line of best play after it.
func (pvLine *PVLine) Update(move dragontoothmg.Move, childLine PVLine) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, move)
	pvLine.Moves = append(pvLine.Moves, childLine.Moves...)
}

func (pvLine *PVLine) Clone() PVLine {
	return PVLine{Moves: append([]dragontoothmg.Move(nil), pvLine.Moves...)}
}

func (pvLine PVLine) String() string {
	var s string
	for i, m := range pvLine.Moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}

// searchContext carries the mutable state of one top-level search
// invocation: the borrowed board, the deadline, and the counters. It is
// created per call and never shared, so independent Engine instances
// (and sequential searches on one instance) cannot contaminate each
// other.
type searchContext struct {
	board   *dragontoothmg.Board
	history *GameHistory
	opts    Options
	bias    BiasFunc

	deadline    time.Time
	hasDeadline bool
	timedOut    bool
	nodes       uint64
	rootIndex   int
}

func newSearchContext(board *dragontoothmg.Board, history *GameHistory, opts Options, bias BiasFunc, deadline time.Time, hasDeadline bool) *searchContext {
	history.Sync(board)
	return &searchContext{
		board:       board,
		history:     history,
		opts:        opts,
		bias:        bias,
		deadline:    deadline,
		hasDeadline: hasDeadline,
		rootIndex:   history.top(),
	}
}

func (sc *searchContext) deadlineExpired() bool {
	return sc.hasDeadline && !time.Now().Before(sc.deadline)
}

// sideEval is the static evaluation from the side to move's point of
// view, the orientation the negamax recursion works in.
func (sc *searchContext) sideEval() int {
	eval := evaluateWithBias(sc.board, sc.bias)
	if !sc.board.Wtomove {
		return -eval
	}
	return eval
}

// apply plays a move on the shared board and returns the undo closure.
// Board and history move together; every exit path of the search must
// call the closure exactly once.
func (sc *searchContext) apply(move dragontoothmg.Move) func() {
	unapply := sc.board.Apply(move)
	sc.history.push(sc.board)
	return func() {
		unapply()
		sc.history.pop()
	}
}

// alphabeta is a negamax search with alpha-beta pruning: the returned
// score is from the side to move's point of view. On deadline expiry it
// unwinds with the static evaluation rather than an error; the caller
// sees the truncation through sc.timedOut.
func (sc *searchContext) alphabeta(depth int8, ply int8, alpha int, beta int, pvLine *PVLine) int {
	sc.nodes++

	if sc.deadlineExpired() {
		sc.timedOut = true
		return sc.sideEval()
	}

	if ply > 0 && sc.history.isDraw(sc.rootIndex) {
		return 0
	}

	if ply >= MaxSearchPly {
		return sc.sideEval()
	}

	// Terminal detection runs before the depth check so a depth-1
	// search still sees mate in one.
	moves := sc.board.GenerateLegalMoves()
	if len(moves) == 0 {
		if sc.board.OurKingInCheck() {
			return -(MateScore + int(depth)*1000)
		}
		return 0
	}

	if depth <= 0 {
		if sc.opts.UseQuiescence {
			return sc.quiescence(sc.opts.QuiescenceDepth, ply, alpha, beta, pvLine)
		}
		return sc.sideEval()
	}

	list := scoreMoves(sc.board, moves)
	var childPVLine PVLine
	bestScore := -ScoreInfinity

	for index := 0; index < len(list.moves); index++ {
		orderNextMove(index, &list)
		move := list.moves[index].move

		unapply := sc.apply(move)
		score := -sc.alphabeta(depth-1, ply+1, -beta, -alpha, &childPVLine)
		unapply()

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
			pvLine.Update(move, childPVLine)
		}
		if sc.timedOut {
			break
		}
		if beta <= alpha {
			break
		}
		childPVLine.Clear()
	}

	return bestScore
}

// quiescence extends the search through forcing moves only, so the
// leaf evaluation lands on a quiet position instead of mid-exchange.
func (sc *searchContext) quiescence(depth int8, ply int8, alpha int, beta int, pvLine *PVLine) int {
	sc.nodes++

	if sc.deadlineExpired() {
		sc.timedOut = true
		return sc.sideEval()
	}

	inCheck := sc.board.OurKingInCheck()
	moves := sc.board.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -MateScore
		}
		return 0
	}

	standPat := sc.sideEval()
	if depth <= 0 || ply >= MaxSearchPly {
		return standPat
	}

	// Stand-pat: the side to move may decline all further tactics, so
	// a static score already at beta cuts off. Not available in check.
	if !inCheck {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var list moveList
	if inCheck {
		list = scoreMoves(sc.board, moves)
	} else {
		list = scoreForcingMoves(sc.board, moves)
	}

	bestScore := standPat
	if inCheck {
		bestScore = -ScoreInfinity
	}

	var childPVLine PVLine
	for index := 0; index < len(list.moves); index++ {
		orderNextMove(index, &list)
		move := list.moves[index].move

		unapply := sc.apply(move)
		score := -sc.quiescence(depth-1, ply+1, -beta, -alpha, &childPVLine)
		unapply()

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
			pvLine.Update(move, childPVLine)
		}
		if sc.timedOut {
			break
		}
		if beta <= alpha {
			break
		}
		childPVLine.Clear()
	}

	return bestScore
}

// rootSearch runs one fixed-depth search over the root candidates and
// returns the best move with its side-to-move score. searched reports
// how many root moves completed before any deadline hit.
func (sc *searchContext) rootSearch(depth int8, alpha int, beta int) (bestMove dragontoothmg.Move, bestScore int, pv PVLine, searched int) {
	moves := sc.board.GenerateLegalMoves()
	list := scoreRootMoves(sc.board, moves, sc.opts.BeamWidth)

	bestScore = -ScoreInfinity
	var childPVLine PVLine

	for index := 0; index < len(list.moves); index++ {
		if index > 0 && sc.deadlineExpired() {
			sc.timedOut = true
			break
		}
		move := list.moves[index].move

		unapply := sc.apply(move)
		score := -sc.alphabeta(depth-1, 1, -beta, -alpha, &childPVLine)
		unapply()
		searched++

		// A truncated subtree returns a partial score; it may only
		// stand in when no candidate completed at all.
		if sc.timedOut {
			if bestMove == 0 {
				bestMove = move
				bestScore = score
				pv.Update(move, childPVLine)
			}
			break
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			pv.Update(move, childPVLine)
		}
		if score > alpha {
			alpha = score
		}
		if beta <= alpha {
			break
		}
		childPVLine.Clear()
	}

	return bestMove, bestScore, pv, searched
}

// searchRootWithAspiration wraps rootSearch in an aspiration window
// centered on a prior score estimate, widening and re-searching on a
// fail-high or fail-low, the usual way.
func (sc *searchContext) searchRootWithAspiration(depth int8, center int) (dragontoothmg.Move, int, PVLine, int) {
	window := sc.opts.AspirationWindowCp
	if !sc.opts.UseAspiration || window <= 0 {
		return sc.rootSearch(depth, -ScoreInfinity, ScoreInfinity)
	}

	alpha := center - window
	beta := center + window
	for {
		move, score, pv, searched := sc.rootSearch(depth, alpha, beta)
		if sc.timedOut || (score > alpha && score < beta) {
			return move, score, pv, searched
		}
		window *= 2
		if window >= ScoreInfinity/2 {
			alpha = -ScoreInfinity
			beta = ScoreInfinity
			continue
		}
		alpha = score - window
		beta = score + window
	}
}
