package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// Iterative deepening budget heuristics. Each depth costs roughly a
// branching factor more than the last; the estimate carries a safety
// margin, and the driver stops once most of the budget is gone even if
// the next depth looks affordable.
const (
	depthGrowthFactor  = 5.0
	growthSafetyMargin = 1.2
	budgetStopFraction = 0.95
)

// ComputeMoveIterative searches the position at increasing depth until
// the time budget or MaxDepth is reached. The contract is anytime:
// whatever the budget, the result carries a legal move from the last
// iteration that produced one, so interrupting the driver at any point
// still yields a reasonable move.
func (e *Engine) ComputeMoveIterative(board *dragontoothmg.Board, req IterativeOptions) (*SearchResult, error) {
	if len(board.GenerateLegalMoves()) == 0 {
		return nil, ErrNoLegalMoves
	}

	minDepth := req.MinDepth
	if minDepth < 1 {
		minDepth = 1
	}
	maxDepth := req.MaxDepth
	if maxDepth < minDepth {
		maxDepth = minDepth
	}

	start := time.Now()
	var deadline time.Time
	hasDeadline := req.TimeLimitMs > 0
	if hasDeadline {
		deadline = start.Add(time.Duration(req.TimeLimitMs) * time.Millisecond)
	}

	history := e.ensureHistory(board)
	bias := biasFromStore(e.store, e.biasCache)
	opts := e.level.options()

	var best *SearchResult
	prevScore := 0
	haveScore := false
	totalNodes := uint64(0)

	for depth := minDepth; depth <= maxDepth; depth++ {
		iterStart := time.Now()

		sc := newSearchContext(board, history, opts, bias, deadline, hasDeadline)
		if !haveScore || !opts.UseAspiration {
			sc.opts.UseAspiration = false
		}

		move, score, pv, searched := sc.searchRootWithAspiration(depth, prevScore)
		iterElapsed := time.Since(iterStart)
		totalNodes += sc.nodes

		if searched > 0 {
			// A completed iteration always supersedes the previous
			// one. A truncated iteration only counts when there is
			// nothing better to fall back on.
			if best == nil || !sc.timedOut {
				best = &SearchResult{
					Move:       move,
					Depth:      depth,
					Evaluation: whiteView(score, board.Wtomove),
					TimedOut:   sc.timedOut,
					Nodes:      totalNodes,
					PV:         pv.Moves,
				}
				prevScore = score
				haveScore = true
			}
		}

		log.Debug().
			Int8("depth", depth).
			Int("score", score).
			Uint64("nodes", sc.nodes).
			Dur("elapsed", iterElapsed).
			Bool("timedOut", sc.timedOut).
			Str("pv", pv.String()).
			Msg("iteration complete")

		if sc.timedOut {
			break
		}
		if !hasDeadline {
			continue
		}

		elapsed := time.Since(start)
		budget := time.Duration(req.TimeLimitMs) * time.Millisecond
		if elapsed >= time.Duration(float64(budget)*budgetStopFraction) {
			break
		}

		remaining := budget - elapsed
		if req.MinTimePerDepthMs > 0 && remaining < time.Duration(req.MinTimePerDepthMs)*time.Millisecond {
			break
		}
		estimate := time.Duration(float64(iterElapsed) * depthGrowthFactor * growthSafetyMargin)
		if estimate > remaining {
			break
		}
	}

	if best == nil {
		// A position with legal moves where not even the first
		// iteration produced a move means a broken search.
		return nil, ErrSearchFoundNoMove
	}

	best.Elapsed = time.Since(start)
	best.TimedOut = best.TimedOut || (hasDeadline && !time.Now().Before(deadline))
	return best, nil
}
