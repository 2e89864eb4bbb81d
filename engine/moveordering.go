package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

// Move ordering bonuses. Captures carry a flat offset on top of
// MVV-LVA so they rank above every quiet heuristic; the safety penalty
// is deliberately large enough to sink a bad capture underneath them.
var (
	captureBonus        = 8000
	centerDestBonus     = 40
	developmentBonus    = 30
	castlingBonus       = 60
	givesCheckBonus     = 50
	safetyPenaltyFactor = 20
)

type scoredMove struct {
	move     dragontoothmg.Move
	score    int
	captured dragontoothmg.Piece
}

type moveList struct {
	moves []scoredMove
}

// orderNextMove selection-sorts the single best remaining move into
// position currIndex. Cheaper than sorting the whole list when a beta
// cutoff usually arrives within the first few moves.
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := currIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// mvvLva is the Most-Valuable-Victim / Least-Valuable-Attacker capture
// score: a queen taken by a pawn outranks a pawn taken by a queen.
func mvvLva(victim, attacker dragontoothmg.Piece) int {
	return PieceValue[victim]*10 - PieceValue[attacker]/10
}

// cheapMoveScore ranks a move without touching the board: captures by
// MVV-LVA, then positional hints. Used on its own for the root beam
// pass and as the base score everywhere else.
func cheapMoveScore(b *dragontoothmg.Board, move dragontoothmg.Move) (int, dragontoothmg.Piece) {
	var own *dragontoothmg.Bitboards
	if b.Wtomove {
		own = &b.White
	} else {
		own = &b.Black
	}

	score := 0
	captured, capture := capturedPieceType(b, move)
	mover, _ := GetPieceTypeAtPosition(move.From(), own)

	if capture {
		score += captureBonus + mvvLva(captured, mover)
	}
	if move.Promote() != 0 {
		score += PieceValue[move.Promote()]
	}
	if PositionBB[move.To()]&centerMask != 0 {
		score += centerDestBonus
	}
	if mover == dragontoothmg.Knight || mover == dragontoothmg.Bishop {
		fromHome := PositionBB[move.From()] & (rank1Mask | rank8Mask)
		toHome := PositionBB[move.To()] & (rank1Mask | rank8Mask)
		if fromHome != 0 && toHome == 0 {
			score += developmentBonus
		}
	}
	if mover == dragontoothmg.King && absDelta(move.From(), move.To()) == 2 {
		score += castlingBonus
	}
	return score, captured
}

// safetyAdjustedScore adds the speculative parts of the priority: the
// give-check bonus and the hanging-piece penalty. Both need an apply,
// so this only runs for captures and checks (and every root survivor).
func safetyAdjustedScore(b *dragontoothmg.Board, move dragontoothmg.Move, base int) int {
	score := base

	var own *dragontoothmg.Bitboards
	moverIsWhite := b.Wtomove
	if moverIsWhite {
		own = &b.White
	} else {
		own = &b.Black
	}
	mover, _ := GetPieceTypeAtPosition(move.From(), own)

	unapply := b.Apply(move)
	if b.OurKingInCheck() {
		score += givesCheckBonus
	}
	attackers, defenders := countAttackersAndDefenders(b, move.To(), moverIsWhite)
	unapply()

	if attackers > defenders {
		score -= safetyPenaltyFactor * PieceValue[mover]
	}
	return score
}

// scoreMoves ranks all moves for an interior node. The safety pass is
// bounded to captures and checking moves; quiet non-checking moves keep
// their cheap score.
func scoreMoves(b *dragontoothmg.Board, moves []dragontoothmg.Move) moveList {
	list := moveList{moves: make([]scoredMove, len(moves))}
	for i, move := range moves {
		score, captured := cheapMoveScore(b, move)
		if captured != 0 || givesCheck(b, move) {
			score = safetyAdjustedScore(b, move, score)
		}
		list.moves[i] = scoredMove{move: move, score: score, captured: captured}
	}
	return list
}

// scoreRootMoves ranks the root candidates. With a positive beamWidth
// the cheap pass truncates the list first so the expensive safety pass
// only runs on the survivors; beamWidth <= 0 keeps every candidate.
// Note the truncation can drop the lone safe move when the cheap
// heuristic misranks it; see the package documentation.
func scoreRootMoves(b *dragontoothmg.Board, moves []dragontoothmg.Move, beamWidth int) moveList {
	list := moveList{moves: make([]scoredMove, len(moves))}
	for i, move := range moves {
		score, captured := cheapMoveScore(b, move)
		list.moves[i] = scoredMove{move: move, score: score, captured: captured}
	}

	slices.SortStableFunc(list.moves, func(a, b scoredMove) bool {
		return a.score > b.score
	})

	if beamWidth > 0 && len(list.moves) > beamWidth {
		list.moves = list.moves[:beamWidth]
	}

	for i := range list.moves {
		list.moves[i].score = safetyAdjustedScore(b, list.moves[i].move, list.moves[i].score)
	}

	slices.SortStableFunc(list.moves, func(a, b scoredMove) bool {
		return a.score > b.score
	})
	return list
}

// scoreForcingMoves keeps only the forcing moves (captures, checks,
// promotions), MVV-LVA ordered, for the quiescence search.
func scoreForcingMoves(b *dragontoothmg.Board, moves []dragontoothmg.Move) moveList {
	var own *dragontoothmg.Bitboards
	if b.Wtomove {
		own = &b.White
	} else {
		own = &b.Black
	}

	list := moveList{moves: make([]scoredMove, 0, len(moves))}
	for _, move := range moves {
		captured, capture := capturedPieceType(b, move)
		promotion := move.Promote() != 0
		if !capture && !promotion && !givesCheck(b, move) {
			continue
		}
		score := 0
		if capture {
			mover, _ := GetPieceTypeAtPosition(move.From(), own)
			score = mvvLva(captured, mover)
		}
		if promotion {
			score += PieceValue[move.Promote()]
		}
		list.moves = append(list.moves, scoredMove{move: move, score: score, captured: captured})
	}
	return list
}

func absDelta(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
