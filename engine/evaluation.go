package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// Evaluation bonuses and penalties, in centipawns.
var (
	CastledBonus            = 40
	KingAdvancePenalty      = 15
	CenterPawnBonus         = 20
	CenterMinorBonus        = 15
	CenterOtherBonus        = 5
	UndevelopedMinorPenalty = 12
	RimKnightPenalty        = 10
	InCheckPenalty          = 25
	EarlyQueenLossPenalty   = 60
)

// Total non-pawn, non-king material (both sides) at or below this means
// the kings should head for the center rather than hide.
var endgameMaterialThreshold = 2600

// Minors still count as "undeveloped on the home rank" after this many
// full moves.
var openingMoveThreshold = 5

// BiasFunc resolves a position-keyed evaluation adjustment. A nil
// BiasFunc means no adjustment.
type BiasFunc func(positionKey string) int

// Evaluate scores the position in centipawns, positive numbers favoring
// White regardless of the side to move. It is deterministic and leaves
// the board untouched.
func Evaluate(b *dragontoothmg.Board) int {
	return evaluateWithBias(b, nil)
}

func evaluateWithBias(b *dragontoothmg.Board, bias BiasFunc) int {
	score := materialAndPlacement(&b.White, true) - materialAndPlacement(&b.Black, false)

	endgame := isEndgameMaterial(b)
	score += kingScore(&b.White, true, endgame) - kingScore(&b.Black, false, endgame)
	score += centerOccupancy(&b.White) - centerOccupancy(&b.Black)

	if int(b.Fullmoveno) > openingMoveThreshold {
		score -= developmentPenalty(&b.White, true)
		score += developmentPenalty(&b.Black, false)
	}

	score -= RimKnightPenalty * bits.OnesCount64(b.White.Knights&rimMask)
	score += RimKnightPenalty * bits.OnesCount64(b.Black.Knights&rimMask)

	if b.OurKingInCheck() {
		if b.Wtomove {
			score -= InCheckPenalty
		} else {
			score += InCheckPenalty
		}
	}

	score += queenLossPenalty(b)

	if bias != nil {
		score += bias(positionKey(b))
	}

	return score
}

// materialAndPlacement sums fixed piece values and piece-square bonuses
// for one side, king placement excluded.
func materialAndPlacement(bb *dragontoothmg.Bitboards, white bool) int {
	score := 0
	score += pieceTypeScore(bb.Pawns, dragontoothmg.Pawn, white)
	score += pieceTypeScore(bb.Knights, dragontoothmg.Knight, white)
	score += pieceTypeScore(bb.Bishops, dragontoothmg.Bishop, white)
	score += pieceTypeScore(bb.Rooks, dragontoothmg.Rook, white)
	score += pieceTypeScore(bb.Queens, dragontoothmg.Queen, white)
	return score
}

func pieceTypeScore(pieces uint64, pieceType dragontoothmg.Piece, white bool) int {
	score := 0
	table := &PSQT[pieceType]
	for x := pieces; x != 0; x &= x - 1 {
		sq := bits.TrailingZeros64(x)
		score += PieceValue[pieceType]
		if white {
			score += table[sq]
		} else {
			score += table[FlipView[sq]]
		}
	}
	return score
}

// kingScore selects the middlegame or endgame king table and, outside
// the endgame, penalizes a king that has wandered off the back rank
// while rewarding a castled one.
func kingScore(bb *dragontoothmg.Bitboards, white bool, endgame bool) int {
	if bb.Kings == 0 {
		return 0
	}
	sq := bits.TrailingZeros64(bb.Kings)
	viewSq := sq
	if !white {
		viewSq = FlipView[sq]
	}

	if endgame {
		return KingPSQTEndgame[viewSq]
	}

	score := KingPSQTMiddlegame[viewSq]
	rank := viewSq / 8
	score -= KingAdvancePenalty * rank
	file := viewSq % 8
	if rank == 0 && (file == 6 || file == 2) {
		score += CastledBonus
	}
	return score
}

func centerOccupancy(bb *dragontoothmg.Bitboards) int {
	score := CenterPawnBonus * bits.OnesCount64(bb.Pawns&centerMask)
	score += CenterMinorBonus * bits.OnesCount64((bb.Knights|bb.Bishops)&centerMask)
	score += CenterOtherBonus * bits.OnesCount64((bb.Rooks|bb.Queens)&centerMask)
	return score
}

func developmentPenalty(bb *dragontoothmg.Bitboards, white bool) int {
	homeRank := rank1Mask
	if !white {
		homeRank = rank8Mask
	}
	return UndevelopedMinorPenalty * bits.OnesCount64((bb.Knights|bb.Bishops)&homeRank)
}

// queenLossPenalty discourages trading the queen away early: the side
// that is queenless while the opponent keeps theirs and real material
// remains on the board eats a flat penalty.
func queenLossPenalty(b *dragontoothmg.Board) int {
	wQueens := bits.OnesCount64(b.White.Queens)
	bQueens := bits.OnesCount64(b.Black.Queens)
	if wQueens == bQueens {
		return 0
	}
	if isEndgameMaterial(b) {
		return 0
	}
	if wQueens == 0 && bQueens > 0 {
		return -EarlyQueenLossPenalty
	}
	if bQueens == 0 && wQueens > 0 {
		return EarlyQueenLossPenalty
	}
	return 0
}

func isEndgameMaterial(b *dragontoothmg.Board) bool {
	return nonPawnMaterial(&b.White)+nonPawnMaterial(&b.Black) <= endgameMaterialThreshold
}

func nonPawnMaterial(bb *dragontoothmg.Bitboards) int {
	material := PieceValue[dragontoothmg.Knight] * bits.OnesCount64(bb.Knights)
	material += PieceValue[dragontoothmg.Bishop] * bits.OnesCount64(bb.Bishops)
	material += PieceValue[dragontoothmg.Rook] * bits.OnesCount64(bb.Rooks)
	material += PieceValue[dragontoothmg.Queen] * bits.OnesCount64(bb.Queens)
	return material
}

// biasFromStore wraps a LearningStore into a BiasFunc with a per-game
// cache. Lookup failures are absorbed: the bias falls back to zero and
// the failure is only worth a debug line.
func biasFromStore(store LearningStore, cache map[string]int) BiasFunc {
	if store == nil {
		return nil
	}
	return func(key string) int {
		if v, ok := cache[key]; ok {
			return v
		}
		v, err := store.PositionBias(key)
		if err != nil {
			log.Debug().Err(err).Str("position", key).Msg("bias lookup failed, using zero")
			v = 0
		}
		cache[key] = v
		return v
	}
}
