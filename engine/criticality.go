package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// CriticalityAssessment is the per-move snapshot of how tactically
// sharp a position is. It is recomputed fresh every move and never
// persisted.
type CriticalityAssessment struct {
	Score                     int
	IsCritical                bool
	Reasons                   []string
	RecommendedTimeMultiplier float64
	RecommendedDepthBonus     int8
}

const criticalScoreThreshold = 40

// AnalyzeCriticality scores the tactical sharpness of a position on a
// 0-100 scale without searching. The score drives time allocation: a
// sharp position earns a bigger slice of the clock and extra depth.
func AnalyzeCriticality(b *dragontoothmg.Board) CriticalityAssessment {
	assessment := CriticalityAssessment{}
	score := 0

	moves := b.GenerateLegalMoves()
	inCheck := b.OurKingInCheck()

	if inCheck {
		score += 35
		assessment.Reasons = append(assessment.Reasons, "in check")
	}

	score += captureSharpness(b, moves, &assessment)
	score += branchingOutlier(len(moves), &assessment)
	score += materialImbalanceScore(b, &assessment)
	score += pieceCountScore(b, &assessment)
	score += mateThreatScore(b, moves, &assessment)
	score += hangingPieceScore(b, &assessment)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	assessment.Score = score
	assessment.IsCritical = score >= criticalScoreThreshold
	assessment.RecommendedTimeMultiplier = timeMultiplierForScore(score)
	assessment.RecommendedDepthBonus = depthBonusForScore(score)
	return assessment
}

// captureSharpness awards the single largest capture-related bump:
// queen trade > major-piece capture > many captures > any capture.
func captureSharpness(b *dragontoothmg.Board, moves []dragontoothmg.Move, assessment *CriticalityAssessment) int {
	var own *dragontoothmg.Bitboards
	if b.Wtomove {
		own = &b.White
	} else {
		own = &b.Black
	}

	captures := 0
	queenTrade := false
	majorCapture := false
	for _, move := range moves {
		victim, capture := capturedPieceType(b, move)
		if !capture {
			continue
		}
		captures++
		attacker, _ := GetPieceTypeAtPosition(move.From(), own)
		if victim == dragontoothmg.Queen && attacker == dragontoothmg.Queen {
			queenTrade = true
		}
		if victim == dragontoothmg.Queen || victim == dragontoothmg.Rook {
			majorCapture = true
		}
	}

	switch {
	case queenTrade:
		assessment.Reasons = append(assessment.Reasons, "queen trade available")
		return 40
	case majorCapture:
		assessment.Reasons = append(assessment.Reasons, "major piece capture available")
		return 30
	case captures >= 3:
		assessment.Reasons = append(assessment.Reasons, "multiple captures available")
		return 20
	case captures >= 1:
		assessment.Reasons = append(assessment.Reasons, "capture available")
		return 10
	}
	return 0
}

func branchingOutlier(moveCount int, assessment *CriticalityAssessment) int {
	if moveCount > 35 {
		assessment.Reasons = append(assessment.Reasons, "high branching factor")
		return 15
	}
	if moveCount < 15 {
		assessment.Reasons = append(assessment.Reasons, "forcing position")
		return 10
	}
	return 0
}

func materialImbalanceScore(b *dragontoothmg.Board, assessment *CriticalityAssessment) int {
	white := nonPawnMaterial(&b.White) + PieceValue[dragontoothmg.Pawn]*bits.OnesCount64(b.White.Pawns)
	black := nonPawnMaterial(&b.Black) + PieceValue[dragontoothmg.Pawn]*bits.OnesCount64(b.Black.Pawns)
	diff := white - black
	if diff < 0 {
		diff = -diff
	}

	pawnEquivalents := diff / PieceValue[dragontoothmg.Pawn]
	if pawnEquivalents > 5 {
		assessment.Reasons = append(assessment.Reasons, "large material imbalance")
		return 25
	}
	if pawnEquivalents > 3 {
		assessment.Reasons = append(assessment.Reasons, "material imbalance")
		return 15
	}
	return 0
}

func pieceCountScore(b *dragontoothmg.Board, assessment *CriticalityAssessment) int {
	nonKing := bits.OnesCount64((b.White.All | b.Black.All) &^ (b.White.Kings | b.Black.Kings))
	if nonKing <= 12 {
		assessment.Reasons = append(assessment.Reasons, "endgame precision")
		return 20
	}
	if nonKing <= 16 {
		assessment.Reasons = append(assessment.Reasons, "late middlegame")
		return 10
	}
	return 0
}

// mateThreatScore runs a 1-ply scan over our checking moves: an
// immediate mate, or a check that leaves the opponent two replies or
// fewer, marks the position as sharp.
func mateThreatScore(b *dragontoothmg.Board, moves []dragontoothmg.Move, assessment *CriticalityAssessment) int {
	for _, move := range moves {
		unapply := b.Apply(move)
		if b.OurKingInCheck() {
			replies := len(b.GenerateLegalMoves())
			if replies == 0 || replies <= 2 {
				unapply()
				assessment.Reasons = append(assessment.Reasons, "mate threat")
				return 30
			}
		}
		unapply()
	}
	return 0
}

// hangingPieceScore counts undefended, attackable non-pawn pieces of
// the side to move, capped at three.
func hangingPieceScore(b *dragontoothmg.Board, assessment *CriticalityAssessment) int {
	var own, enemy *dragontoothmg.Bitboards
	ownIsWhite := b.Wtomove
	if ownIsWhite {
		own, enemy = &b.White, &b.Black
	} else {
		own, enemy = &b.Black, &b.White
	}

	occupancy := b.White.All | b.Black.All
	hanging := 0
	pieces := (own.Knights | own.Bishops | own.Rooks | own.Queens) &^ own.Kings
	for x := pieces; x != 0; x &= x - 1 {
		sq := uint8(bits.TrailingZeros64(x))
		attacked := attackersOf(sq, enemy, occupancy, !ownIsWhite) != 0
		if !attacked {
			continue
		}
		defended := attackersOf(sq, own, occupancy, ownIsWhite)&^PositionBB[sq] != 0
		if !defended {
			hanging++
			if hanging == 3 {
				break
			}
		}
	}
	if hanging > 0 {
		assessment.Reasons = append(assessment.Reasons, "hanging pieces")
	}
	return 15 * hanging
}

func timeMultiplierForScore(score int) float64 {
	switch {
	case score < 20:
		return 0.5
	case score < 40:
		return 1.0
	case score < 60:
		return 1.5
	case score < 80:
		return 2.0
	default:
		return 2.5
	}
}

func depthBonusForScore(score int) int8 {
	switch {
	case score < 40:
		return 0
	case score < 60:
		return 1
	default:
		return 2
	}
}
