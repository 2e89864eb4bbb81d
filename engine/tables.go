package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

// Board indexing helpers. Tables below are written from White's point of
// view with rank 1 on the first row; Black mirrors through FlipView.
var FlipView = [64]int{
	56, 57, 58, 59, 60, 61, 62, 63,
	48, 49, 50, 51, 52, 53, 54, 55,
	40, 41, 42, 43, 44, 45, 46, 47,
	32, 33, 34, 35, 36, 37, 38, 39,
	24, 25, 26, 27, 28, 29, 30, 31,
	16, 17, 18, 19, 20, 21, 22, 23,
	8, 9, 10, 11, 12, 13, 14, 15,
	0, 1, 2, 3, 4, 5, 6, 7,
}

var PositionBB [65]uint64
var KingMoves [64]uint64
var KnightMasks [64]uint64

const (
	bitboardFileA uint64 = 0x0101010101010101
	bitboardFileH uint64 = 0x8080808080808080
	rank1Mask     uint64 = 0x00000000000000ff
	rank8Mask     uint64 = 0xff00000000000000
	rimMask       uint64 = bitboardFileA | bitboardFileH
	// d4, e4, d5, e5
	centerMask uint64 = 0x0000001818000000
)

// Centipawn piece values, indexed by dragontoothmg.Piece.
var PieceValue = [7]int{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 320,
	dragontoothmg.Bishop: 330,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
	dragontoothmg.King:   20000,
}

// Piece-square tables. Hand-tuned around the classic "simplified eval"
// numbers, with a mild kingside lean for the knights so development
// toward f3/f6 is preferred when everything else ties.
var PSQT = [7][64]int{
	dragontoothmg.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 25, 0, 0, 0,
		5, 5, 10, 25, 27, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	dragontoothmg.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	dragontoothmg.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	dragontoothmg.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	dragontoothmg.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
}

// Middlegame king wants shelter; endgame king wants the center.
var KingPSQTMiddlegame = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var KingPSQTEndgame = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

// Knight f3/f6 nudge, applied on top of the symmetric table.
var knightKingsideNudge = map[int]int{21: 5, 45: 5} // f3, f6 (white view)

func init() {
	initPositionBB()
	initPSQTAdjustments()
}

func initPositionBB() {
	for sq := 0; sq < 64; sq++ {
		PositionBB[sq] = uint64(1) << uint(sq)
		sqBB := PositionBB[sq]

		top := sqBB >> 8
		topRight := (sqBB >> 8 >> 1) & ^bitboardFileH
		topLeft := (sqBB >> 8 << 1) & ^bitboardFileA
		right := (sqBB >> 1) & ^bitboardFileH
		left := (sqBB << 1) & ^bitboardFileA
		bottom := sqBB << 8
		bottomRight := (sqBB << 8 >> 1) & ^bitboardFileH
		bottomLeft := (sqBB << 8 << 1) & ^bitboardFileA
		KingMoves[sq] = top | topRight | topLeft | right | left | bottom | bottomRight | bottomLeft

		noNoEa := (sqBB << 17) & ^bitboardFileA
		noEaEa := (sqBB << 10) & ^(bitboardFileA | bitboardFileA<<1)
		soEaEa := (sqBB >> 6) & ^(bitboardFileA | bitboardFileA<<1)
		soSoEa := (sqBB >> 15) & ^bitboardFileA
		noNoWe := (sqBB << 15) & ^bitboardFileH
		noWeWe := (sqBB << 6) & ^(bitboardFileH | bitboardFileH>>1)
		soWeWe := (sqBB >> 10) & ^(bitboardFileH | bitboardFileH>>1)
		soSoWe := (sqBB >> 17) & ^bitboardFileH
		KnightMasks[sq] = noNoEa | noEaEa | soEaEa | soSoEa | noNoWe | noWeWe | soWeWe | soSoWe
	}
	PositionBB[64] = 0
}

func initPSQTAdjustments() {
	for sq, bonus := range knightKingsideNudge {
		PSQT[dragontoothmg.Knight][sq] += bonus
	}
}

// pawnCaptureBitboards returns the east and west capture targets of the
// given pawn set, for White when forWhite is true.
func pawnCaptureBitboards(pawns uint64, forWhite bool) (east uint64, west uint64) {
	if forWhite {
		east = (pawns << 9) & ^bitboardFileA
		west = (pawns << 7) & ^bitboardFileH
		return east, west
	}
	east = (pawns >> 7) & ^bitboardFileA
	west = (pawns >> 9) & ^bitboardFileH
	return east, west
}
