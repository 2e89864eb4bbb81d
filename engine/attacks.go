package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// GetPieceTypeAtPosition reports which piece of the given side, if any,
// sits on the square.
func GetPieceTypeAtPosition(position uint8, bitboards *dragontoothmg.Bitboards) (pieceType dragontoothmg.Piece, occupied bool) {
	if bitboards.Pawns&(1<<position) > 0 {
		return dragontoothmg.Pawn, true
	} else if bitboards.Knights&(1<<position) > 0 {
		return dragontoothmg.Knight, true
	} else if bitboards.Bishops&(1<<position) > 0 {
		return dragontoothmg.Bishop, true
	} else if bitboards.Rooks&(1<<position) > 0 {
		return dragontoothmg.Rook, true
	} else if bitboards.Queens&(1<<position) > 0 {
		return dragontoothmg.Queen, true
	} else if bitboards.Kings&(1<<position) > 0 {
		return dragontoothmg.King, true
	}
	return 0, false
}

// attackersOf returns the bitboard of pieces belonging to usBB that hit
// targetSquare on the current occupancy. The scan is pseudo-legal and
// turn-agnostic: pins, checks and whose move it is are all ignored.
func attackersOf(targetSquare uint8, usBB *dragontoothmg.Bitboards, occupancy uint64, usIsWhite bool) uint64 {
	targetBB := PositionBB[targetSquare]

	var hitPieces uint64
	east, west := pawnCaptureBitboards(usBB.Pawns, usIsWhite)
	if (east|west)&targetBB != 0 {
		// Walk the pawns to find which ones reach the target.
		for x := usBB.Pawns; x != 0; x &= x - 1 {
			bb := PositionBB[bits.TrailingZeros64(x)]
			e, w := pawnCaptureBitboards(bb, usIsWhite)
			if (e|w)&targetBB != 0 {
				hitPieces |= bb
			}
		}
	}

	orthogonal := dragontoothmg.CalculateRookMoveBitboard(targetSquare, occupancy)
	diagonal := dragontoothmg.CalculateBishopMoveBitboard(targetSquare, occupancy)

	hitPieces |= orthogonal & (usBB.Rooks | usBB.Queens)
	hitPieces |= diagonal & (usBB.Bishops | usBB.Queens)
	hitPieces |= KnightMasks[targetSquare] & usBB.Knights
	hitPieces |= KingMoves[targetSquare] & usBB.Kings

	return hitPieces
}

// countAttackersAndDefenders counts, for the side that just moved to
// targetSquare, how many enemy pieces attack the square and how many
// friendly pieces defend it. moverIsWhite refers to the side owning the
// piece on targetSquare.
func countAttackersAndDefenders(b *dragontoothmg.Board, targetSquare uint8, moverIsWhite bool) (attackers int, defenders int) {
	occupancy := b.White.All | b.Black.All
	if moverIsWhite {
		attackers = bits.OnesCount64(attackersOf(targetSquare, &b.Black, occupancy, false))
		defenders = bits.OnesCount64(attackersOf(targetSquare, &b.White, occupancy, true) &^ PositionBB[targetSquare])
	} else {
		attackers = bits.OnesCount64(attackersOf(targetSquare, &b.White, occupancy, true))
		defenders = bits.OnesCount64(attackersOf(targetSquare, &b.Black, occupancy, false) &^ PositionBB[targetSquare])
	}
	return attackers, defenders
}

// isCapture reports whether the move takes an enemy piece, including the
// en-passant case of a pawn moving diagonally onto an empty square.
func isCapture(b *dragontoothmg.Board, move dragontoothmg.Move) bool {
	var own, enemy *dragontoothmg.Bitboards
	if b.Wtomove {
		own, enemy = &b.White, &b.Black
	} else {
		own, enemy = &b.Black, &b.White
	}
	if enemy.All&PositionBB[move.To()] != 0 {
		return true
	}
	// Pawn changing file onto an empty square is en passant.
	if own.Pawns&PositionBB[move.From()] != 0 && move.From()%8 != move.To()%8 {
		return true
	}
	return false
}

// capturedPieceType returns the type of the piece a move captures, with
// en passant reported as a pawn capture.
func capturedPieceType(b *dragontoothmg.Board, move dragontoothmg.Move) (dragontoothmg.Piece, bool) {
	var enemy *dragontoothmg.Bitboards
	if b.Wtomove {
		enemy = &b.Black
	} else {
		enemy = &b.White
	}
	if piece, occupied := GetPieceTypeAtPosition(move.To(), enemy); occupied {
		return piece, true
	}
	if isCapture(b, move) {
		return dragontoothmg.Pawn, true
	}
	return 0, false
}

// givesCheck reports whether the move would put the opponent in check.
// It applies the move speculatively and undoes it before returning.
func givesCheck(b *dragontoothmg.Board, move dragontoothmg.Move) bool {
	unapply := b.Apply(move)
	inCheck := b.OurKingInCheck()
	unapply()
	return inCheck
}
