package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"lukechampine.com/frand"
)

// openingBook is a small static table of sound opening moves, keyed by
// positionKey. No theory beyond a handful of mainline positions; the
// search takes over as soon as the game leaves the table.
var openingBook = map[string][]string{
	// Start position.
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -": {"e2e4", "d2d4", "g1f3", "c2c4"},
	// 1.e4
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3": {"e7e5", "c7c5", "e7e6", "c7c6"},
	// 1.d4
	"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3": {"d7d5", "g8f6", "e7e6"},
	// 1.Nf3
	"rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKBNR b KQkq -": {"d7d5", "g8f6", "c7c5"},
	// 1.c4
	"rnbqkbnr/pppppppp/8/8/2P5/8/PP1PPPPP/RNBQKBNR b KQkq c3": {"e7e5", "g8f6", "c7c5"},
	// 1.e4 e5
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6": {"g1f3", "f1c4", "b1c3"},
	// 1.e4 c5 (Sicilian)
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6": {"g1f3", "b1c3", "c2c3"},
	// 1.d4 d5
	"rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq d6": {"c2c4", "g1f3", "c1f4"},
	// 1.d4 Nf6
	"rnbqkb1r/pppppppp/5n2/8/3P4/8/PPP1PPPP/RNBQKBNR w KQkq -": {"c2c4", "g1f3"},
	// 1.e4 e5 2.Nf3
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq -": {"b8c6", "g8f6"},
	// 1.e4 e5 2.Nf3 Nc6
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq -": {"f1b5", "f1c4", "d2d4"},
}

// probeOpeningBook returns a book move for the position when one
// exists, validated against the legal move set. Ties between
// candidates break randomly so the engine doesn't play the same
// opening every game.
func probeOpeningBook(b *dragontoothmg.Board) (dragontoothmg.Move, bool) {
	candidates, ok := openingBook[positionKey(b)]
	if !ok || len(candidates) == 0 {
		return 0, false
	}

	legal := b.GenerateLegalMoves()
	playable := make([]dragontoothmg.Move, 0, len(candidates))
	for _, moveStr := range candidates {
		move, err := dragontoothmg.ParseMove(moveStr)
		if err != nil {
			continue
		}
		for _, lm := range legal {
			if lm == move {
				playable = append(playable, move)
				break
			}
		}
	}
	if len(playable) == 0 {
		return 0, false
	}
	return playable[frand.Intn(len(playable))], true
}
