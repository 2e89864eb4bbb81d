// Command analyze prints the static evaluation, the criticality
// assessment and the ranked root moves for a position. Useful when a
// move the engine played needs explaining.
//
// Usage: analyze "<fen>" [depth]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"github.com/chesschat/engine/engine"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	fen := dragontoothmg.Startpos
	if len(os.Args) > 1 {
		fen = os.Args[1]
	}
	depth := 4
	if len(os.Args) > 2 {
		if d, err := strconv.Atoi(os.Args[2]); err == nil && d > 0 {
			depth = d
		}
	}

	board := dragontoothmg.ParseFen(fen)

	fmt.Println("position:", board.ToFen())
	fmt.Println("static eval (cp, white-positive):", engine.Evaluate(&board))

	crit := engine.AnalyzeCriticality(&board)
	fmt.Printf("criticality: %d critical=%v multiplier=%.1f depthBonus=%d\n",
		crit.Score, crit.IsCritical, crit.RecommendedTimeMultiplier, crit.RecommendedDepthBonus)
	for _, reason := range crit.Reasons {
		fmt.Println("  -", reason)
	}

	eng := engine.New(6)
	eng.NewGame(&board)
	result, err := eng.ComputeMove(&board, int8(depth), 30000, engine.Options{
		UseQuiescence:   true,
		QuiescenceDepth: 8,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "search failed:", err)
		os.Exit(1)
	}
	fmt.Printf("best move: %s eval=%d depth=%d nodes=%d elapsed=%s timedOut=%v\n",
		result.Move.String(), result.Evaluation, result.Depth, result.Nodes,
		result.Elapsed, result.TimedOut)
}
