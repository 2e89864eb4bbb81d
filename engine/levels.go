package engine

// Level bundles everything a difficulty setting controls: search depth
// range, the per-move time envelope, and which search refinements are
// switched on.
type Level struct {
	Number int

	MinDepth int8
	MaxDepth int8

	BaseTimePerMoveMs int64
	MaxTimePerMoveMs  int64
	MaxBankMs         int64

	UseQuiescence      bool
	QuiescenceDepth    int8
	BeamWidth          int
	UseAspiration      bool
	AspirationWindowCp int

	// Minimum confidence required before a learned move short-circuits
	// the search. Zero disables learned-move lookups at this level.
	LearnedMoveMinConfidence float64

	UseOpeningBook bool
}

// levels is the difficulty ladder, 1 (beginner) through 8 (strongest).
// Lower levels search shallow and fast with no refinements; higher
// levels add quiescence, aspiration windows, the opening book and a
// wider time envelope with a real bank.
var levels = []Level{
	{Number: 1, MinDepth: 1, MaxDepth: 1, BaseTimePerMoveMs: 300, MaxTimePerMoveMs: 500, MaxBankMs: 0},
	{Number: 2, MinDepth: 1, MaxDepth: 2, BaseTimePerMoveMs: 400, MaxTimePerMoveMs: 800, MaxBankMs: 1000},
	{Number: 3, MinDepth: 1, MaxDepth: 2, BaseTimePerMoveMs: 600, MaxTimePerMoveMs: 1200, MaxBankMs: 2000,
		UseQuiescence: true, QuiescenceDepth: 4, UseOpeningBook: true},
	{Number: 4, MinDepth: 1, MaxDepth: 3, BaseTimePerMoveMs: 800, MaxTimePerMoveMs: 2000, MaxBankMs: 3000,
		UseQuiescence: true, QuiescenceDepth: 4, UseOpeningBook: true},
	{Number: 5, MinDepth: 2, MaxDepth: 3, BaseTimePerMoveMs: 1200, MaxTimePerMoveMs: 3000, MaxBankMs: 5000,
		UseQuiescence: true, QuiescenceDepth: 6, UseOpeningBook: true, LearnedMoveMinConfidence: 0.8},
	{Number: 6, MinDepth: 2, MaxDepth: 4, BaseTimePerMoveMs: 1800, MaxTimePerMoveMs: 4500, MaxBankMs: 8000,
		UseQuiescence: true, QuiescenceDepth: 6, UseOpeningBook: true, LearnedMoveMinConfidence: 0.7},
	{Number: 7, MinDepth: 2, MaxDepth: 5, BaseTimePerMoveMs: 2500, MaxTimePerMoveMs: 6000, MaxBankMs: 12000,
		UseQuiescence: true, QuiescenceDepth: 8, BeamWidth: 16, UseAspiration: true, AspirationWindowCp: 50,
		UseOpeningBook: true, LearnedMoveMinConfidence: 0.6},
	{Number: 8, MinDepth: 3, MaxDepth: 6, BaseTimePerMoveMs: 3500, MaxTimePerMoveMs: 9000, MaxBankMs: 20000,
		UseQuiescence: true, QuiescenceDepth: 8, BeamWidth: 12, UseAspiration: true, AspirationWindowCp: 40,
		UseOpeningBook: true, LearnedMoveMinConfidence: 0.6},
}

// LevelByNumber returns the settings for a difficulty, clamping out of
// range requests to the nearest end of the ladder.
func LevelByNumber(number int) Level {
	if number < 1 {
		return levels[0]
	}
	if number > len(levels) {
		return levels[len(levels)-1]
	}
	return levels[number-1]
}

// Options are the per-call search toggles taken by ComputeMove.
type Options struct {
	UseQuiescence      bool
	QuiescenceDepth    int8
	BeamWidth          int
	UseAspiration      bool
	AspirationWindowCp int
}

func (l Level) options() Options {
	return Options{
		UseQuiescence:      l.UseQuiescence,
		QuiescenceDepth:    l.QuiescenceDepth,
		BeamWidth:          l.BeamWidth,
		UseAspiration:      l.UseAspiration,
		AspirationWindowCp: l.AspirationWindowCp,
	}
}
