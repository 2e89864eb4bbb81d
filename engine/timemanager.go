package engine

import (
	"time"

	"github.com/rs/zerolog/log"
)

// TimeBudget is the allocation for a single move.
type TimeBudget struct {
	AllocatedMs int64
	HardCapMs   int64
	BankMs      int64
	Deadline    time.Time
}

// MoveTimeRecord is one entry of the per-game spend history.
type MoveTimeRecord struct {
	AllocatedMs int64
	ActualMs    int64
}

// TimeManager owns the per-game thinking-time account: a rolling bank
// of saved time that critical positions may draw on. It is only ever
// touched between moves, never during a search, so it needs no
// locking. State must not outlive a game; call Reset on a new one.
type TimeManager struct {
	baseTimePerMoveMs int64
	maxTimePerMoveMs  int64
	maxBankMs         int64

	bankMs          int64
	movesPlayed     int
	totalTimeUsedMs int64
	history         []MoveTimeRecord
}

// NewTimeManager builds a manager with the given per-move base, hard
// per-move cap and bank capacity, all in milliseconds.
func NewTimeManager(baseTimePerMoveMs, maxTimePerMoveMs, maxBankMs int64) *TimeManager {
	return &TimeManager{
		baseTimePerMoveMs: baseTimePerMoveMs,
		maxTimePerMoveMs:  maxTimePerMoveMs,
		maxBankMs:         maxBankMs,
	}
}

// CalculateMoveTime allocates thinking time for the next move: a
// level-dependent base, shaped by game phase and by how critical the
// position looks, topped up from the bank when it matters and trimmed
// when it doesn't.
func (tm *TimeManager) CalculateMoveTime(criticality CriticalityAssessment, moveNumber int) TimeBudget {
	allocated := float64(tm.baseTimePerMoveMs)

	allocated *= phaseMultiplier(moveNumber)
	allocated *= criticality.RecommendedTimeMultiplier

	if criticality.IsCritical && tm.bankMs > 0 {
		withdrawal := float64(tm.bankMs) * 0.6
		if allocated+withdrawal > float64(tm.maxTimePerMoveMs) {
			withdrawal = float64(tm.maxTimePerMoveMs) - allocated
		}
		if withdrawal > 0 {
			allocated += withdrawal
		}
	}

	if !criticality.IsCritical && criticality.Score < 20 {
		quietCap := float64(tm.baseTimePerMoveMs) * 0.5
		if allocated > quietCap {
			allocated = quietCap
		}
	}

	if allocated > float64(tm.maxTimePerMoveMs) {
		allocated = float64(tm.maxTimePerMoveMs)
	}
	if allocated < 1 {
		allocated = 1
	}

	budget := TimeBudget{
		AllocatedMs: int64(allocated),
		HardCapMs:   tm.maxTimePerMoveMs,
		BankMs:      tm.bankMs,
		Deadline:    time.Now().Add(time.Duration(int64(allocated)) * time.Millisecond),
	}
	log.Debug().
		Int64("allocatedMs", budget.AllocatedMs).
		Int64("bankMs", tm.bankMs).
		Int("criticality", criticality.Score).
		Int("moveNumber", moveNumber).
		Msg("move time allocated")
	return budget
}

// phaseMultiplier spends a bit extra while the game is still taking
// shape and tapers off late, when most moves are conversions.
func phaseMultiplier(moveNumber int) float64 {
	switch {
	case moveNumber <= 15:
		return 1.2
	case moveNumber <= 30:
		return 1.0
	default:
		return 0.8
	}
}

// RecordMoveTime settles the account after a move: unspent time banks
// at full credit, overspend drains the bank at half rate so one long
// think cannot bankrupt future critical moves.
func (tm *TimeManager) RecordMoveTime(allocatedMs, actualMs int64) {
	tm.movesPlayed++
	tm.totalTimeUsedMs += actualMs
	tm.history = append(tm.history, MoveTimeRecord{AllocatedMs: allocatedMs, ActualMs: actualMs})

	if actualMs < allocatedMs {
		tm.bankMs += allocatedMs - actualMs
		if tm.bankMs > tm.maxBankMs {
			tm.bankMs = tm.maxBankMs
		}
	} else if actualMs > allocatedMs {
		tm.bankMs -= (actualMs - allocatedMs) / 2
		if tm.bankMs < 0 {
			tm.bankMs = 0
		}
	}
}

// Bank returns the currently banked milliseconds.
func (tm *TimeManager) Bank() int64 {
	return tm.bankMs
}

// MovesPlayed returns how many moves have been settled this game.
func (tm *TimeManager) MovesPlayed() int {
	return tm.movesPlayed
}

// TotalTimeUsed returns the cumulative actual spend this game.
func (tm *TimeManager) TotalTimeUsed() int64 {
	return tm.totalTimeUsedMs
}

// History returns the per-move spend records for this game.
func (tm *TimeManager) History() []MoveTimeRecord {
	return tm.history
}

// Reset clears all per-game state for a fresh game.
func (tm *TimeManager) Reset() {
	tm.bankMs = 0
	tm.movesPlayed = 0
	tm.totalTimeUsedMs = 0
	tm.history = nil
}
