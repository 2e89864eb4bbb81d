package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func quietAssessment() CriticalityAssessment {
	return CriticalityAssessment{Score: 0, RecommendedTimeMultiplier: 0.5}
}

func normalAssessment() CriticalityAssessment {
	return CriticalityAssessment{Score: 25, RecommendedTimeMultiplier: 1.0}
}

func criticalAssessment() CriticalityAssessment {
	return CriticalityAssessment{Score: 80, IsCritical: true, RecommendedTimeMultiplier: 2.5, RecommendedDepthBonus: 2}
}

func TestRecordMoveTimeBanksSavings(t *testing.T) {
	tm := NewTimeManager(1000, 3000, 5000)

	tm.RecordMoveTime(1000, 400)
	assert.Equal(t, int64(600), tm.Bank())

	// Overspend drains at half rate.
	tm.RecordMoveTime(1000, 1400)
	assert.Equal(t, int64(400), tm.Bank())

	assert.Equal(t, 2, tm.MovesPlayed())
	assert.Equal(t, int64(1800), tm.TotalTimeUsed())
	assert.Len(t, tm.History(), 2)
}

func TestRecordMoveTimeBankFloorsAtZero(t *testing.T) {
	tm := NewTimeManager(1000, 3000, 5000)
	tm.RecordMoveTime(1000, 9000)
	assert.Equal(t, int64(0), tm.Bank())
}

func TestRecordMoveTimeBankCapped(t *testing.T) {
	tm := NewTimeManager(1000, 3000, 500)
	tm.RecordMoveTime(1000, 100)
	tm.RecordMoveTime(1000, 100)
	assert.Equal(t, int64(500), tm.Bank())
}

func TestCalculateMoveTimeQuietPositionTrimmed(t *testing.T) {
	tm := NewTimeManager(1000, 3000, 5000)
	budget := tm.CalculateMoveTime(quietAssessment(), 20)
	assert.Equal(t, int64(500), budget.AllocatedMs)
}

func TestCalculateMoveTimeOpeningPhaseBoost(t *testing.T) {
	tm := NewTimeManager(1000, 3000, 5000)

	opening := tm.CalculateMoveTime(normalAssessment(), 5)
	assert.Equal(t, int64(1200), opening.AllocatedMs)

	middlegame := tm.CalculateMoveTime(normalAssessment(), 20)
	assert.Equal(t, int64(1000), middlegame.AllocatedMs)

	late := tm.CalculateMoveTime(normalAssessment(), 40)
	assert.Equal(t, int64(800), late.AllocatedMs)
}

func TestCalculateMoveTimeCriticalDrawsFromBank(t *testing.T) {
	tm := NewTimeManager(1000, 10000, 5000)
	tm.RecordMoveTime(1000, 0) // bank 1000

	budget := tm.CalculateMoveTime(criticalAssessment(), 20)
	// base 1000 * phase 1.0 * multiplier 2.5 + 60% of the bank.
	assert.Equal(t, int64(3100), budget.AllocatedMs)
	assert.Equal(t, int64(1000), budget.BankMs)
}

func TestCalculateMoveTimeNeverExceedsHardCap(t *testing.T) {
	tm := NewTimeManager(1000, 3000, 20000)
	tm.RecordMoveTime(20000, 0) // bank full

	budget := tm.CalculateMoveTime(criticalAssessment(), 20)
	assert.Equal(t, int64(3000), budget.AllocatedMs)
	assert.Equal(t, int64(3000), budget.HardCapMs)
	assert.LessOrEqual(t, budget.AllocatedMs, budget.HardCapMs)
}

func TestCalculateMoveTimeAlwaysPositive(t *testing.T) {
	tm := NewTimeManager(0, 0, 0)
	budget := tm.CalculateMoveTime(quietAssessment(), 1)
	assert.GreaterOrEqual(t, budget.AllocatedMs, int64(1))
}

func TestTimeManagerReset(t *testing.T) {
	tm := NewTimeManager(1000, 3000, 5000)
	tm.RecordMoveTime(1000, 400)
	tm.Reset()

	assert.Equal(t, int64(0), tm.Bank())
	assert.Equal(t, 0, tm.MovesPlayed())
	assert.Equal(t, int64(0), tm.TotalTimeUsed())
	assert.Empty(t, tm.History())
}
