package kpi

import (
	"testing"

	"github.com/sehatmu/amalan/internal/catalog"
	"github.com/sehatmu/amalan/internal/catalog/domain"
	"github.com/sehatmu/amalan/internal/counter"
	"github.com/stretchr/testify/assert"
)

func key(monthKey, activityID string) counter.Key {
	return counter.Key{EmployeeID: "EMP-1", MonthKey: monthKey, ActivityID: activityID}
}

func TestCompute_CapsAchievedAtMonthlyTarget(t *testing.T) {
	// 22 prayer days against a target of 20 contribute exactly 20.
	achieved := counter.AchievedSet{
		key("2026-03", catalog.ActivityShalatBerjamaah): 22,
	}

	result := Compute(catalog.Default(), achieved, "EMP-1", []string{"2026-03"}, GateAll)

	discipline := result.Categories[domain.CategoryDiscipline]
	assert.Equal(t, 20, discipline.Achieved)
	assert.Equal(t, []string{"2026-03"}, result.QualifyingMonths)
}

func TestCompute_DisciplineMath(t *testing.T) {
	achieved := counter.AchievedSet{
		key("2026-03", catalog.ActivityShalatBerjamaah): 22,
		key("2026-03", catalog.ActivityApelPagi):        3,
	}

	result := Compute(catalog.Default(), achieved, "EMP-1", []string{"2026-03"}, GateAll)

	discipline := result.Categories[domain.CategoryDiscipline]
	assert.Equal(t, 23, discipline.Achieved) // 20 capped + 3
	assert.Equal(t, 24, discipline.Target)   // 20 + 4
	assert.Equal(t, 96, discipline.Percentage)
}

func TestCompute_ZeroQualifyingMonths(t *testing.T) {
	result := Compute(catalog.Default(), counter.AchievedSet{}, "EMP-1", []string{"2026-03", "2026-04"}, GateAll)

	assert.Empty(t, result.QualifyingMonths)
	for _, category := range domain.Categories() {
		score := result.Categories[category]
		assert.Zero(t, score.Target)
		assert.Zero(t, score.Percentage)
	}
	assert.Zero(t, result.Total.Percentage)
}

func TestCompute_GateExcludesUnapprovedMonths(t *testing.T) {
	achieved := counter.AchievedSet{
		key("2026-03", catalog.ActivityShalatBerjamaah): 20,
		key("2026-04", catalog.ActivityShalatBerjamaah): 20,
	}
	months := []string{"2026-03", "2026-04"}

	gated := Compute(catalog.Default(), achieved, "EMP-1", months, GateSet(map[string]bool{"2026-03": true}))
	assert.Equal(t, []string{"2026-03"}, gated.QualifyingMonths)

	ungated := Compute(catalog.Default(), achieved, "EMP-1", months, GateAll)
	assert.Equal(t, months, ungated.QualifyingMonths)

	// Targets scale with qualifying months, so the gated view has half
	// the target of the ungated one.
	assert.Equal(t, ungated.Total.Target, gated.Total.Target*2)
}

func TestCompute_TargetsScaleWithQualifyingMonths(t *testing.T) {
	achieved := counter.AchievedSet{
		key("2026-03", catalog.ActivityShalatBerjamaah): 10,
		key("2026-04", catalog.ActivityShalatBerjamaah): 10,
	}

	result := Compute(catalog.Default(), achieved, "EMP-1", []string{"2026-03", "2026-04"}, GateAll)

	discipline := result.Categories[domain.CategoryDiscipline]
	assert.Equal(t, 20, discipline.Achieved)
	assert.Equal(t, 48, discipline.Target) // (20 + 4) x 2 months
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(5, 0))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 100, Percentage(30, 20))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
}
