package rollup

import (
	"testing"

	"github.com/sehatmu/amalan/internal/catalog/domain"
	"github.com/sehatmu/amalan/internal/kpi"
	"github.com/stretchr/testify/assert"
)

func member(id, unitID, hospitalID string, overall int) MemberScore {
	categories := make(map[domain.Category]kpi.CategoryScore, 4)
	for _, category := range domain.Categories() {
		categories[category] = kpi.CategoryScore{Percentage: overall}
	}
	return MemberScore{
		EmployeeID: id,
		UnitID:     unitID,
		HospitalID: hospitalID,
		Result: kpi.Result{
			EmployeeID: id,
			Categories: categories,
			Total:      kpi.CategoryScore{Percentage: overall},
		},
	}
}

func TestRollup_MeanOfMemberPercentages(t *testing.T) {
	members := []MemberScore{
		member("EMP-1", "igd", "rs-01", 80),
		member("EMP-2", "igd", "rs-01", 91),
		member("EMP-3", "farmasi", "rs-01", 60),
	}

	rows := Rollup(members, ByUnit)

	assert.Len(t, rows, 2)
	assert.Equal(t, "farmasi", rows[0].GroupID)
	assert.Equal(t, 60, rows[0].Overall)
	assert.Equal(t, "igd", rows[1].GroupID)
	assert.Equal(t, 86, rows[1].Overall) // round((80 + 91) / 2)
	assert.Equal(t, 2, rows[1].MemberCount)
}

func TestRollup_ByHospital(t *testing.T) {
	members := []MemberScore{
		member("EMP-1", "igd", "rs-01", 100),
		member("EMP-2", "farmasi", "rs-01", 50),
		member("EMP-3", "igd", "rs-02", 70),
	}

	rows := Rollup(members, ByHospital)

	assert.Len(t, rows, 2)
	assert.Equal(t, "rs-01", rows[0].GroupID)
	assert.Equal(t, 75, rows[0].Overall)
	assert.Equal(t, "rs-02", rows[1].GroupID)
	assert.Equal(t, 70, rows[1].Overall)
}

func TestRollup_EmptyGroupIDOmitted(t *testing.T) {
	members := []MemberScore{
		member("EMP-1", "", "rs-01", 80),
		member("EMP-2", "igd", "rs-01", 40),
	}

	rows := Rollup(members, ByUnit)

	assert.Len(t, rows, 1)
	assert.Equal(t, "igd", rows[0].GroupID)
}

func TestRollup_NoMembers(t *testing.T) {
	assert.Empty(t, Rollup(nil, ByUnit))
}

// The mean of percentages keeps a member with a huge personal target
// from dominating the group score.
func TestRollup_IndependentOfMemberTargets(t *testing.T) {
	big := member("EMP-1", "igd", "rs-01", 50)
	big.Result.Total.Achieved = 500
	big.Result.Total.Target = 1000
	small := member("EMP-2", "igd", "rs-01", 100)
	small.Result.Total.Achieved = 10
	small.Result.Total.Target = 10

	rows := Rollup([]MemberScore{big, small}, ByUnit)

	assert.Equal(t, 75, rows[0].Overall)
}
