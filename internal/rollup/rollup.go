// Package rollup aggregates member KPI percentages into organizational
// comparison rows.
package rollup

import (
	"math"
	"sort"

	"github.com/sehatmu/amalan/internal/catalog/domain"
	"github.com/sehatmu/amalan/internal/kpi"
)

// GroupBy selects the organizational grouping axis.
type GroupBy string

const (
	ByHospital GroupBy = "hospital"
	ByUnit     GroupBy = "unit"
)

// MemberScore is one employee's computed result plus their placement.
type MemberScore struct {
	EmployeeID string
	UnitID     string
	HospitalID string
	Result     kpi.Result
}

// Row is one group's aggregate: the mean of member percentages, not a
// pooled achieved/target ratio. Averaging percentages keeps members with
// unusually high personal targets from dominating the group score.
type Row struct {
	GroupID     string                  `json:"group_id"`
	GroupBy     GroupBy                 `json:"group_by"`
	MemberCount int                     `json:"member_count"`
	Categories  map[domain.Category]int `json:"categories"`
	Overall     int                     `json:"overall"`
}

// Rollup groups members and averages their category percentages. Groups
// with no members are omitted rather than reported as 0%. Rows come back
// sorted by group id.
func Rollup(members []MemberScore, groupBy GroupBy) []Row {
	groups := make(map[string][]MemberScore)
	for _, m := range members {
		groupID := m.UnitID
		if groupBy == ByHospital {
			groupID = m.HospitalID
		}
		if groupID == "" {
			continue
		}
		groups[groupID] = append(groups[groupID], m)
	}

	rows := make([]Row, 0, len(groups))
	for groupID, group := range groups {
		row := Row{
			GroupID:     groupID,
			GroupBy:     groupBy,
			MemberCount: len(group),
			Categories:  make(map[domain.Category]int, 4),
		}
		for _, cat := range domain.Categories() {
			row.Categories[cat] = meanPercentage(group, func(m MemberScore) int {
				return m.Result.Categories[cat].Percentage
			})
		}
		row.Overall = meanPercentage(group, func(m MemberScore) int {
			return m.Result.Total.Percentage
		})
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].GroupID < rows[j].GroupID })
	return rows
}

func meanPercentage(group []MemberScore, pick func(MemberScore) int) int {
	if len(group) == 0 {
		return 0
	}
	sum := 0
	for _, m := range group {
		sum += pick(m)
	}
	return int(math.Round(float64(sum) / float64(len(group))))
}
