// Package kpi derives percentage scores from reconciled achieved counts.
package kpi

import (
	"math"

	"github.com/sehatmu/amalan/internal/catalog"
	"github.com/sehatmu/amalan/internal/catalog/domain"
	"github.com/sehatmu/amalan/internal/counter"
)

// CategoryScore is the achieved/target pair of one behavioral category,
// with its capped percentage.
type CategoryScore struct {
	Achieved   int `json:"achieved"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// Result is one employee's score over a month set.
type Result struct {
	EmployeeID       string                            `json:"employee_id"`
	Categories       map[domain.Category]CategoryScore `json:"categories"`
	Total            CategoryScore                     `json:"total"`
	QualifyingMonths []string                          `json:"qualifying_months"`
}

// QualifyGate decides whether a month with data counts toward targets.
// The official path plugs in the approval gate; the personal path always
// answers true.
type QualifyGate func(monthKey string) bool

// GateAll qualifies every month.
func GateAll(string) bool { return true }

// GateSet qualifies exactly the given months.
func GateSet(months map[string]bool) QualifyGate {
	return func(monthKey string) bool { return months[monthKey] }
}

// Compute scores one employee over the candidate months.
//
// Per activity the achieved count is capped at its monthly target before
// summing. A month qualifies only if it has any recorded data and the
// gate admits it; targets scale with the number of qualifying months, so
// an employee with zero qualifying months scores 0% without division.
func Compute(cat *catalog.Catalog, achieved counter.AchievedSet, employeeID string, months []string, gate QualifyGate) Result {
	if gate == nil {
		gate = GateAll
	}

	dataMonths := achieved.Months(employeeID)
	var qualifying []string
	for _, monthKey := range months {
		if dataMonths[monthKey] && gate(monthKey) {
			qualifying = append(qualifying, monthKey)
		}
	}

	categories := make(map[domain.Category]CategoryScore, 4)
	var total CategoryScore
	for _, cat4 := range domain.Categories() {
		var score CategoryScore
		for _, a := range cat.ByCategory(cat4) {
			score.Target += a.MonthlyTarget * len(qualifying)
			for _, monthKey := range qualifying {
				got := achieved.Get(employeeID, monthKey, a.ID)
				if got > a.MonthlyTarget {
					got = a.MonthlyTarget
				}
				score.Achieved += got
			}
		}
		score.Percentage = Percentage(score.Achieved, score.Target)
		categories[cat4] = score
		total.Achieved += score.Achieved
		total.Target += score.Target
	}
	total.Percentage = Percentage(total.Achieved, total.Target)

	return Result{
		EmployeeID:       employeeID,
		Categories:       categories,
		Total:            total,
		QualifyingMonths: qualifying,
	}
}

// Percentage is min(100, round(100*achieved/target)), 0 for zero target.
func Percentage(achieved, target int) int {
	if target <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(achieved) / float64(target)))
	if p > 100 {
		p = 100
	}
	return p
}
