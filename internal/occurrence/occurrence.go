// Package occurrence builds the canonical activity occurrence map.
//
// The map records presence only: "employee X satisfied activity Y on day
// Z". Multiple sources may assert the same fact; the builder unions them
// with set semantics, so adds are idempotent and merge order never
// matters.
package occurrence

import "sort"

// Canonical is the normalized tuple every source record reduces to.
type Canonical struct {
	EmployeeID string
	MonthKey   string // "2006-01"
	DayKey     string // "02"
	ActivityID string
}

type daySet map[string]map[string]struct{}          // dayKey -> set of activity ids
type monthMap map[string]daySet                     // monthKey -> days
type employeeMap map[string]monthMap                // employeeID -> months

// Builder is the only writer of the occurrence map. Add is its single
// mutation entry point, which makes the union/idempotence property hold
// by construction.
type Builder struct {
	m employeeMap
}

func NewBuilder() *Builder {
	return &Builder{m: make(employeeMap)}
}

// Add records one canonical occurrence. Re-adding an existing tuple is a
// no-op. Tuples with any empty component are dropped.
func (b *Builder) Add(c Canonical) {
	if c.EmployeeID == "" || c.MonthKey == "" || c.DayKey == "" || c.ActivityID == "" {
		return
	}
	months, ok := b.m[c.EmployeeID]
	if !ok {
		months = make(monthMap)
		b.m[c.EmployeeID] = months
	}
	days, ok := months[c.MonthKey]
	if !ok {
		days = make(daySet)
		months[c.MonthKey] = days
	}
	set, ok := days[c.DayKey]
	if !ok {
		set = make(map[string]struct{})
		days[c.DayKey] = set
	}
	set[c.ActivityID] = struct{}{}
}

// AddAll adds a batch of canonical occurrences.
func (b *Builder) AddAll(cs []Canonical) {
	for _, c := range cs {
		b.Add(c)
	}
}

// Merge unions another builder into this one. The operation is
// commutative and associative, so parallel per-source builders can be
// folded in any order.
func (b *Builder) Merge(other *Builder) {
	if other == nil {
		return
	}
	for employeeID, months := range other.m {
		for monthKey, days := range months {
			for dayKey, set := range days {
				for activityID := range set {
					b.Add(Canonical{
						EmployeeID: employeeID,
						MonthKey:   monthKey,
						DayKey:     dayKey,
						ActivityID: activityID,
					})
				}
			}
		}
	}
}

// Has reports whether the exact tuple is present.
func (b *Builder) Has(c Canonical) bool {
	if set, ok := b.m[c.EmployeeID][c.MonthKey][c.DayKey]; ok {
		_, present := set[c.ActivityID]
		return present
	}
	return false
}

// DaysSatisfied counts the distinct days an activity was satisfied in a
// month. This is the achieved value for automatically sourced activities.
func (b *Builder) DaysSatisfied(employeeID, monthKey, activityID string) int {
	return len(b.ActivityDays(employeeID, monthKey, activityID))
}

// ActivityDays lists the distinct day keys an activity was satisfied in a
// month, sorted.
func (b *Builder) ActivityDays(employeeID, monthKey, activityID string) []string {
	days := b.m[employeeID][monthKey]
	if len(days) == 0 {
		return nil
	}
	var out []string
	for dayKey, set := range days {
		if _, ok := set[activityID]; ok {
			out = append(out, dayKey)
		}
	}
	sort.Strings(out)
	return out
}

// Months lists the months with any occurrence for an employee, sorted.
func (b *Builder) Months(employeeID string) []string {
	months := b.m[employeeID]
	out := make([]string, 0, len(months))
	for monthKey := range months {
		out = append(out, monthKey)
	}
	sort.Strings(out)
	return out
}

// Employees lists employee ids present in the map, sorted.
func (b *Builder) Employees() []string {
	out := make([]string, 0, len(b.m))
	for employeeID := range b.m {
		out = append(out, employeeID)
	}
	sort.Strings(out)
	return out
}

// Snapshot renders the nested map with sorted activity slices, for
// dashboards and tests.
func (b *Builder) Snapshot() map[string]map[string]map[string][]string {
	out := make(map[string]map[string]map[string][]string, len(b.m))
	for employeeID, months := range b.m {
		outMonths := make(map[string]map[string][]string, len(months))
		for monthKey, days := range months {
			outDays := make(map[string][]string, len(days))
			for dayKey, set := range days {
				activities := make([]string, 0, len(set))
				for activityID := range set {
					activities = append(activities, activityID)
				}
				sort.Strings(activities)
				outDays[dayKey] = activities
			}
			outMonths[monthKey] = outDays
		}
		out[employeeID] = outMonths
	}
	return out
}

// Len returns the number of stored tuples.
func (b *Builder) Len() int {
	n := 0
	for _, months := range b.m {
		for _, days := range months {
			for _, set := range days {
				n += len(set)
			}
		}
	}
	return n
}
