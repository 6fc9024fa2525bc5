// Package counter reconciles manual self-reported counters with the
// occurrence map into a single achieved count per activity per month.
package counter

import (
	"github.com/sehatmu/amalan/internal/catalog"
	catalogdomain "github.com/sehatmu/amalan/internal/catalog/domain"
	eventdomain "github.com/sehatmu/amalan/internal/event/domain"
	"github.com/sehatmu/amalan/internal/occurrence"
	"go.uber.org/zap"
)

// Key addresses one achieved count.
type Key struct {
	EmployeeID string
	MonthKey   string
	ActivityID string
}

// AchievedSet is the reconciled achieved count per (employee, month,
// activity). Missing keys mean zero.
type AchievedSet map[Key]int

// Get returns the achieved count for a key.
func (s AchievedSet) Get(employeeID, monthKey, activityID string) int {
	return s[Key{EmployeeID: employeeID, MonthKey: monthKey, ActivityID: activityID}]
}

// Months lists the month keys with any achieved data for an employee.
func (s AchievedSet) Months(employeeID string) map[string]bool {
	out := make(map[string]bool)
	for k, v := range s {
		if k.EmployeeID == employeeID && v > 0 {
			out[k.MonthKey] = true
		}
	}
	return out
}

// Reconciler resolves which achieved count to trust per activity.
type Reconciler struct {
	log          *zap.Logger
	inconsistent int
}

func NewReconciler(log *zap.Logger) *Reconciler {
	return &Reconciler{log: log.Named("counter")}
}

// Inconsistencies returns how many cached counts disagreed with their
// recomputed entry lists since construction.
func (r *Reconciler) Inconsistencies() int {
	return r.inconsistent
}

// Reconcile derives achieved counts for every activity of the catalog
// over the employee/month coverage of the occurrence map plus the passed
// counter records.
//
// Automatically sourced activities count distinct days present in the
// map. Manually reported ones recompute from the raw entry lists and
// take the max with the occurrence-derived day set; the cached Count
// column is never trusted, and a mismatch is a warning, not a failure.
func (r *Reconciler) Reconcile(cat *catalog.Catalog, counters []eventdomain.ManualCounterRecord, occ *occurrence.Builder) AchievedSet {
	achieved := make(AchievedSet)
	labels := catalog.NewLabelTable(cat)

	for _, employeeID := range occ.Employees() {
		for _, monthKey := range occ.Months(employeeID) {
			for _, a := range cat.Activities() {
				days := occ.DaysSatisfied(employeeID, monthKey, a.ID)
				if days > 0 {
					achieved[Key{EmployeeID: employeeID, MonthKey: monthKey, ActivityID: a.ID}] = days
				}
			}
		}
	}

	for _, rec := range counters {
		// Counter rows carry the same free-text vocabulary as the other
		// sources; the normalizer and this pass must agree on the mapping.
		activityID, ok := labels.Resolve(rec.ActivityID)
		if !ok {
			continue
		}
		a, ok := cat.ByID(activityID)
		if !ok || !a.Manual() {
			continue
		}
		recomputed := len(rec.Entries)
		if a.SourceKind == catalogdomain.SourceReadingLog {
			recomputed = len(rec.BookEntries)
		}
		if rec.Count != recomputed && (len(rec.Entries) > 0 || len(rec.BookEntries) > 0) {
			r.inconsistent++
			r.log.Warn("manual counter cache disagrees with entries",
				zap.String("employee_id", rec.EmployeeID),
				zap.String("month_key", rec.MonthKey),
				zap.String("activity_id", rec.ActivityID),
				zap.Int("cached_count", rec.Count),
				zap.Int("recomputed", recomputed),
			)
		}
		key := Key{EmployeeID: rec.EmployeeID, MonthKey: rec.MonthKey, ActivityID: a.ID}
		if recomputed > achieved[key] {
			achieved[key] = recomputed
		}
	}

	return achieved
}
