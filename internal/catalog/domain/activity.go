// Package domain contains the canonical activity catalog types.
package domain

import "errors"

// Category is one of the four behavioral dimensions every activity
// belongs to.
type Category string

const (
	CategoryIntegrity  Category = "integrity"
	CategoryTeamwork   Category = "teamwork"
	CategoryDiscipline Category = "discipline"
	CategoryLearning   Category = "learning"
)

// Categories returns the categories in their reporting order.
func Categories() []Category {
	return []Category{
		CategoryIntegrity,
		CategoryTeamwork,
		CategoryDiscipline,
		CategoryLearning,
	}
}

// SourceKind identifies which raw source feeds an activity. Every kind
// maps to exactly one normalizer pass.
type SourceKind string

const (
	SourcePrayerLog         SourceKind = "prayer_log"
	SourceGroupSession      SourceKind = "group_session"
	SourceScheduledActivity SourceKind = "scheduled_activity"
	SourceGroupReading      SourceKind = "group_reading"
	SourceManualCounter     SourceKind = "manual_counter"
	SourceReadingLog        SourceKind = "reading_log"
)

// ActivityDefinition is an immutable catalog row.
type ActivityDefinition struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      Category   `json:"category"`
	MonthlyTarget int        `json:"monthly_target"`
	SourceKind    SourceKind `json:"source_kind"`
}

// Manual reports whether the activity is fed by self-reported counters
// rather than an automatic source.
func (a ActivityDefinition) Manual() bool {
	return a.SourceKind == SourceManualCounter || a.SourceKind == SourceReadingLog
}

var (
	ErrUnknownActivity = errors.New("unknown_activity")
	ErrInvalidTarget   = errors.New("invalid_monthly_target")
)
