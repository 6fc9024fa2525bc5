// Package normalize converts heterogeneous source rows into canonical
// occurrence tuples.
//
// One normalizer pass exists per source kind; all of them resolve labels
// through the single shared catalog table and derive partition keys
// through the shared datekey helper. Unmapped labels are dropped and
// tallied, never fatal.
package normalize

import (
	"sort"

	"github.com/sehatmu/amalan/internal/catalog"
	"github.com/sehatmu/amalan/internal/event/domain"
	"github.com/sehatmu/amalan/internal/occurrence"
	"go.uber.org/zap"
)

// Diagnostics tallies non-fatal conditions hit while normalizing. A
// fresh value is carried per aggregation request.
type Diagnostics struct {
	UnmappedLabels map[string]int
	DroppedRecords int
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{UnmappedLabels: make(map[string]int)}
}

func (d *Diagnostics) unmapped(label string) {
	if d == nil {
		return
	}
	d.UnmappedLabels[catalog.NormalizeLabel(label)]++
	d.DroppedRecords++
}

// Labels lists the distinct unmapped labels seen, sorted.
func (d *Diagnostics) Labels() []string {
	out := make([]string, 0, len(d.UnmappedLabels))
	for label := range d.UnmappedLabels {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Normalizer reduces tagged source records to canonical tuples.
type Normalizer struct {
	labels *catalog.LabelTable
	log    *zap.Logger
}

func New(labels *catalog.LabelTable, log *zap.Logger) *Normalizer {
	return &Normalizer{labels: labels, log: log.Named("normalize")}
}

// Normalize converts one tagged record into zero or more canonical
// occurrences. Roster and counter records may yield several tuples; a
// record whose label has no catalog mapping yields none.
func (n *Normalizer) Normalize(rec domain.Record, diag *Diagnostics) []occurrence.Canonical {
	switch rec.Kind {
	case domain.KindPrayerLog:
		return n.prayer(rec.Prayer)
	case domain.KindGroupSession:
		return n.groupSession(rec.GroupSession, diag)
	case domain.KindScheduledActivity:
		return n.scheduled(rec.Scheduled, diag)
	case domain.KindGroupReading:
		return n.groupReading(rec.GroupReading)
	case domain.KindExceptionRequest:
		return n.exception(rec.Exception, diag)
	case domain.KindManualCounter:
		return n.counter(rec.Counter, diag)
	case domain.KindReadingLog:
		return n.readingLog(rec.ReadingLog)
	default:
		n.log.Warn("record with unknown source kind dropped", zap.String("kind", string(rec.Kind)))
		if diag != nil {
			diag.DroppedRecords++
		}
		return nil
	}
}

func (n *Normalizer) prayer(e *domain.PrayerEvent) []occurrence.Canonical {
	if e == nil || e.Status != domain.PrayerStatusPresent {
		return nil
	}
	monthKey, dayKey := Keys(e.OccurredAt)
	return []occurrence.Canonical{{
		EmployeeID: e.EmployeeID,
		MonthKey:   monthKey,
		DayKey:     dayKey,
		ActivityID: catalog.ActivityShalatBerjamaah,
	}}
}

func (n *Normalizer) groupSession(e *domain.GroupSessionEvent, diag *Diagnostics) []occurrence.Canonical {
	if e == nil {
		return nil
	}
	activityID, ok := n.labels.Resolve(e.SessionType)
	if !ok {
		n.log.Debug("unmapped group session label", zap.String("label", e.SessionType))
		diag.unmapped(e.SessionType)
		return nil
	}
	monthKey, dayKey := Keys(e.SessionDate)
	return []occurrence.Canonical{{
		EmployeeID: e.EmployeeID,
		MonthKey:   monthKey,
		DayKey:     dayKey,
		ActivityID: activityID,
	}}
}

func (n *Normalizer) scheduled(e *domain.ScheduledActivityEvent, diag *Diagnostics) []occurrence.Canonical {
	if e == nil || e.SignedInAt == nil {
		return nil
	}
	activityID, ok := n.labels.Resolve(e.ActivityLabel)
	if !ok {
		n.log.Debug("unmapped scheduled activity label", zap.String("label", e.ActivityLabel))
		diag.unmapped(e.ActivityLabel)
		return nil
	}
	monthKey, dayKey := Keys(e.EventDate)
	return []occurrence.Canonical{{
		EmployeeID: e.EmployeeID,
		MonthKey:   monthKey,
		DayKey:     dayKey,
		ActivityID: activityID,
	}}
}

func (n *Normalizer) groupReading(e *domain.GroupReadingSession) []occurrence.Canonical {
	if e == nil {
		return nil
	}
	monthKey, dayKey := Keys(e.SessionDate)
	out := make([]occurrence.Canonical, 0, len(e.Participants))
	for _, employeeID := range e.Participants {
		out = append(out, occurrence.Canonical{
			EmployeeID: employeeID,
			MonthKey:   monthKey,
			DayKey:     dayKey,
			ActivityID: catalog.ActivityTadarus,
		})
	}
	return out
}

// exception normalizes an approved exception exactly like the organic
// event it stands in for, so downstream stages cannot tell them apart.
func (n *Normalizer) exception(e *domain.ExceptionRequest, diag *Diagnostics) []occurrence.Canonical {
	if e == nil || e.Status != domain.ExceptionStatusApproved {
		return nil
	}
	monthKey, dayKey := Keys(e.EventDate)
	switch e.Kind {
	case domain.ExceptionKindPrayer:
		return []occurrence.Canonical{{
			EmployeeID: e.EmployeeID,
			MonthKey:   monthKey,
			DayKey:     dayKey,
			ActivityID: catalog.ActivityShalatBerjamaah,
		}}
	case domain.ExceptionKindGroupSession:
		activityID, ok := n.labels.Resolve(e.Label)
		if !ok {
			n.log.Debug("unmapped exception label", zap.String("label", e.Label))
			diag.unmapped(e.Label)
			return nil
		}
		return []occurrence.Canonical{{
			EmployeeID: e.EmployeeID,
			MonthKey:   monthKey,
			DayKey:     dayKey,
			ActivityID: activityID,
		}}
	default:
		diag.unmapped(e.Kind)
		return nil
	}
}

// counter normalizes the dated entry lists of a manual counter. A record
// carrying only a completion timestamp counts toward its own month only:
// stale completions must not leak into later months.
func (n *Normalizer) counter(e *domain.ManualCounterRecord, diag *Diagnostics) []occurrence.Canonical {
	if e == nil {
		return nil
	}
	activityID, ok := n.labels.Resolve(e.ActivityID)
	if !ok {
		n.log.Debug("unmapped counter activity", zap.String("activity", e.ActivityID))
		diag.unmapped(e.ActivityID)
		return nil
	}

	var out []occurrence.Canonical
	for _, entry := range e.Entries {
		monthKey, dayKey, err := KeysFromString(entry.Date)
		if err != nil {
			diag.DroppedRecords++
			continue
		}
		out = append(out, occurrence.Canonical{
			EmployeeID: e.EmployeeID,
			MonthKey:   monthKey,
			DayKey:     dayKey,
			ActivityID: activityID,
		})
	}
	for _, entry := range e.BookEntries {
		monthKey, dayKey, err := KeysFromString(entry.DateCompleted)
		if err != nil {
			diag.DroppedRecords++
			continue
		}
		out = append(out, occurrence.Canonical{
			EmployeeID: e.EmployeeID,
			MonthKey:   monthKey,
			DayKey:     dayKey,
			ActivityID: activityID,
		})
	}

	if len(out) == 0 && e.CompletedAt != nil {
		monthKey, dayKey := Keys(*e.CompletedAt)
		if monthKey == e.MonthKey {
			out = append(out, occurrence.Canonical{
				EmployeeID: e.EmployeeID,
				MonthKey:   monthKey,
				DayKey:     dayKey,
				ActivityID: activityID,
			})
		}
	}
	return out
}

func (n *Normalizer) readingLog(e *domain.ReadingLogEntry) []occurrence.Canonical {
	if e == nil {
		return nil
	}
	monthKey, dayKey := Keys(e.ReadDate)
	return []occurrence.Canonical{{
		EmployeeID: e.EmployeeID,
		MonthKey:   monthKey,
		DayKey:     dayKey,
		ActivityID: catalog.ActivityMembacaBuku,
	}}
}
