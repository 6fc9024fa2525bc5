package normalize

import (
	"testing"
	"time"

	"github.com/sehatmu/amalan/internal/catalog"
	"github.com/sehatmu/amalan/internal/event/domain"
	"github.com/sehatmu/amalan/internal/occurrence"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newNormalizer() *Normalizer {
	return New(catalog.NewLabelTable(catalog.Default()), zap.NewNop())
}

func date(day int) time.Time {
	return time.Date(2026, time.March, day, 8, 30, 0, 0, time.UTC)
}

func TestNormalize_PrayerPresentOnly(t *testing.T) {
	n := newNormalizer()
	diag := NewDiagnostics()

	got := n.Normalize(domain.NewPrayerRecord(domain.PrayerEvent{
		EmployeeID: "EMP-1",
		PrayerName: "subuh",
		Status:     domain.PrayerStatusPresent,
		OccurredAt: date(3),
	}), diag)
	assert.Equal(t, []occurrence.Canonical{{
		EmployeeID: "EMP-1",
		MonthKey:   "2026-03",
		DayKey:     "03",
		ActivityID: catalog.ActivityShalatBerjamaah,
	}}, got)

	got = n.Normalize(domain.NewPrayerRecord(domain.PrayerEvent{
		EmployeeID: "EMP-1",
		Status:     "absent",
		OccurredAt: date(3),
	}), diag)
	assert.Empty(t, got)
}

func TestNormalize_GroupSessionLabelResolution(t *testing.T) {
	n := newNormalizer()
	diag := NewDiagnostics()

	got := n.Normalize(domain.NewGroupSessionRecord(domain.GroupSessionEvent{
		EmployeeID:  "EMP-1",
		SessionType: "  Doa   BERSAMA ",
		SessionDate: date(7),
	}), diag)
	assert.Len(t, got, 1)
	assert.Equal(t, catalog.ActivityDoaBersama, got[0].ActivityID)
	assert.Zero(t, diag.DroppedRecords)

	got = n.Normalize(domain.NewGroupSessionRecord(domain.GroupSessionEvent{
		EmployeeID:  "EMP-1",
		SessionType: "senam pagi",
		SessionDate: date(7),
	}), diag)
	assert.Empty(t, got)
	assert.Equal(t, 1, diag.DroppedRecords)
	assert.Equal(t, 1, diag.UnmappedLabels["senam pagi"])
}

func TestNormalize_ScheduledRequiresSignIn(t *testing.T) {
	n := newNormalizer()
	diag := NewDiagnostics()

	signedIn := date(10)
	got := n.Normalize(domain.NewScheduledActivityRecord(domain.ScheduledActivityEvent{
		EmployeeID:    "EMP-1",
		ActivityLabel: "Apel Pagi",
		EventDate:     date(10),
		SignedInAt:    &signedIn,
	}), diag)
	assert.Len(t, got, 1)
	assert.Equal(t, catalog.ActivityApelPagi, got[0].ActivityID)

	got = n.Normalize(domain.NewScheduledActivityRecord(domain.ScheduledActivityEvent{
		EmployeeID:    "EMP-1",
		ActivityLabel: "Apel Pagi",
		EventDate:     date(10),
	}), diag)
	assert.Empty(t, got, "scheduled event without sign-in must not count")
}

func TestNormalize_GroupReadingExpandsRoster(t *testing.T) {
	n := newNormalizer()

	got := n.Normalize(domain.NewGroupReadingRecord(domain.GroupReadingSession{
		SessionDate:  date(12),
		Participants: []string{"EMP-1", "EMP-2", "EMP-3"},
	}), NewDiagnostics())

	assert.Len(t, got, 3)
	for i, employeeID := range []string{"EMP-1", "EMP-2", "EMP-3"} {
		assert.Equal(t, employeeID, got[i].EmployeeID)
		assert.Equal(t, catalog.ActivityTadarus, got[i].ActivityID)
		assert.Equal(t, "12", got[i].DayKey)
	}
}

// An approved exception must be indistinguishable from the organic event
// it stands in for.
func TestNormalize_ExceptionMatchesOrganicEvent(t *testing.T) {
	n := newNormalizer()
	diag := NewDiagnostics()

	organic := n.Normalize(domain.NewPrayerRecord(domain.PrayerEvent{
		EmployeeID: "EMP-1",
		Status:     domain.PrayerStatusPresent,
		OccurredAt: date(15),
	}), diag)
	excepted := n.Normalize(domain.NewExceptionRecord(domain.ExceptionRequest{
		EmployeeID: "EMP-1",
		Kind:       domain.ExceptionKindPrayer,
		EventDate:  date(15),
		Status:     domain.ExceptionStatusApproved,
	}), diag)
	assert.Equal(t, organic, excepted)

	organicSession := n.Normalize(domain.NewGroupSessionRecord(domain.GroupSessionEvent{
		EmployeeID:  "EMP-1",
		SessionType: "KIE",
		SessionDate: date(16),
	}), diag)
	exceptedSession := n.Normalize(domain.NewExceptionRecord(domain.ExceptionRequest{
		EmployeeID: "EMP-1",
		Kind:       domain.ExceptionKindGroupSession,
		Label:      "kie",
		EventDate:  date(16),
		Status:     domain.ExceptionStatusApproved,
	}), diag)
	assert.Equal(t, organicSession, exceptedSession)
}

func TestNormalize_PendingExceptionIgnored(t *testing.T) {
	n := newNormalizer()

	got := n.Normalize(domain.NewExceptionRecord(domain.ExceptionRequest{
		EmployeeID: "EMP-1",
		Kind:       domain.ExceptionKindPrayer,
		EventDate:  date(15),
		Status:     "pending",
	}), NewDiagnostics())
	assert.Empty(t, got)
}

func TestNormalize_CounterEntriesBecomeOccurrences(t *testing.T) {
	n := newNormalizer()

	got := n.Normalize(domain.NewCounterRecord(domain.ManualCounterRecord{
		EmployeeID: "EMP-1",
		MonthKey:   "2026-03",
		ActivityID: catalog.ActivityInfaqRutin,
		Count:      5,
		Entries: []domain.CounterEntry{
			{Date: "2026-03-02"},
			{Date: "2026-03-09"},
			{Date: "not-a-date"},
		},
	}), NewDiagnostics())

	assert.Len(t, got, 2)
	assert.Equal(t, "02", got[0].DayKey)
	assert.Equal(t, "09", got[1].DayKey)
}

func TestNormalize_StaleCompletedAtDoesNotLeak(t *testing.T) {
	n := newNormalizer()

	completed := time.Date(2026, time.February, 27, 10, 0, 0, 0, time.UTC)
	got := n.Normalize(domain.NewCounterRecord(domain.ManualCounterRecord{
		EmployeeID:  "EMP-1",
		MonthKey:    "2026-03",
		ActivityID:  catalog.ActivityAmanahKerja,
		CompletedAt: &completed,
	}), NewDiagnostics())
	assert.Empty(t, got, "february completion must not surface in march")

	inMonth := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	got = n.Normalize(domain.NewCounterRecord(domain.ManualCounterRecord{
		EmployeeID:  "EMP-1",
		MonthKey:    "2026-03",
		ActivityID:  catalog.ActivityAmanahKerja,
		CompletedAt: &inMonth,
	}), NewDiagnostics())
	assert.Len(t, got, 1)
	assert.Equal(t, "2026-03", got[0].MonthKey)
}

func TestKeysFromString(t *testing.T) {
	monthKey, dayKey, err := KeysFromString("2026-03-09")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03", monthKey)
	assert.Equal(t, "09", dayKey)

	monthKey, dayKey, err = KeysFromString("2026-03-09T21:15:00+07:00")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03", monthKey)
	assert.Equal(t, "09", dayKey)

	_, _, err = KeysFromString("9 maret")
	assert.Error(t, err)
}

func TestMonthKeysOfYear(t *testing.T) {
	months := MonthKeysOfYear(2026)
	assert.Len(t, months, 12)
	assert.Equal(t, "2026-01", months[0])
	assert.Equal(t, "2026-12", months[11])
}
