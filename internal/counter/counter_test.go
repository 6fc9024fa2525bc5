package counter

import (
	"testing"

	"github.com/sehatmu/amalan/internal/catalog"
	eventdomain "github.com/sehatmu/amalan/internal/event/domain"
	"github.com/sehatmu/amalan/internal/occurrence"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestReconcile_CachedCountNeverTrusted(t *testing.T) {
	r := NewReconciler(zap.NewNop())

	counters := []eventdomain.ManualCounterRecord{{
		EmployeeID: "EMP-1",
		MonthKey:   "2026-03",
		ActivityID: catalog.ActivityInfaqRutin,
		Count:      5,
		Entries: []eventdomain.CounterEntry{
			{Date: "2026-03-01"},
			{Date: "2026-03-08"},
			{Date: "2026-03-15"},
		},
	}}

	achieved := r.Reconcile(catalog.Default(), counters, occurrence.NewBuilder())

	assert.Equal(t, 3, achieved.Get("EMP-1", "2026-03", catalog.ActivityInfaqRutin))
	assert.Equal(t, 1, r.Inconsistencies())
}

func TestReconcile_TakesMaxOfEntriesAndOccurrenceDays(t *testing.T) {
	r := NewReconciler(zap.NewNop())

	occ := occurrence.NewBuilder()
	for _, day := range []string{"01", "08", "15", "22"} {
		occ.Add(occurrence.Canonical{
			EmployeeID: "EMP-1",
			MonthKey:   "2026-03",
			DayKey:     day,
			ActivityID: catalog.ActivitySalamSapa,
		})
	}

	counters := []eventdomain.ManualCounterRecord{{
		EmployeeID: "EMP-1",
		MonthKey:   "2026-03",
		ActivityID: catalog.ActivitySalamSapa,
		Count:      2,
		Entries: []eventdomain.CounterEntry{
			{Date: "2026-03-01"},
			{Date: "2026-03-08"},
		},
	}}

	achieved := r.Reconcile(catalog.Default(), counters, occ)

	// Four distinct occurrence days beat the two raw entries.
	assert.Equal(t, 4, achieved.Get("EMP-1", "2026-03", catalog.ActivitySalamSapa))
}

func TestReconcile_BookEntriesDriveReadingCounters(t *testing.T) {
	r := NewReconciler(zap.NewNop())

	counters := []eventdomain.ManualCounterRecord{{
		EmployeeID: "EMP-1",
		MonthKey:   "2026-03",
		ActivityID: catalog.ActivityMembacaBuku,
		Count:      1,
		BookEntries: []eventdomain.BookEntry{
			{BookTitle: "Riyadhus Shalihin", PagesRead: 80, DateCompleted: "2026-03-12"},
			{BookTitle: "Sirah Nabawiyah", PagesRead: 110, DateCompleted: "2026-03-28"},
		},
	}}

	achieved := r.Reconcile(catalog.Default(), counters, occurrence.NewBuilder())

	assert.Equal(t, 2, achieved.Get("EMP-1", "2026-03", catalog.ActivityMembacaBuku))
	assert.Equal(t, 1, r.Inconsistencies())
}

func TestReconcile_ResolvesCounterLabelsLikeNormalizer(t *testing.T) {
	r := NewReconciler(zap.NewNop())

	// Counter rows arrive with the same messy labels as every other
	// source; a title with stray casing and whitespace still lands on
	// the canonical id.
	counters := []eventdomain.ManualCounterRecord{{
		EmployeeID: "EMP-1",
		MonthKey:   "2026-03",
		ActivityID: "  infaq  RUTIN ",
		Count:      2,
		Entries: []eventdomain.CounterEntry{
			{Date: "2026-03-03"},
			{Date: "2026-03-17"},
		},
	}, {
		EmployeeID: "EMP-1",
		MonthKey:   "2026-03",
		ActivityID: "Membaca Buku",
		Count:      1,
		BookEntries: []eventdomain.BookEntry{
			{BookTitle: "Fiqh Prioritas", PagesRead: 96, DateCompleted: "2026-03-20"},
		},
	}}

	achieved := r.Reconcile(catalog.Default(), counters, occurrence.NewBuilder())

	assert.Equal(t, 2, achieved.Get("EMP-1", "2026-03", catalog.ActivityInfaqRutin))
	assert.Equal(t, 1, achieved.Get("EMP-1", "2026-03", catalog.ActivityMembacaBuku))
	assert.Zero(t, r.Inconsistencies())
}

func TestReconcile_AutomaticActivitiesCountDistinctDays(t *testing.T) {
	r := NewReconciler(zap.NewNop())

	occ := occurrence.NewBuilder()
	for _, day := range []string{"02", "03", "03"} {
		occ.Add(occurrence.Canonical{
			EmployeeID: "EMP-1",
			MonthKey:   "2026-03",
			DayKey:     day,
			ActivityID: catalog.ActivityShalatBerjamaah,
		})
	}

	achieved := r.Reconcile(catalog.Default(), nil, occ)

	assert.Equal(t, 2, achieved.Get("EMP-1", "2026-03", catalog.ActivityShalatBerjamaah))
	assert.Zero(t, r.Inconsistencies())
}

func TestAchievedSet_Months(t *testing.T) {
	achieved := AchievedSet{
		{EmployeeID: "EMP-1", MonthKey: "2026-03", ActivityID: "a"}: 2,
		{EmployeeID: "EMP-1", MonthKey: "2026-04", ActivityID: "a"}: 0,
		{EmployeeID: "EMP-2", MonthKey: "2026-05", ActivityID: "a"}: 1,
	}

	months := achieved.Months("EMP-1")
	assert.True(t, months["2026-03"])
	assert.False(t, months["2026-04"], "zero counts do not make a month qualify")
	assert.False(t, months["2026-05"])
}
