package domain

import (
	"context"
	"errors"
	"time"
)

// DateRange is a half-open [From, To) window in UTC.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// MonthRange returns the range covering one "2006-01" month key.
func MonthRange(monthKey string) (DateRange, error) {
	start, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return DateRange{}, ErrInvalidMonthKey
	}
	return DateRange{From: start, To: start.AddDate(0, 1, 0)}, nil
}

// YearRange returns the range covering a calendar year.
func YearRange(year int) DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: start, To: start.AddDate(1, 0, 0)}
}

// Provider fetches raw source rows for a window. Implemented by the
// persistence layer; the engine itself holds no state.
type Provider interface {
	FetchPrayerEvents(ctx context.Context, employeeIDs []string, r DateRange) ([]PrayerEvent, error)
	FetchGroupSessionEvents(ctx context.Context, employeeIDs []string, r DateRange) ([]GroupSessionEvent, error)
	FetchScheduledActivityEvents(ctx context.Context, employeeIDs []string, r DateRange) ([]ScheduledActivityEvent, error)
	FetchGroupReadingSessions(ctx context.Context, r DateRange) ([]GroupReadingSession, error)
	FetchApprovedExceptions(ctx context.Context, employeeIDs []string, r DateRange) ([]ExceptionRequest, error)
	FetchManualCounters(ctx context.Context, employeeIDs []string, monthKeys []string) ([]ManualCounterRecord, error)
	FetchReadingLogs(ctx context.Context, employeeIDs []string, r DateRange) ([]ReadingLogEntry, error)
}

var (
	ErrInvalidMonthKey = errors.New("invalid_month_key")
	ErrInvalidRange    = errors.New("invalid_date_range")
)
