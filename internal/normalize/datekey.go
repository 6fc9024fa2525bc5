package normalize

import (
	"time"

	"github.com/sehatmu/amalan/internal/event/domain"
)

const (
	monthKeyLayout = "2006-01"
	dayKeyLayout   = "02"
	dateLayout     = "2006-01-02"
)

// Keys derives the (monthKey, dayKey) partition from a timestamp. Every
// normalizer goes through this one helper so the derivation cannot drift
// between sources.
func Keys(t time.Time) (monthKey, dayKey string) {
	t = t.UTC()
	return t.Format(monthKeyLayout), t.Format(dayKeyLayout)
}

// KeysFromString derives the partition keys from a date string. Both the
// plain "2006-01-02" form and RFC 3339 timestamps appear in source rows.
func KeysFromString(value string) (monthKey, dayKey string, err error) {
	if t, perr := time.Parse(dateLayout, value); perr == nil {
		monthKey, dayKey = Keys(t)
		return monthKey, dayKey, nil
	}
	t, perr := time.Parse(time.RFC3339, value)
	if perr != nil {
		return "", "", domain.ErrInvalidMonthKey
	}
	monthKey, dayKey = Keys(t)
	return monthKey, dayKey, nil
}

// MonthKeyOf returns the month partition of a timestamp.
func MonthKeyOf(t time.Time) string {
	return t.UTC().Format(monthKeyLayout)
}

// MonthKeysInRange lists the month keys a range touches, in order.
func MonthKeysInRange(r domain.DateRange) []string {
	if !r.From.Before(r.To) {
		return nil
	}
	var out []string
	cur := time.Date(r.From.Year(), r.From.Month(), 1, 0, 0, 0, 0, time.UTC)
	for cur.Before(r.To) {
		out = append(out, cur.Format(monthKeyLayout))
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// MonthKeysOfYear lists the twelve month keys of a year.
func MonthKeysOfYear(year int) []string {
	out := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).Format(monthKeyLayout))
	}
	return out
}
