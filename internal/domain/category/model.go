package category

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Usage records that a user consumed a category in a calendar month. Entries are
// written by the submission handler and only read here.
type Usage struct {
	UserID         string
	CategoryID     string
	Month          string
	VisitID        string
	IsFreeCategory bool
	CreatedAt      time.Time
}

// MonthKey formats t as the YYYY-MM ledger key in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthLayout)
}

func ParseMonth(value string) (time.Time, error) {
	parsed, err := time.Parse(monthLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", value)
	}
	return parsed, nil
}

// WeekStart returns Monday 00:00 UTC of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
