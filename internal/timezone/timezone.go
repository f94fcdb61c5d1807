package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone data for hosts without a system database

	"github.com/vytor/phraseflash/internal/logger"
)

// Date is a calendar date with no time or location attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Load resolves an IANA zone name. Empty or unknown names resolve to UTC.
func Load(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Default().WithPrefix("timezone").Warn("unknown timezone %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// LocalDate returns the calendar date of t as seen in loc.
func LocalDate(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateFunc binds LocalDate to loc.
func DateFunc(loc *time.Location) func(time.Time) Date {
	return func(t time.Time) Date {
		return LocalDate(t, loc)
	}
}

// StartOfDay is local midnight of d in loc.
func StartOfDay(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// WeekStartUTC returns Monday 00:00 UTC of the week containing now.
func WeekStartUTC(now time.Time) time.Time {
	now = now.UTC()
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
