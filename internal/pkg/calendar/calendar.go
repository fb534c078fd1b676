package calendar

import (
	"fmt"
	"iter"
	"time"
)

// Date returns the UTC midnight of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock and location of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// MonthBounds returns the first and the last day of the month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := Date(year, month, 1)
	return first, first.AddDate(0, 1, -1)
}

// IsBusinessDay reports whether the date falls on Monday through Friday.
// There is no holiday calendar.
func IsBusinessDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDays yields the Monday-Friday dates of the month in ascending order.
// The sequence can be ranged over any number of times.
func BusinessDays(month time.Month, year int) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		first, last := MonthBounds(year, month)
		for date := range DateRange(first, last) {
			if !IsBusinessDay(date) {
				continue
			}
			if !yield(date) {
				return
			}
		}
	}
}

// BusinessDaySet materializes BusinessDays for membership tests.
func BusinessDaySet(month time.Month, year int) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, 23)
	for date := range BusinessDays(month, year) {
		set[date] = struct{}{}
	}
	return set
}

// DateRange yields every date from start to end inclusive.
// It yields nothing when end is before start.
func DateRange(start, end time.Time) iter.Seq[time.Time] {
	start, end = Truncate(start), Truncate(end)
	return func(yield func(time.Time) bool) {
		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			if !yield(date) {
				return
			}
		}
	}
}

var monthNames = [...]string{
	time.January:   "январь",
	time.February:  "февраль",
	time.March:     "март",
	time.April:     "апрель",
	time.May:       "май",
	time.June:      "июнь",
	time.July:      "июль",
	time.August:    "август",
	time.September: "сентябрь",
	time.October:   "октябрь",
	time.November:  "ноябрь",
	time.December:  "декабрь",
}

// MonthName returns the standalone Russian name of the month.
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month]
}

// FormatCaption renders the statement period caption, e.g. "за апрель 2024".
func FormatCaption(year int, month time.Month) string {
	return fmt.Sprintf("за %s %d", MonthName(month), year)
}
