package stats

import "time"

// Range is a half-open time window [From, To) used to scope count and sum
// queries. Half-open ranges keep adjacent buckets from double-counting rows
// created exactly on a boundary.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// StartOfDay truncates to midnight in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today covers the calendar day containing now
func Today(now time.Time) Range {
	start := StartOfDay(now)
	return Range{From: start, To: start.AddDate(0, 0, 1)}
}

// DayAt covers the calendar day a given number of days before now
// (daysAgo = 0 is today)
func DayAt(now time.Time, daysAgo int) Range {
	start := StartOfDay(now).AddDate(0, 0, -daysAgo)
	return Range{From: start, To: start.AddDate(0, 0, 1)}
}

// StartOfWeek walks back to the configured first day of the week
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := StartOfDay(t)
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// ThisWeek covers the calendar week containing now
func ThisWeek(now time.Time, weekStart time.Weekday) Range {
	start := StartOfWeek(now, weekStart)
	return Range{From: start, To: start.AddDate(0, 0, 7)}
}

// LastWeek covers the full calendar week before the current one
func LastWeek(now time.Time, weekStart time.Weekday) Range {
	start := StartOfWeek(now, weekStart)
	return Range{From: start.AddDate(0, 0, -7), To: start}
}

// StartOfMonth truncates to the first of the month
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ThisMonth covers the calendar month containing now
func ThisMonth(now time.Time) Range {
	start := StartOfMonth(now)
	return Range{From: start, To: start.AddDate(0, 1, 0)}
}

// LastMonth covers the full calendar month before the current one
func LastMonth(now time.Time) Range {
	start := StartOfMonth(now)
	return Range{From: start.AddDate(0, -1, 0), To: start}
}

// MonthAt covers the calendar month a given number of months before now
// (monthsAgo = 0 is the current month)
func MonthAt(now time.Time, monthsAgo int) Range {
	start := StartOfMonth(now).AddDate(0, -monthsAgo, 0)
	return Range{From: start, To: start.AddDate(0, 1, 0)}
}

// AllTime is an unbounded window; query helpers treat the zero From/To as
// "no time filter".
var AllTime = Range{}

// IsAllTime reports whether the range carries no bounds
func (r Range) IsAllTime() bool {
	return r.From.IsZero() && r.To.IsZero()
}
