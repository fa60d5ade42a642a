package listing

import "time"

// Tab is a pre-filtered view of the employee list
type Tab string

const (
	TabAll       Tab = "all"
	TabThisWeek  Tab = "this_week"
	TabThisMonth Tab = "this_month"
	TabThisYear  Tab = "this_year"
)

// Tabs in display order
var Tabs = []Tab{TabAll, TabThisWeek, TabThisMonth, TabThisYear}

var tabLabels = map[Tab]string{
	TabAll:       "All",
	TabThisWeek:  "This Week",
	TabThisMonth: "This Month",
	TabThisYear:  "This Year",
}

func (t Tab) Label() string {
	return tabLabels[t]
}

func (t Tab) Valid() bool {
	_, ok := tabLabels[t]
	return ok
}

// DateRange is a half-open range of calendar days [Start, End)
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Last is the final day inside the range
func (r DateRange) Last() time.Time {
	return r.End.AddDate(0, 0, -1)
}

// Contains reports whether the calendar day of t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	day := startOfDay(t.In(r.Start.Location()))
	return !day.Before(r.Start) && day.Before(r.End)
}

// TabRange returns the date_hired range of tab relative to now in loc.
// Weeks start on Monday. TabAll has no range.
func TabRange(tab Tab, now time.Time, loc *time.Location) (DateRange, bool) {
	now = now.In(loc)
	today := startOfDay(now)

	switch tab {
	case TabThisWeek:
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return DateRange{Start: start, End: start.AddDate(0, 0, 7)}, true
	case TabThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(0, 1, 0)}, true
	case TabThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(1, 0, 0)}, true
	default:
		return DateRange{}, false
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
