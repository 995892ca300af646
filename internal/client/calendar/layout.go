package calendar

import (
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// DayKeyFormat is the layout of GroupByDay keys.
const DayKeyFormat = "2006-01-02"

const (
	daysInWeek   = 7
	monthCells   = 42
	agendaLength = 30
)

// Layout evaluates day boundaries in a fixed location.
type Layout struct {
	loc *time.Location
}

// New returns a Layout for loc. A nil loc means time.Local.
func New(loc *time.Location) Layout {
	if loc == nil {
		loc = time.Local
	}
	return Layout{loc: loc}
}

func (l Layout) Location() *time.Location {
	if l.loc == nil {
		return time.Local
	}
	return l.loc
}

// StartOfDay returns midnight of t's day in the layout location.
func (l Layout) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(l.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, l.Location())
}

// SameDay reports whether a and b fall on the same local calendar day.
func (l Layout) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(l.Location()).Date()
	by, bm, bd := b.In(l.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same local month.
func (l Layout) SameMonth(a, b time.Time) bool {
	ay, am, _ := a.In(l.Location()).Date()
	by, bm, _ := b.In(l.Location()).Date()
	return ay == by && am == bm
}

func (l Layout) IsToday(day, now time.Time) bool {
	return l.SameDay(day, now)
}

// DayKey formats t's local day as YYYY-MM-DD.
func (l Layout) DayKey(t time.Time) string {
	return t.In(l.Location()).Format(DayKeyFormat)
}

// JobsForDay returns the jobs whose calendar date is on day, in input order.
// The time-of-day part of the job date does not matter.
func (l Layout) JobsForDay(jobs []models.Job, day time.Time) []models.Job {
	out := make([]models.Job, 0)
	for _, j := range jobs {
		if l.SameDay(j.CalendarDate(), day) {
			out = append(out, j)
		}
	}
	return out
}

// GroupByDay buckets jobs by DayKey of their calendar date. Every bucket is
// in SortJobs order.
func (l Layout) GroupByDay(jobs []models.Job) map[string][]models.Job {
	groups := make(map[string][]models.Job)
	for _, j := range jobs {
		k := l.DayKey(j.CalendarDate())
		groups[k] = append(groups[k], j)
	}
	for k, g := range groups {
		groups[k] = SortJobs(g)
	}
	return groups
}

// IsInPast reports whether the job is over at now: its scheduled end, or
// for untimed jobs its calendar date, is strictly before now.
func IsInPast(j models.Job, now time.Time) bool {
	if j.HasScheduledTime() {
		return j.ScheduledEndTime.Before(now)
	}
	return j.CalendarDate().Before(now)
}

// WeekDays returns the seven days, Sunday first, of the week holding day.
func (l Layout) WeekDays(day time.Time) []time.Time {
	start := l.weekStart(day)
	days := make([]time.Time, daysInWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func (l Layout) weekStart(day time.Time) time.Time {
	sod := l.StartOfDay(day)
	return sod.AddDate(0, 0, -int(sod.Weekday()))
}

// MonthGrid returns the 42 days (six full weeks) shown for day's month,
// starting on the Sunday on or before the 1st.
func (l Layout) MonthGrid(day time.Time) []time.Time {
	y, m, _ := day.In(l.Location()).Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, l.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]time.Time, monthCells)
	for i := range cells {
		cells[i] = start.AddDate(0, 0, i)
	}
	return cells
}

// DayBucket is one day of the agenda.
type DayBucket struct {
	Day  time.Time
	Key  string
	Jobs []models.Job
}

// Agenda returns the non-empty days in [from, to) with their jobs in
// SortJobs order.
func (l Layout) Agenda(jobs []models.Job, from, to time.Time) []DayBucket {
	groups := l.GroupByDay(jobs)

	var out []DayBucket
	for d := l.StartOfDay(from); d.Before(to); d = d.AddDate(0, 0, 1) {
		k := l.DayKey(d)
		if g := groups[k]; len(g) > 0 {
			out = append(out, DayBucket{Day: d, Key: k, Jobs: g})
		}
	}
	return out
}
