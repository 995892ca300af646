package calendar

import (
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

const (
	DefaultHourHeightPx = 60.0
	MinEventHeightPx    = 30.0
)

// HourRange is the visible part of a day on a time grid, [Start, End) in
// hours since local midnight.
type HourRange struct {
	Start int
	End   int
}

// DefaultHourRange shows the whole day.
var DefaultHourRange = HourRange{Start: 0, End: 24}

func (r HourRange) contains(hour float64) bool {
	return hour >= float64(r.Start) && hour < float64(r.End)
}

// Hours lists the labelled hour rows of the range.
func (r HourRange) Hours() []int {
	if r.End <= r.Start {
		return nil
	}
	out := make([]int, 0, r.End-r.Start)
	for h := r.Start; h < r.End; h++ {
		out = append(out, h)
	}
	return out
}

// PositionedJob is a job placed on a time grid.
type PositionedJob struct {
	Job models.Job
	// Top is the pixel offset from the top of the visible hour range.
	Top float64
	// Height is the pixel span, never below MinEventHeightPx.
	Height float64
	// DayIndex is the column in a week grid, 0 for Sunday.
	DayIndex int
}

// PositionForWeek places the timed jobs of the week holding day. A job whose
// start time falls outside hours is left out entirely, not clipped. Results
// are ordered by column, then in SortJobs order.
func (l Layout) PositionForWeek(jobs []models.Job, day time.Time, hours HourRange, hourHeightPx float64) []PositionedJob {
	out := make([]PositionedJob, 0)
	for i, d := range l.WeekDays(day) {
		out = append(out, l.positionDay(jobs, d, i, hours, hourHeightPx)...)
	}
	return out
}

// PositionForDay places the timed jobs of a single day, DayIndex 0.
func (l Layout) PositionForDay(jobs []models.Job, day time.Time, hours HourRange, hourHeightPx float64) []PositionedJob {
	return l.positionDay(jobs, day, 0, hours, hourHeightPx)
}

func (l Layout) positionDay(jobs []models.Job, day time.Time, column int, hours HourRange, hourHeightPx float64) []PositionedJob {
	var out []PositionedJob
	for _, j := range SortJobs(l.JobsForDay(jobs, day)) {
		if !j.HasScheduledTime() {
			continue
		}
		start := l.hourOfDay(*j.ScheduledStartTime)
		if !hours.contains(start) {
			continue
		}
		duration := j.ScheduledEndTime.Sub(*j.ScheduledStartTime).Hours()

		out = append(out, PositionedJob{
			Job:      j,
			Top:      max(0, (start-float64(hours.Start))*hourHeightPx),
			Height:   max(duration*hourHeightPx, MinEventHeightPx),
			DayIndex: column,
		})
	}
	return out
}

// hourOfDay is t's local wall-clock time as fractional hours.
func (l Layout) hourOfDay(t time.Time) float64 {
	lt := t.In(l.Location())
	return float64(lt.Hour()) + float64(lt.Minute())/60 + float64(lt.Second())/3600
}

// NowLineOffset is the pixel offset of now on a grid showing hours, and
// false when now is outside the range.
func (l Layout) NowLineOffset(now time.Time, hours HourRange, hourHeightPx float64) (float64, bool) {
	h := l.hourOfDay(now)
	if !hours.contains(h) {
		return 0, false
	}
	return (h - float64(hours.Start)) * hourHeightPx, true
}
