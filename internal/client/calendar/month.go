package calendar

import (
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

const (
	// MaxJobsPerCell is how many jobs a month cell lists before "+N more".
	MaxJobsPerCell = 8

	monthRowBaseHeightPx = 150
	monthJobHeightPx     = 35
)

// MonthCell is one day of the month grid.
type MonthCell struct {
	Day         time.Time
	InMonth     bool
	Today       bool
	Jobs        []models.Job
	Visible     []models.Job
	Overflow    int
	RowHeightPx int
	RowIndex    int
	ColumnIndex int
}

// Overflow is the "+N more" count for a cell holding n jobs.
func Overflow(n int) int {
	return max(0, n-MaxJobsPerCell)
}

// MonthRowHeight is the pixel height shared by the cells of one grid row:
// a base height plus room for the busiest day, capped at MaxJobsPerCell.
func (l Layout) MonthRowHeight(jobs []models.Job, row []time.Time) int {
	busiest := 0
	for _, d := range row {
		busiest = max(busiest, len(l.JobsForDay(jobs, d)))
	}
	return monthRowBaseHeightPx + min(busiest, MaxJobsPerCell)*monthJobHeightPx
}

// Month lays out the 42-cell grid for day's month.
func (l Layout) Month(jobs []models.Job, day, now time.Time) []MonthCell {
	grid := l.MonthGrid(day)
	cells := make([]MonthCell, 0, len(grid))

	for r := 0; r < len(grid)/daysInWeek; r++ {
		row := grid[r*daysInWeek : (r+1)*daysInWeek]
		height := l.MonthRowHeight(jobs, row)

		for c, d := range row {
			dayJobs := SortJobs(l.JobsForDay(jobs, d))
			visible := dayJobs
			if len(visible) > MaxJobsPerCell {
				visible = visible[:MaxJobsPerCell]
			}
			cells = append(cells, MonthCell{
				Day:         d,
				InMonth:     l.SameMonth(d, day),
				Today:       l.IsToday(d, now),
				Jobs:        dayJobs,
				Visible:     visible,
				Overflow:    Overflow(len(dayJobs)),
				RowHeightPx: height,
				RowIndex:    r,
				ColumnIndex: c,
			})
		}
	}
	return cells
}
