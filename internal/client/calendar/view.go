package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// ViewKind selects a calendar presentation.
type ViewKind string

const (
	ViewDay    ViewKind = "day"
	ViewWeek   ViewKind = "week"
	ViewMonth  ViewKind = "month"
	ViewAgenda ViewKind = "agenda"
)

func ParseViewKind(s string) (ViewKind, error) {
	switch v := ViewKind(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewDay, ViewWeek, ViewMonth, ViewAgenda:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Window returns the half-open [from, to) range of days a view of day shows.
// The month window is the whole 42-cell grid, so leading and trailing days
// of neighbouring months are covered as well.
func (l Layout) Window(view ViewKind, day time.Time) (from, to time.Time) {
	switch view {
	case ViewWeek:
		from = l.weekStart(day)
		return from, from.AddDate(0, 0, daysInWeek)
	case ViewMonth:
		from = l.MonthGrid(day)[0]
		return from, from.AddDate(0, 0, monthCells)
	case ViewAgenda:
		from = l.StartOfDay(day)
		return from, from.AddDate(0, 0, agendaLength)
	default:
		from = l.StartOfDay(day)
		return from, from.AddDate(0, 0, 1)
	}
}

// Shift moves day by n steps of the view: days, weeks, months or agenda
// pages.
func (l Layout) Shift(view ViewKind, day time.Time, n int) time.Time {
	sod := l.StartOfDay(day)
	switch view {
	case ViewWeek:
		return sod.AddDate(0, 0, n*daysInWeek)
	case ViewMonth:
		y, m, _ := sod.Date()
		return time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, l.Location())
	case ViewAgenda:
		return sod.AddDate(0, 0, n*agendaLength)
	default:
		return sod.AddDate(0, 0, n)
	}
}

// WindowFilter is f narrowed to the view window of day.
func (l Layout) WindowFilter(view ViewKind, day time.Time, f models.JobFilter) models.JobFilter {
	f.From, f.To = l.Window(view, day)
	return f
}
