package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
)

const dayFormat = "2006-01-02"

func (a *App) location() *time.Location {
	return a.schedule.Layout().Location()
}

func (a *App) currentDay() time.Time {
	if a.day.IsZero() {
		return a.now().In(a.location())
	}
	return a.day
}

// ShowView switches to view, optionally jumping to the YYYY-MM-DD day in
// args, and renders it.
func (a *App) ShowView(ctx context.Context, view calendar.ViewKind, args []string) error {
	if len(args) > 0 {
		d, err := time.ParseInLocation(dayFormat, args[0], a.location())
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
		}
		a.day = d
	}
	a.view = view
	return a.render(ctx)
}

// Move shifts the current view by n pages.
func (a *App) Move(ctx context.Context, n int) error {
	a.day = a.schedule.Layout().Shift(a.view, a.currentDay(), n)
	return a.render(ctx)
}

func (a *App) Today(ctx context.Context) error {
	a.day = time.Time{}
	return a.render(ctx)
}

// SetTeam narrows the views to one team; "all" clears the filter.
func (a *App) SetTeam(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: team <id|all>")
	}
	if strings.EqualFold(args[0], "all") {
		a.filter.TeamID = ""
	} else {
		a.filter.TeamID = args[0]
	}
	return a.render(ctx)
}

func (a *App) ShowJob(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: job <id>")
	}
	j, err := a.schedule.Job(ctx, args[0])
	if err != nil {
		return err
	}
	renderJob(a.out, *j, a.location())
	return nil
}

func (a *App) render(ctx context.Context) error {
	day := a.currentDay()
	loc := a.location()

	switch a.view {
	case calendar.ViewDay:
		v, err := a.schedule.Day(ctx, day, a.filter)
		if err != nil {
			return err
		}
		renderDay(a.out, v, loc)
	case calendar.ViewMonth:
		v, err := a.schedule.Month(ctx, day, a.filter)
		if err != nil {
			return err
		}
		renderMonth(a.out, v)
	case calendar.ViewAgenda:
		v, err := a.schedule.Agenda(ctx, day, a.filter)
		if err != nil {
			return err
		}
		renderAgenda(a.out, v, loc)
	default:
		v, err := a.schedule.Week(ctx, day, a.filter)
		if err != nil {
			return err
		}
		renderWeek(a.out, v, loc)
	}
	return nil
}

func (a *App) Teams(ctx context.Context) error {
	teams, err := a.directory.Teams(ctx)
	if err != nil {
		return err
	}
	renderTeams(a.out, teams)
	return nil
}

func (a *App) Clients(ctx context.Context) error {
	clients, err := a.directory.Clients(ctx)
	if err != nil {
		return err
	}
	renderClients(a.out, clients)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.directory.Users(ctx)
	if err != nil {
		return err
	}
	renderUsers(a.out, users)
	return nil
}

func (a *App) JobTypes(ctx context.Context) error {
	types, err := a.directory.JobTypes(ctx)
	if err != nil {
		return err
	}
	renderJobTypes(a.out, types)
	return nil
}
