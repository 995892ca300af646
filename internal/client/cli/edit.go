package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/client/services"
)

const slotFormat = dayFormat + " 15:04"

// parseSlot reads "YYYY-MM-DD [HH:MM-HH:MM]" in loc.
func parseSlot(args []string, loc *time.Location) (services.Slot, error) {
	var slot services.Slot
	if len(args) == 0 {
		return slot, errors.New("date is required, want YYYY-MM-DD")
	}
	d, err := time.ParseInLocation(dayFormat, args[0], loc)
	if err != nil {
		return slot, fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
	}
	slot.Date = d
	if len(args) == 1 {
		return slot, nil
	}

	from, to, ok := strings.Cut(args[1], "-")
	if !ok {
		return slot, fmt.Errorf("invalid time range %q, want HH:MM-HH:MM", args[1])
	}
	start, err := time.ParseInLocation(slotFormat, args[0]+" "+from, loc)
	if err != nil {
		return slot, fmt.Errorf("invalid start time %q, want HH:MM", from)
	}
	end, err := time.ParseInLocation(slotFormat, args[0]+" "+to, loc)
	if err != nil {
		return slot, fmt.Errorf("invalid end time %q, want HH:MM", to)
	}
	slot.Start, slot.End = &start, &end
	return slot, nil
}

// AddJob creates a job for a client. The active team filter, if any,
// assigns the job to that team.
func (a *App) AddJob(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: add <clientId> <jobTypeId> <YYYY-MM-DD> [HH:MM-HH:MM]")
	}
	slot, err := parseSlot(args[2:], a.location())
	if err != nil {
		return err
	}
	in := models.JobInput{
		ClientID:           args[0],
		JobTypeID:          args[1],
		TeamID:             a.filter.TeamID,
		Date:               &slot.Date,
		ScheduledStartTime: slot.Start,
		ScheduledEndTime:   slot.End,
	}
	j, err := a.schedule.CreateJob(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Job %s created\n", j.ID)
	renderJob(a.out, *j, a.location())
	return nil
}

func (a *App) Reschedule(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: reschedule <jobId> <YYYY-MM-DD> [HH:MM-HH:MM]")
	}
	slot, err := parseSlot(args[1:], a.location())
	if err != nil {
		return err
	}
	j, err := a.schedule.Reschedule(ctx, args[0], slot)
	if err != nil {
		return err
	}
	renderJob(a.out, *j, a.location())
	return nil
}

// SetStatus changes a job's status. The words after the status are the
// cancel reason.
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set-status <jobId> <scheduled|in-progress|completed|cancelled> [reason]")
	}
	status, err := models.ParseJobStatus(args[1])
	if err != nil {
		return err
	}
	j, err := a.schedule.SetJobStatus(ctx, args[0], status, strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	renderJob(a.out, *j, a.location())
	return nil
}

func (a *App) DeleteJob(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: delete <jobId>")
	}
	if err := a.schedule.DeleteJob(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Job %s deleted\n", args[0])
	return nil
}

func (a *App) AddTeam(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: team-add <name>")
	}
	t, err := a.directory.CreateTeam(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Team %q created with id %s\n", t.Name, t.ID)
	return nil
}

func (a *App) RenameTeam(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: team-rename <id> <name>")
	}
	t, err := a.directory.RenameTeam(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Team %s renamed to %q\n", t.ID, t.Name)
	return nil
}

// DeleteTeam removes a team. A team filter naming it is cleared.
func (a *App) DeleteTeam(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: team-delete <id>")
	}
	if err := a.directory.DeleteTeam(ctx, args[0]); err != nil {
		return err
	}
	if a.filter.TeamID == args[0] {
		a.filter.TeamID = ""
	}
	fmt.Fprintf(a.out, "Team %s deleted\n", args[0])
	return nil
}
