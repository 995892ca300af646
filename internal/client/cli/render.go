package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/client/services"
)

func newTable(w io.Writer, title string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	if title != "" {
		tw.SetTitle(title)
	}
	return tw
}

func timeRange(j models.Job, loc *time.Location) string {
	if !j.HasScheduledTime() {
		return "-"
	}
	return j.ScheduledStartTime.In(loc).Format("15:04") + "-" + j.ScheduledEndTime.In(loc).Format("15:04")
}

func teamName(j models.Job) string {
	if j.Team == nil {
		return "-"
	}
	return j.Team.Name
}

func jobTypeName(j models.Job) string {
	if j.JobType == nil {
		return "-"
	}
	return j.JobType.Name
}

func renderDay(w io.Writer, v *services.DayView, loc *time.Location) {
	tw := newTable(w, v.Day.Format("Monday, 02 Jan 2006"))
	tw.AppendHeader(table.Row{"Time", "Job", "Type", "Team", "Status", "Top", "Height", "ID"})
	for _, p := range v.Timed {
		tw.AppendRow(table.Row{
			timeRange(p.Job, loc), p.Job.Title(), jobTypeName(p.Job), teamName(p.Job),
			models.HumanizeEnum(string(p.Job.Status)), fmt.Sprintf("%.0f", p.Top), fmt.Sprintf("%.0f", p.Height), p.Job.ID,
		})
	}
	if len(v.Untimed) > 0 {
		tw.AppendSeparator()
		for _, j := range v.Untimed {
			tw.AppendRow(table.Row{"unscheduled", j.Title(), jobTypeName(j), teamName(j), models.HumanizeEnum(string(j.Status)), "", "", j.ID})
		}
	}
	if v.ShowNow {
		tw.AppendFooter(table.Row{"now", fmt.Sprintf("at %.0fpx", v.NowOffset)})
	}
	tw.Render()
}

func renderWeek(w io.Writer, v *services.WeekView, loc *time.Location) {
	columns := make([][]string, len(v.Days))
	for _, p := range v.Timed {
		columns[p.DayIndex] = append(columns[p.DayIndex], p.Job.ScheduledStartTime.In(loc).Format("15:04")+" "+p.Job.Title())
	}
	for i, jobs := range v.Untimed {
		for _, j := range jobs {
			columns[i] = append(columns[i], "* "+j.Title())
		}
	}

	title := ""
	if len(v.Days) > 0 {
		title = "Week of " + v.Days[0].Format("02 Jan 2006")
	}
	tw := newTable(w, title)

	header := make(table.Row, len(v.Days))
	for i, d := range v.Days {
		label := d.Format("Mon 02")
		if i == v.Today {
			label += " (today)"
		}
		header[i] = label
	}
	tw.AppendHeader(header)

	depth := 0
	for _, c := range columns {
		depth = max(depth, len(c))
	}
	for r := 0; r < depth; r++ {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			if r < len(c) {
				row[i] = c[r]
			} else {
				row[i] = ""
			}
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

func renderMonth(w io.Writer, v *services.MonthView) {
	tw := newTable(w, v.Month.Format("January 2006"))
	tw.AppendHeader(table.Row{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"})

	var row table.Row
	for _, c := range v.Cells {
		row = append(row, monthCell(c))
		if len(row) == 7 {
			tw.AppendRow(row)
			row = nil
		}
	}
	tw.Render()
}

func monthCell(c calendar.MonthCell) string {
	var b strings.Builder
	day := strconv.Itoa(c.Day.Day())
	switch {
	case c.Today:
		day = "[" + day + "]"
	case !c.InMonth:
		day = "(" + day + ")"
	}
	b.WriteString(day)
	for _, j := range c.Visible {
		b.WriteString("\n" + j.Title())
	}
	if c.Overflow > 0 {
		fmt.Fprintf(&b, "\n+%d more", c.Overflow)
	}
	return b.String()
}

func renderAgenda(w io.Writer, v *services.AgendaView, loc *time.Location) {
	tw := newTable(w, fmt.Sprintf("Agenda %s - %s", v.From.Format("02 Jan"), v.To.AddDate(0, 0, -1).Format("02 Jan 2006")))
	tw.AppendHeader(table.Row{"Day", "Time", "Job", "Team", "Status", "ID"})
	for i, d := range v.Days {
		if i > 0 {
			tw.AppendSeparator()
		}
		for k, j := range d.Jobs {
			label := ""
			if k == 0 {
				label = d.Day.Format("Mon 02 Jan")
			}
			tw.AppendRow(table.Row{label, timeRange(j, loc), j.Title(), teamName(j), models.HumanizeEnum(string(j.Status)), j.ID})
		}
	}
	if len(v.Days) == 0 {
		tw.AppendRow(table.Row{"no jobs"})
	}
	tw.Render()
}

func renderJob(w io.Writer, j models.Job, loc *time.Location) {
	tw := newTable(w, j.Title())
	tw.AppendRow(table.Row{"ID", j.ID})
	tw.AppendRow(table.Row{"Status", models.HumanizeEnum(string(j.Status))})
	tw.AppendRow(table.Row{"Date", j.CalendarDate().In(loc).Format("Mon 02 Jan 2006")})
	tw.AppendRow(table.Row{"Time", timeRange(j, loc)})
	tw.AppendRow(table.Row{"Type", jobTypeName(j)})
	tw.AppendRow(table.Row{"Team", teamName(j)})
	if j.Address != nil {
		tw.AppendRow(table.Row{"Address", j.Address.FullAddress()})
	}
	if j.Client != nil {
		tw.AppendRow(table.Row{"Phone", j.Client.Phone1})
	}
	if j.ChargeAmount != nil {
		tw.AppendRow(table.Row{"Charge", fmt.Sprintf("%.2f %s", *j.ChargeAmount, models.HumanizeEnum(string(j.ChargeBy)))})
	}
	tw.AppendRow(table.Row{"Paid", j.IsPaid})
	if j.OtherInformation != "" {
		tw.AppendRow(table.Row{"Notes", j.OtherInformation})
	}
	if j.CancelReason != "" {
		tw.AppendRow(table.Row{"Cancel reason", j.CancelReason})
	}
	tw.Render()
}

func renderTeams(w io.Writer, teams []models.Team) {
	tw := newTable(w, "Teams")
	tw.AppendHeader(table.Row{"ID", "Name", "Color", "Active"})
	for _, t := range teams {
		tw.AppendRow(table.Row{t.ID, t.Name, t.Color, t.IsActive})
	}
	tw.Render()
}

func renderClients(w io.Writer, clients []models.Client) {
	tw := newTable(w, "Clients")
	tw.AppendHeader(table.Row{"ID", "Name", "Phone", "Address"})
	for _, c := range clients {
		addr := ""
		if len(c.Addresses) > 0 {
			addr = c.Addresses[0].FullAddress()
		}
		tw.AppendRow(table.Row{c.ID, c.FullName(), c.Phone1, addr})
	}
	tw.Render()
}

func renderUsers(w io.Writer, users []models.UserProfile) {
	tw := newTable(w, "Users")
	tw.AppendHeader(table.Row{"", "Name", "Login", "Role"})
	for _, u := range users {
		tw.AppendRow(table.Row{models.Initials(u.FullName), u.FullName, u.Login, models.HumanizeEnum(u.Role)})
	}
	tw.Render()
}

func renderJobTypes(w io.Writer, types []models.JobType) {
	tw := newTable(w, "Job types")
	tw.AppendHeader(table.Row{"ID", "Short", "Name", "Active"})
	for _, jt := range types {
		tw.AppendRow(table.Row{jt.ID, jt.Short, jt.Name, jt.IsActive})
	}
	tw.Render()
}
