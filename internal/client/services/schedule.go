package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// DayView is a single day on a time grid.
type DayView struct {
	Day     time.Time
	Hours   calendar.HourRange
	Timed   []calendar.PositionedJob
	Untimed []models.Job
	// NowOffset is valid when ShowNow is set: the day is today and the
	// current time is inside Hours.
	NowOffset float64
	ShowNow   bool
}

// WeekView is seven day columns, Sunday first.
type WeekView struct {
	Days    []time.Time
	Hours   calendar.HourRange
	Timed   []calendar.PositionedJob
	Untimed [][]models.Job
	Today   int // column of today, -1 when outside the week
}

type MonthView struct {
	Month time.Time
	Cells []calendar.MonthCell
}

type AgendaView struct {
	From time.Time
	To   time.Time
	Days []calendar.DayBucket
}

// ScheduleService loads the jobs of a calendar view and lays them out.
type ScheduleService interface {
	Day(ctx context.Context, day time.Time, f models.JobFilter) (*DayView, error)
	Week(ctx context.Context, day time.Time, f models.JobFilter) (*WeekView, error)
	Month(ctx context.Context, day time.Time, f models.JobFilter) (*MonthView, error)
	Agenda(ctx context.Context, day time.Time, f models.JobFilter) (*AgendaView, error)
	Job(ctx context.Context, id string) (*models.Job, error)
	Layout() calendar.Layout

	CreateJob(ctx context.Context, in models.JobInput) (*models.Job, error)
	Reschedule(ctx context.Context, id string, slot Slot) (*models.Job, error)
	SetJobStatus(ctx context.Context, id string, status models.JobStatus, reason string) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// ErrInvalidJob is returned for job changes rejected before any request.
var ErrInvalidJob = errors.New("invalid job")

// Slot is the calendar placement of a job. Start and End are both set for a
// timed job and both nil for an untimed one.
type Slot struct {
	Date  time.Time
	Start *time.Time
	End   *time.Time
}

func (s Slot) validate() error {
	if s.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidJob)
	}
	if (s.Start == nil) != (s.End == nil) {
		return fmt.Errorf("%w: start and end go together", ErrInvalidJob)
	}
	if s.Start != nil && !s.End.After(*s.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidJob)
	}
	return nil
}

func (s Slot) apply(in *models.JobInput) {
	d := s.Date
	in.Date = &d
	in.ScheduledStartTime = s.Start
	in.ScheduledEndTime = s.End
}

type scheduleService struct {
	client       client.Client
	layout       calendar.Layout
	hours        calendar.HourRange
	hourHeightPx float64
	now          func() time.Time
}

func NewScheduleService(c client.Client, layout calendar.Layout, hours calendar.HourRange) ScheduleService {
	return &scheduleService{
		client:       c,
		layout:       layout,
		hours:        hours,
		hourHeightPx: calendar.DefaultHourHeightPx,
		now:          time.Now,
	}
}

func (s *scheduleService) Layout() calendar.Layout {
	return s.layout
}

// fetch lists the jobs of the view window. The filter is applied again
// locally in case the server ignores part of it.
func (s *scheduleService) fetch(ctx context.Context, view calendar.ViewKind, day time.Time, f models.JobFilter) ([]models.Job, error) {
	f = s.layout.WindowFilter(view, day, f)
	jobs, err := s.client.ListJobs(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return calendar.FilterJobs(jobs, f), nil
}

func (s *scheduleService) Day(ctx context.Context, day time.Time, f models.JobFilter) (*DayView, error) {
	jobs, err := s.fetch(ctx, calendar.ViewDay, day, f)
	if err != nil {
		return nil, err
	}

	_, untimed := calendar.SeparateByTime(s.layout.JobsForDay(jobs, day))
	v := &DayView{
		Day:     s.layout.StartOfDay(day),
		Hours:   s.hours,
		Timed:   s.layout.PositionForDay(jobs, day, s.hours, s.hourHeightPx),
		Untimed: untimed,
	}
	if now := s.now(); s.layout.IsToday(day, now) {
		v.NowOffset, v.ShowNow = s.layout.NowLineOffset(now, s.hours, s.hourHeightPx)
	}
	return v, nil
}

func (s *scheduleService) Week(ctx context.Context, day time.Time, f models.JobFilter) (*WeekView, error) {
	jobs, err := s.fetch(ctx, calendar.ViewWeek, day, f)
	if err != nil {
		return nil, err
	}

	days := s.layout.WeekDays(day)
	v := &WeekView{
		Days:    days,
		Hours:   s.hours,
		Timed:   s.layout.PositionForWeek(jobs, day, s.hours, s.hourHeightPx),
		Untimed: make([][]models.Job, len(days)),
		Today:   -1,
	}
	now := s.now()
	for i, d := range days {
		_, v.Untimed[i] = calendar.SeparateByTime(s.layout.JobsForDay(jobs, d))
		if s.layout.IsToday(d, now) {
			v.Today = i
		}
	}
	return v, nil
}

func (s *scheduleService) Month(ctx context.Context, day time.Time, f models.JobFilter) (*MonthView, error) {
	jobs, err := s.fetch(ctx, calendar.ViewMonth, day, f)
	if err != nil {
		return nil, err
	}
	y, m, _ := day.In(s.layout.Location()).Date()
	return &MonthView{
		Month: time.Date(y, m, 1, 0, 0, 0, 0, s.layout.Location()),
		Cells: s.layout.Month(jobs, day, s.now()),
	}, nil
}

func (s *scheduleService) Agenda(ctx context.Context, day time.Time, f models.JobFilter) (*AgendaView, error) {
	jobs, err := s.fetch(ctx, calendar.ViewAgenda, day, f)
	if err != nil {
		return nil, err
	}
	from, to := s.layout.Window(calendar.ViewAgenda, day)
	return &AgendaView{From: from, To: to, Days: s.layout.Agenda(jobs, from, to)}, nil
}

func (s *scheduleService) Job(ctx context.Context, id string) (*models.Job, error) {
	return s.client.GetJob(ctx, id)
}

// CreateJob schedules a new job for a client. The slot fields of in are
// checked the same way Reschedule checks them.
func (s *scheduleService) CreateJob(ctx context.Context, in models.JobInput) (*models.Job, error) {
	if in.ClientID == "" || in.JobTypeID == "" {
		return nil, fmt.Errorf("%w: client and job type are required", ErrInvalidJob)
	}
	slot := Slot{Start: in.ScheduledStartTime, End: in.ScheduledEndTime}
	if in.Date != nil {
		slot.Date = *in.Date
	}
	if err := slot.validate(); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.JobStatusScheduled
	}
	return s.client.CreateJob(ctx, in)
}

// Reschedule moves a job to slot.
func (s *scheduleService) Reschedule(ctx context.Context, id string, slot Slot) (*models.Job, error) {
	if err := slot.validate(); err != nil {
		return nil, err
	}
	var in models.JobInput
	slot.apply(&in)
	return s.client.UpdateJob(ctx, id, in)
}

// SetJobStatus changes the status of a job. A cancellation needs a reason.
func (s *scheduleService) SetJobStatus(ctx context.Context, id string, status models.JobStatus, reason string) (*models.Job, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidJob, status)
	}
	in := models.JobInput{Status: status}
	if status == models.JobStatusCancelled {
		if reason == "" {
			return nil, fmt.Errorf("%w: cancel reason is required", ErrInvalidJob)
		}
		in.CancelReason = reason
	}
	return s.client.UpdateJob(ctx, id, in)
}

func (s *scheduleService) DeleteJob(ctx context.Context, id string) error {
	return s.client.DeleteJob(ctx, id)
}
