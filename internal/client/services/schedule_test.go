package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

var riga = time.FixedZone("EEST", 3*60*60)

func at(d, hh, mm int) time.Time {
	return time.Date(2025, 6, d, hh, mm, 0, 0, riga)
}

func timedJob(id string, start time.Time, d time.Duration) models.Job {
	end := start.Add(d)
	return models.Job{ID: id, Status: models.JobStatusScheduled, Date: start, ScheduledStartTime: &start, ScheduledEndTime: &end}
}

func testSchedule(fc *fakeClient, now time.Time) *scheduleService {
	s := NewScheduleService(fc, calendar.New(riga), calendar.HourRange{Start: 6, End: 22}).(*scheduleService)
	s.now = func() time.Time { return now }
	return s
}

func TestScheduleService_DayUsesWindowAndLayout(t *testing.T) {
	t1 := &models.Team{ID: "t1"}
	morning := timedJob("morning", at(16, 9, 0), 2*time.Hour)
	morning.Team = t1
	otherTeam := timedJob("other-team", at(16, 10, 0), time.Hour)
	otherTeam.Team = &models.Team{ID: "t2"}
	otherDay := timedJob("other-day", at(17, 9, 0), time.Hour)
	otherDay.Team = t1
	fc := &fakeClient{JobsRet: []models.Job{
		morning,
		otherTeam,
		{ID: "untimed", Status: models.JobStatusScheduled, Date: at(16, 0, 0), Team: t1},
		otherDay,
	}}
	svc := testSchedule(fc, at(16, 12, 30))

	v, err := svc.Day(context.Background(), at(16, 15, 0), models.JobFilter{TeamID: "t1"})
	require.NoError(t, err)

	assert.Equal(t, "t1", fc.LastFilter.TeamID)
	assert.Equal(t, at(16, 0, 0), fc.LastFilter.From)
	assert.Equal(t, at(17, 0, 0), fc.LastFilter.To)

	require.Len(t, v.Timed, 1)
	assert.Equal(t, "morning", v.Timed[0].Job.ID)
	assert.Equal(t, 180.0, v.Timed[0].Top)
	assert.Equal(t, 120.0, v.Timed[0].Height)
	require.Len(t, v.Untimed, 1)
	assert.True(t, v.ShowNow)
	assert.Equal(t, 390.0, v.NowOffset)
}

func TestScheduleService_DayNotTodayHasNoNowLine(t *testing.T) {
	svc := testSchedule(&fakeClient{}, at(20, 12, 0))

	v, err := svc.Day(context.Background(), at(16, 0, 0), models.JobFilter{})
	require.NoError(t, err)
	assert.False(t, v.ShowNow)
	assert.Empty(t, v.Timed)
}

func TestScheduleService_Week(t *testing.T) {
	fc := &fakeClient{JobsRet: []models.Job{
		timedJob("tue", at(17, 10, 0), time.Hour),
		{ID: "thu-untimed", Status: models.JobStatusCompleted, Date: at(19, 0, 0)},
	}}
	svc := testSchedule(fc, at(18, 8, 0))

	v, err := svc.Week(context.Background(), at(18, 0, 0), models.JobFilter{})
	require.NoError(t, err)

	require.Len(t, v.Days, 7)
	assert.Equal(t, at(15, 0, 0), v.Days[0])
	assert.Equal(t, 3, v.Today)
	require.Len(t, v.Timed, 1)
	assert.Equal(t, 2, v.Timed[0].DayIndex)
	require.Len(t, v.Untimed[4], 1)
	assert.Equal(t, "thu-untimed", v.Untimed[4][0].ID)
}

func TestScheduleService_MonthAndAgenda(t *testing.T) {
	fc := &fakeClient{JobsRet: []models.Job{
		{ID: "a", Status: models.JobStatusScheduled, Date: at(20, 0, 0)},
	}}
	svc := testSchedule(fc, at(1, 9, 0))

	m, err := svc.Month(context.Background(), at(20, 0, 0), models.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, at(1, 0, 0), m.Month)
	require.Len(t, m.Cells, 42)
	assert.True(t, m.Cells[0].Today)

	a, err := svc.Agenda(context.Background(), at(18, 0, 0), models.JobFilter{})
	require.NoError(t, err)
	require.Len(t, a.Days, 1)
	assert.Equal(t, "2025-06-20", a.Days[0].Key)
	assert.Equal(t, at(18, 0, 0), a.From)
}

func TestScheduleService_FiltersLocallyToo(t *testing.T) {
	a := models.Job{ID: "a", Status: models.JobStatusScheduled, Date: at(16, 0, 0), Team: &models.Team{ID: "t1"}}
	b := models.Job{ID: "b", Status: models.JobStatusScheduled, Date: at(16, 0, 0), Team: &models.Team{ID: "t2"}}
	fc := &fakeClient{JobsRet: []models.Job{a, b}}
	svc := testSchedule(fc, at(16, 0, 0))

	v, err := svc.Day(context.Background(), at(16, 0, 0), models.JobFilter{TeamID: "t2"})
	require.NoError(t, err)
	require.Len(t, v.Untimed, 1)
	assert.Equal(t, "b", v.Untimed[0].ID)
}

func TestScheduleService_PropagatesErrors(t *testing.T) {
	fc := &fakeClient{JobsErr: client.ErrSessionExpired}
	svc := testSchedule(fc, at(16, 0, 0))

	_, err := svc.Week(context.Background(), at(16, 0, 0), models.JobFilter{})
	require.ErrorIs(t, err, client.ErrSessionExpired)
}

func TestScheduleService_Job(t *testing.T) {
	fc := &fakeClient{JobRet: &models.Job{ID: "j9"}}
	j, err := testSchedule(fc, at(16, 0, 0)).Job(context.Background(), "j9")
	require.NoError(t, err)
	assert.Equal(t, "j9", j.ID)
	assert.Equal(t, "j9", fc.LastJobID)
}

func TestScheduleService_CreateJob(t *testing.T) {
	fc := &fakeClient{JobRet: &models.Job{ID: "new"}}
	svc := testSchedule(fc, at(16, 8, 0))
	start, end := at(18, 9, 0), at(18, 11, 0)
	day := at(18, 0, 0)

	j, err := svc.CreateJob(context.Background(), models.JobInput{
		ClientID: "c1", JobTypeID: "jt1", Date: &day, ScheduledStartTime: &start, ScheduledEndTime: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", j.ID)
	require.NotNil(t, fc.LastJobInput)
	assert.Equal(t, models.JobStatusScheduled, fc.LastJobInput.Status)
	assert.Equal(t, "c1", fc.LastJobInput.ClientID)
}

func TestScheduleService_CreateJobRejected(t *testing.T) {
	day := at(18, 0, 0)
	start, end := at(18, 11, 0), at(18, 9, 0)

	tests := []struct {
		name string
		in   models.JobInput
	}{
		{"no client", models.JobInput{JobTypeID: "jt1", Date: &day}},
		{"no job type", models.JobInput{ClientID: "c1", Date: &day}},
		{"no date", models.JobInput{ClientID: "c1", JobTypeID: "jt1"}},
		{"start only", models.JobInput{ClientID: "c1", JobTypeID: "jt1", Date: &day, ScheduledStartTime: &start}},
		{"end before start", models.JobInput{ClientID: "c1", JobTypeID: "jt1", Date: &day, ScheduledStartTime: &start, ScheduledEndTime: &end}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			_, err := testSchedule(fc, at(16, 8, 0)).CreateJob(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrInvalidJob)
			assert.Nil(t, fc.LastJobInput)
		})
	}
}

func TestScheduleService_Reschedule(t *testing.T) {
	fc := &fakeClient{JobRet: &models.Job{ID: "j1"}}
	svc := testSchedule(fc, at(16, 8, 0))
	start, end := at(19, 13, 0), at(19, 14, 30)

	_, err := svc.Reschedule(context.Background(), "j1", Slot{Date: at(19, 0, 0), Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, "j1", fc.LastJobID)
	require.NotNil(t, fc.LastJobInput.Date)
	assert.Equal(t, at(19, 0, 0), *fc.LastJobInput.Date)
	assert.Equal(t, start, *fc.LastJobInput.ScheduledStartTime)
	assert.Empty(t, fc.LastJobInput.Status)

	_, err = svc.Reschedule(context.Background(), "j1", Slot{Date: at(19, 0, 0), Start: &end, End: &start})
	require.ErrorIs(t, err, ErrInvalidJob)
}

func TestScheduleService_SetJobStatus(t *testing.T) {
	fc := &fakeClient{JobRet: &models.Job{ID: "j1"}}
	svc := testSchedule(fc, at(16, 8, 0))
	ctx := context.Background()

	_, err := svc.SetJobStatus(ctx, "j1", models.JobStatusCompleted, "ignored")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, fc.LastJobInput.Status)
	assert.Empty(t, fc.LastJobInput.CancelReason)

	_, err = svc.SetJobStatus(ctx, "j1", models.JobStatusCancelled, "")
	require.ErrorIs(t, err, ErrInvalidJob)

	_, err = svc.SetJobStatus(ctx, "j1", models.JobStatusCancelled, "client away")
	require.NoError(t, err)
	assert.Equal(t, "client away", fc.LastJobInput.CancelReason)

	_, err = svc.SetJobStatus(ctx, "j1", models.JobStatus("PAUSED"), "")
	require.ErrorIs(t, err, ErrInvalidJob)

	require.NoError(t, svc.DeleteJob(ctx, "j1"))
	assert.Equal(t, "j1", fc.DeletedJob)
}
