package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestJobStatus_Rank(t *testing.T) {
	assert.Less(t, JobStatusScheduled.Rank(), JobStatusInProgress.Rank())
	assert.Less(t, JobStatusInProgress.Rank(), JobStatusCompleted.Rank())
	assert.Less(t, JobStatusCompleted.Rank(), JobStatusCancelled.Rank())
	assert.False(t, JobStatus("LOST").Valid())
}

func TestParseJobStatus(t *testing.T) {
	s, err := ParseJobStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, JobStatusInProgress, s)

	s, err = ParseJobStatus("canceled")
	require.NoError(t, err)
	assert.Equal(t, JobStatusCancelled, s)

	_, err = ParseJobStatus("done")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestJob_HasScheduledTimeNeedsBoth(t *testing.T) {
	now := time.Now()
	assert.False(t, Job{}.HasScheduledTime())
	assert.False(t, Job{ScheduledStartTime: &now}.HasScheduledTime())
	assert.False(t, Job{ScheduledEndTime: &now}.HasScheduledTime())
	assert.True(t, Job{ScheduledStartTime: &now, ScheduledEndTime: &now}.HasScheduledTime())
}

func TestJob_Validate(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name string
		job  Job
		want error
	}{
		{"ok untimed", Job{ID: "1", Status: JobStatusScheduled}, nil},
		{"ok timed", Job{ID: "1", Status: JobStatusCompleted, ScheduledStartTime: &start, ScheduledEndTime: &end}, nil},
		{"missing id", Job{Status: JobStatusScheduled}, ErrMissingID},
		{"bad status", Job{ID: "1", Status: "LOST"}, ErrUnknownStatus},
		{"start only", Job{ID: "1", Status: JobStatusScheduled, ScheduledStartTime: &start}, ErrPartialSchedule},
		{"reversed", Job{ID: "1", Status: JobStatusScheduled, ScheduledStartTime: &end, ScheduledEndTime: &start}, ErrScheduleReversed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestJob_CalendarDateFallsBackToStart(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, start, Job{ScheduledStartTime: &start}.CalendarDate())

	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, date, Job{Date: date, ScheduledStartTime: &start}.CalendarDate())
}

func TestJob_DecodeWireFormat(t *testing.T) {
	raw := `{
		"id": "j1",
		"status": "IN_PROGRESS",
		"date": "2025-06-15T00:00:00Z",
		"scheduledStartTime": "2025-06-15T10:00:00Z",
		"scheduledEndTime": "2025-06-15T12:30:00Z",
		"isPaid": true,
		"client": {"firstName": "Ana", "lastName": "Silva", "phone1": "555"},
		"team": {"id": "t1", "name": "Team A", "color": "#4CAF50", "isActive": true}
	}`

	var j Job
	require.NoError(t, json.Unmarshal([]byte(raw), &j))
	require.NoError(t, j.Validate())
	assert.Equal(t, "Ana Silva", j.Title())
	assert.Equal(t, "t1", j.TeamID())
	assert.True(t, j.HasScheduledTime())
	assert.Equal(t, 0, j.OrderValue())
}

func TestJobFilter_Match(t *testing.T) {
	day := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	j := Job{ID: "1", Status: JobStatusScheduled, Date: day, Team: &Team{ID: "t1"}, Order: ptr(2)}

	assert.True(t, JobFilter{}.Match(j))
	assert.True(t, JobFilter{TeamID: "t1", Status: JobStatusScheduled}.Match(j))
	assert.False(t, JobFilter{TeamID: "t2"}.Match(j))
	assert.False(t, JobFilter{Status: JobStatusCompleted}.Match(j))
	assert.True(t, JobFilter{From: day, To: day.Add(time.Hour)}.Match(j))
	assert.False(t, JobFilter{From: day.Add(-time.Hour), To: day}.Match(j), "range end is exclusive")
}

func TestDirectoryHelpers(t *testing.T) {
	assert.Equal(t, "1 Main St, Austin, TX 78701", Address{Street: "1 Main St", City: "Austin", State: "TX", ZipCode: "78701"}.FullAddress())
	assert.Equal(t, "AS", Initials("ana silva"))
	assert.Equal(t, "??", Initials(""))
	assert.Equal(t, "In Progress", HumanizeEnum("IN_PROGRESS"))
}
