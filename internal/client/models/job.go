// Package models defines the records exchanged with the back-office REST API:
// jobs and the directory entities they reference (teams, clients, addresses,
// job types, users), plus session token pairs.
package models

import (
	"errors"
	"fmt"
	"time"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusScheduled  JobStatus = "SCHEDULED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// Rank is the display priority of a status, lowest first. Unknown statuses
// rank after every known one.
func (s JobStatus) Rank() int {
	switch s {
	case JobStatusScheduled:
		return 0
	case JobStatusInProgress:
		return 1
	case JobStatusCompleted:
		return 2
	case JobStatusCancelled:
		return 3
	default:
		return 4
	}
}

func (s JobStatus) Valid() bool {
	return s.Rank() < 4
}

// ParseJobStatus accepts the wire names case-insensitively, plus "in-progress".
func ParseJobStatus(s string) (JobStatus, error) {
	switch normalizeEnum(s) {
	case "SCHEDULED":
		return JobStatusScheduled, nil
	case "IN_PROGRESS":
		return JobStatusInProgress, nil
	case "COMPLETED":
		return JobStatusCompleted, nil
	case "CANCELLED", "CANCELED":
		return JobStatusCancelled, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// ChargeBy says how a job is billed.
type ChargeBy string

const (
	ChargeByFixed              ChargeBy = "FIXED"
	ChargeByPresetHours        ChargeBy = "PRESET_HOURS"
	ChargeByWorkedHours        ChargeBy = "WORKED_HOURS"
	ChargeByPresetCleanerHours ChargeBy = "PRESET_CLEANER_HOURS"
	ChargeByWorkedCleanerHours ChargeBy = "WORKED_CLEANER_HOURS"
)

var (
	ErrUnknownStatus    = errors.New("unknown job status")
	ErrMissingID        = errors.New("missing id")
	ErrPartialSchedule  = errors.New("scheduled start and end must be set together")
	ErrScheduleReversed = errors.New("scheduled end before start")
)

// Job is a scheduled cleaning service instance.
type Job struct {
	ID                 string     `json:"id"`
	Status             JobStatus  `json:"status"`
	Date               time.Time  `json:"date,omitzero"`
	ScheduledStartTime *time.Time `json:"scheduledStartTime,omitempty"`
	ScheduledEndTime   *time.Time `json:"scheduledEndTime,omitempty"`
	TrackedStartTime   *time.Time `json:"trackedStartTime,omitempty"`
	TrackedEndTime     *time.Time `json:"trackedEndTime,omitempty"`
	Order              *int       `json:"order,omitempty"`
	ChargeAmount       *float64   `json:"chargeAmount,omitempty"`
	ChargeBy           ChargeBy   `json:"chargeBy,omitempty"`
	IsPaid             bool       `json:"isPaid"`
	CancelReason       string     `json:"cancelReason,omitempty"`
	OtherInformation   string     `json:"otherInformation,omitempty"`

	JobType *JobType `json:"jobType,omitempty"`
	Client  *Client  `json:"client,omitempty"`
	Address *Address `json:"address,omitempty"`
	Team    *Team    `json:"team,omitempty"`
}

// HasScheduledTime reports whether both scheduled start and end are present.
func (j Job) HasScheduledTime() bool {
	return j.ScheduledStartTime != nil && j.ScheduledEndTime != nil
}

// OrderValue returns the ordering hint, 0 when absent.
func (j Job) OrderValue() int {
	if j.Order == nil {
		return 0
	}
	return *j.Order
}

// CalendarDate is the instant whose local day the job belongs to: Date,
// or the scheduled start when Date is unset.
func (j Job) CalendarDate() time.Time {
	if j.Date.IsZero() && j.ScheduledStartTime != nil {
		return *j.ScheduledStartTime
	}
	return j.Date
}

// TeamID returns the id of the assigned team, "" when unassigned.
func (j Job) TeamID() string {
	if j.Team == nil {
		return ""
	}
	return j.Team.ID
}

// Title is a short human label: client name, else job type, else id.
func (j Job) Title() string {
	if j.Client != nil {
		if n := j.Client.FullName(); n != "" {
			return n
		}
	}
	if j.JobType != nil && j.JobType.Name != "" {
		return j.JobType.Name
	}
	return j.ID
}

// Validate checks a job decoded from the API before it reaches the layout
// engine.
func (j Job) Validate() error {
	if j.ID == "" {
		return ErrMissingID
	}
	if !j.Status.Valid() {
		return fmt.Errorf("job %s: %w: %q", j.ID, ErrUnknownStatus, j.Status)
	}
	if (j.ScheduledStartTime == nil) != (j.ScheduledEndTime == nil) {
		return fmt.Errorf("job %s: %w", j.ID, ErrPartialSchedule)
	}
	if j.HasScheduledTime() && j.ScheduledEndTime.Before(*j.ScheduledStartTime) {
		return fmt.Errorf("job %s: %w", j.ID, ErrScheduleReversed)
	}
	return nil
}

// JobInput is the create/update payload for a job.
type JobInput struct {
	Status             JobStatus  `json:"status,omitempty"`
	Date               *time.Time `json:"date,omitempty"`
	ScheduledStartTime *time.Time `json:"scheduledStartTime,omitempty"`
	ScheduledEndTime   *time.Time `json:"scheduledEndTime,omitempty"`
	Order              *int       `json:"order,omitempty"`
	ChargeAmount       *float64   `json:"chargeAmount,omitempty"`
	ChargeBy           ChargeBy   `json:"chargeBy,omitempty"`
	IsPaid             *bool      `json:"isPaid,omitempty"`
	OtherInformation   string     `json:"otherInformation,omitempty"`
	CancelReason       string     `json:"cancelReason,omitempty"`

	JobTypeID string `json:"jobTypeId,omitempty"`
	ClientID  string `json:"clientId,omitempty"`
	AddressID string `json:"addressId,omitempty"`
	TeamID    string `json:"teamId,omitempty"`
}

// JobFilter narrows job listings. Zero fields do not filter.
type JobFilter struct {
	TeamID string
	Status JobStatus
	From   time.Time
	To     time.Time
}

// Match reports whether j passes the filter. The date range is half-open
// [From, To) over the job's calendar date.
func (f JobFilter) Match(j Job) bool {
	if f.TeamID != "" && j.TeamID() != f.TeamID {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	d := j.CalendarDate()
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !d.Before(f.To) {
		return false
	}
	return true
}
