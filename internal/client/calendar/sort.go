package calendar

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// SortJobs returns a copy of jobs in display order:
//
//  1. jobs with both scheduled start and end come first, by start time;
//  2. the rest follow, by status rank (scheduled, in progress, completed,
//     cancelled) and then by Order, a missing Order counting as 0.
//
// The sort is stable.
func SortJobs(jobs []models.Job) []models.Job {
	out := slices.Clone(jobs)
	slices.SortStableFunc(out, compareJobs)
	return out
}

func compareJobs(a, b models.Job) int {
	at, bt := a.HasScheduledTime(), b.HasScheduledTime()
	switch {
	case at && bt:
		return a.ScheduledStartTime.Compare(*b.ScheduledStartTime)
	case at:
		return -1
	case bt:
		return 1
	}
	if c := cmp.Compare(a.Status.Rank(), b.Status.Rank()); c != 0 {
		return c
	}
	return cmp.Compare(a.OrderValue(), b.OrderValue())
}

// SeparateByTime splits jobs into timed and untimed partitions. Timed jobs
// are ordered by start, untimed ones by Order. Both sorts are stable.
func SeparateByTime(jobs []models.Job) (withTime, withoutTime []models.Job) {
	withTime = make([]models.Job, 0, len(jobs))
	withoutTime = make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.HasScheduledTime() {
			withTime = append(withTime, j)
		} else {
			withoutTime = append(withoutTime, j)
		}
	}

	slices.SortStableFunc(withTime, func(a, b models.Job) int {
		return a.ScheduledStartTime.Compare(*b.ScheduledStartTime)
	})
	slices.SortStableFunc(withoutTime, func(a, b models.Job) int {
		return cmp.Compare(a.OrderValue(), b.OrderValue())
	})
	return withTime, withoutTime
}

// FilterJobs returns the jobs matching f, keeping their order.
func FilterJobs(jobs []models.Job, f models.JobFilter) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}
