package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

func jobPath(id string) string {
	return "/jobs/" + url.PathEscape(id)
}

func jobQuery(f models.JobFilter) url.Values {
	q := url.Values{}
	if f.TeamID != "" {
		q.Set("teamId", f.TeamID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if !f.From.IsZero() {
		q.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		q.Set("to", f.To.UTC().Format(time.RFC3339))
	}
	return q
}

// ListJobs returns the jobs matching f. Jobs that fail validation are
// dropped and logged so one bad record does not blank a whole view.
func (c *HTTPClient) ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	var resp []models.Job
	err := c.do(ctx, request{method: http.MethodGet, path: "/jobs", query: jobQuery(f), auth: true}, &resp)
	if err != nil {
		return nil, err
	}

	jobs := make([]models.Job, 0, len(resp))
	for _, j := range resp {
		if err := j.Validate(); err != nil {
			c.log.Warn(ctx, "dropping invalid job", "error", err)
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (c *HTTPClient) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return c.jobRequest(ctx, http.MethodGet, jobPath(id), nil)
}

func (c *HTTPClient) CreateJob(ctx context.Context, in models.JobInput) (*models.Job, error) {
	return c.jobRequest(ctx, http.MethodPost, "/jobs", in)
}

func (c *HTTPClient) UpdateJob(ctx context.Context, id string, in models.JobInput) (*models.Job, error) {
	return c.jobRequest(ctx, http.MethodPut, jobPath(id), in)
}

func (c *HTTPClient) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: jobPath(id), auth: true}, nil)
}

func (c *HTTPClient) ListJobTypes(ctx context.Context) ([]models.JobType, error) {
	var resp []models.JobType
	if err := c.do(ctx, request{method: http.MethodGet, path: "/job-types", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) jobRequest(ctx context.Context, method, path string, body any) (*models.Job, error) {
	var resp models.Job
	if err := c.do(ctx, request{method: method, path: path, body: body, auth: true}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &resp, nil
}
