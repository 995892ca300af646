package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

func (c *HTTPClient) ListTeams(ctx context.Context) ([]models.Team, error) {
	var resp []models.Team
	if err := c.do(ctx, request{method: http.MethodGet, path: "/teams", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	return c.teamRequest(ctx, http.MethodGet, "/teams/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) CreateTeam(ctx context.Context, in models.TeamInput) (*models.Team, error) {
	return c.teamRequest(ctx, http.MethodPost, "/teams", in)
}

// UpdateTeam applies the non-nil fields of in.
func (c *HTTPClient) UpdateTeam(ctx context.Context, id string, in models.TeamInput) (*models.Team, error) {
	return c.teamRequest(ctx, http.MethodPatch, "/teams/"+url.PathEscape(id), in)
}

func (c *HTTPClient) DeleteTeam(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/teams/" + url.PathEscape(id), auth: true}, nil)
}

func (c *HTTPClient) teamRequest(ctx context.Context, method, path string, body any) (*models.Team, error) {
	var resp models.Team
	if err := c.do(ctx, request{method: method, path: path, body: body, auth: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListClients(ctx context.Context) ([]models.Client, error) {
	var resp []models.Client
	if err := c.do(ctx, request{method: http.MethodGet, path: "/clients", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var resp models.Client
	if err := c.do(ctx, request{method: http.MethodGet, path: "/clients/" + url.PathEscape(id), auth: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
