package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

func (c *HTTPClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	var resp models.UserProfile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/me", auth: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var resp []models.UserProfile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
