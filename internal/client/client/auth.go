package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/common"
)

const healthPath = "/health"

// Login opens a session and stores the returned token pair.
func (c *HTTPClient) Login(ctx context.Context, login, password string) error {
	var pair models.TokenPair
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   common.SessionsPath,
		body:   models.Credentials{Login: login, Password: password},
	}, &pair)
	if err != nil {
		return err
	}
	if pair.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}

	if err := c.store.SetPair(ctx, pair, c.accessTTL, c.refreshTTL); err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	return nil
}

// Logout forgets the local session.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// IsAuthenticated reports whether a session can be used or renewed.
func (c *HTTPClient) IsAuthenticated(ctx context.Context) (bool, error) {
	at, err := c.store.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	if at != "" {
		return true, nil
	}
	rt, err := c.store.RefreshToken(ctx)
	if err != nil {
		return false, err
	}
	return rt != "", nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: healthPath}, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}
