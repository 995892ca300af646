// Package services contains application services for the scheduling
// client. They sit between the CLI and the API client: authentication,
// calendar views built with the layout engine, and directory listings.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: open a session on the server and store its tokens.
//   - Logout: forget the local session.
//   - IsAuthenticated: report whether a stored session exists.
//   - Profile: fetch the signed-in user.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, login string, password []byte) (*models.UserProfile, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

// Login authenticates and returns the profile of the new session.
func (a *authService) Login(ctx context.Context, login string, password []byte) (*models.UserProfile, error) {
	if err := a.client.Login(ctx, login, string(password)); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	p, err := a.client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}
	return p, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	return a.client.IsAuthenticated(ctx)
}

func (a *authService) Profile(ctx context.Context) (*models.UserProfile, error) {
	return a.client.Profile(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(_ context.Context) error {
	return a.client.Close()
}
