package client

import (
	"context"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

type Client interface {
	Close() error
	Login(ctx context.Context, login, password string) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error

	Profile(ctx context.Context) (*models.UserProfile, error)
	ListUsers(ctx context.Context) ([]models.UserProfile, error)

	ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	CreateJob(ctx context.Context, in models.JobInput) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, in models.JobInput) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error
	ListJobTypes(ctx context.Context) ([]models.JobType, error)

	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	CreateTeam(ctx context.Context, in models.TeamInput) (*models.Team, error)
	UpdateTeam(ctx context.Context, id string, in models.TeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id string) error

	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
}

var _ Client = (*HTTPClient)(nil)
