package services

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// DirectoryService lists the organization's reference data, sorted by
// display name, and manages its teams.
type DirectoryService interface {
	Teams(ctx context.Context) ([]models.Team, error)
	Clients(ctx context.Context) ([]models.Client, error)
	Users(ctx context.Context) ([]models.UserProfile, error)
	JobTypes(ctx context.Context) ([]models.JobType, error)

	CreateTeam(ctx context.Context, name string) (*models.Team, error)
	RenameTeam(ctx context.Context, id, name string) (*models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

// ErrEmptyName is returned when a team name is blank.
var ErrEmptyName = errors.New("name is required")

type directoryService struct {
	client client.Client
}

func NewDirectoryService(c client.Client) DirectoryService {
	return &directoryService{client: c}
}

func byName[T any](name func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(strings.ToLower(name(a)), strings.ToLower(name(b)))
	}
}

func (d *directoryService) Teams(ctx context.Context) ([]models.Team, error) {
	teams, err := d.client.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(teams, byName(func(t models.Team) string { return t.Name }))
	return teams, nil
}

func (d *directoryService) Clients(ctx context.Context) ([]models.Client, error) {
	clients, err := d.client.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(clients, byName(models.Client.FullName))
	return clients, nil
}

func (d *directoryService) Users(ctx context.Context) ([]models.UserProfile, error) {
	users, err := d.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(users, byName(func(u models.UserProfile) string { return u.FullName }))
	return users, nil
}

func (d *directoryService) JobTypes(ctx context.Context) ([]models.JobType, error) {
	types, err := d.client.ListJobTypes(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(types, byName(func(t models.JobType) string { return t.Name }))
	return types, nil
}

func (d *directoryService) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return d.client.CreateTeam(ctx, models.TeamInput{Name: &name})
}

// RenameTeam changes only the name; other fields stay as they are.
func (d *directoryService) RenameTeam(ctx context.Context, id, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return d.client.UpdateTeam(ctx, id, models.TeamInput{Name: &name})
}

func (d *directoryService) DeleteTeam(ctx context.Context, id string) error {
	return d.client.DeleteTeam(ctx, id)
}
