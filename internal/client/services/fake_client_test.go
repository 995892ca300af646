package services

import (
	"context"

	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// fakeClient implements client.Client for unit tests of the services.
type fakeClient struct {
	// results
	LoginErr    error
	LogoutErr   error
	AuthRet     bool
	PingErr     error
	CloseErr    error
	ProfileRet  *models.UserProfile
	ProfileErr  error
	UsersRet    []models.UserProfile
	JobsRet     []models.Job
	JobsErr     error
	JobRet      *models.Job
	JobTypesRet []models.JobType
	TeamsRet    []models.Team
	ClientsRet  []models.Client
	TeamRet     *models.Team

	// captured arguments
	LastLogin     string
	LastPassword  string
	LastFilter    models.JobFilter
	LastJobID     string
	LastJobInput  *models.JobInput
	LastTeamID    string
	LastTeamInput *models.TeamInput
	DeletedJob    string
	DeletedTeam   string
	CloseCalled   bool
	LogoutCalled  bool
	ListJobsCalls int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error { f.CloseCalled = true; return f.CloseErr }

func (f *fakeClient) Login(_ context.Context, login, password string) error {
	f.LastLogin, f.LastPassword = login, password
	return f.LoginErr
}

func (f *fakeClient) Logout(context.Context) error { f.LogoutCalled = true; return f.LogoutErr }

func (f *fakeClient) IsAuthenticated(context.Context) (bool, error) { return f.AuthRet, nil }

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) Profile(context.Context) (*models.UserProfile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) ListUsers(context.Context) ([]models.UserProfile, error) {
	return f.UsersRet, nil
}

func (f *fakeClient) ListJobs(_ context.Context, filter models.JobFilter) ([]models.Job, error) {
	f.ListJobsCalls++
	f.LastFilter = filter
	return f.JobsRet, f.JobsErr
}

func (f *fakeClient) GetJob(_ context.Context, id string) (*models.Job, error) {
	f.LastJobID = id
	return f.JobRet, nil
}

func (f *fakeClient) CreateJob(_ context.Context, in models.JobInput) (*models.Job, error) {
	f.LastJobInput = &in
	return f.JobRet, nil
}

func (f *fakeClient) UpdateJob(_ context.Context, id string, in models.JobInput) (*models.Job, error) {
	f.LastJobID, f.LastJobInput = id, &in
	return f.JobRet, nil
}

func (f *fakeClient) DeleteJob(_ context.Context, id string) error { f.DeletedJob = id; return nil }

func (f *fakeClient) ListJobTypes(context.Context) ([]models.JobType, error) {
	return f.JobTypesRet, nil
}

func (f *fakeClient) ListTeams(context.Context) ([]models.Team, error) { return f.TeamsRet, nil }

func (f *fakeClient) GetTeam(context.Context, string) (*models.Team, error) { return nil, nil }

func (f *fakeClient) CreateTeam(_ context.Context, in models.TeamInput) (*models.Team, error) {
	f.LastTeamInput = &in
	return f.TeamRet, nil
}

func (f *fakeClient) UpdateTeam(_ context.Context, id string, in models.TeamInput) (*models.Team, error) {
	f.LastTeamID, f.LastTeamInput = id, &in
	return f.TeamRet, nil
}

func (f *fakeClient) DeleteTeam(_ context.Context, id string) error { f.DeletedTeam = id; return nil }

func (f *fakeClient) ListClients(context.Context) ([]models.Client, error) {
	return f.ClientsRet, nil
}

func (f *fakeClient) GetClient(context.Context, string) (*models.Client, error) { return nil, nil }
