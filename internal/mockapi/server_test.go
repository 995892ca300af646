package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/client/session"
	"github.com/dmitrijs2005/aideasy/internal/common"
	"github.com/dmitrijs2005/aideasy/internal/logging"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testServer struct {
	*httptest.Server
	store *Store
	clock *clock
}

func (ts *testServer) BaseURL() string { return ts.URL + "/v1" }

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.AccessTokenTTL = time.Hour
	cfg.RefreshTokenTTL = 24 * time.Hour

	clk := &clock{now: time.Now()}
	store := NewStore("org-1")
	require.NoError(t, Seed(store, clk.Now(), time.UTC))

	sessions := NewSessions(store, cfg)
	sessions.now = clk.Now
	srv := NewServer(store, sessions, logging.Nop())
	srv.now = clk.Now

	ts := httptest.NewServer(srv.Handler(cfg.BasePath))
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, store: store, clock: clk}
}

func (ts *testServer) call(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.BaseURL()+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testServer) login(t *testing.T) models.TokenPair {
	t.Helper()
	resp := ts.call(t, http.MethodPost, common.SessionsPath, "", `{"login":"demo","password":"demo"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var pair models.TokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	return pair
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.call(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(common.RequestIDHeaderName))
}

func TestServer_RequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.BaseURL()+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(common.RequestIDHeaderName, "abc-123")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(common.RequestIDHeaderName))
}

func TestServer_LoginErrors(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.call(t, http.MethodPost, common.SessionsPath, "", `{"login":"demo","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.call(t, http.MethodPost, common.SessionsPath, "", `{"nope":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_ProtectedRoutesNeedBearer(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/users/me", "/jobs", "/teams", "/clients", "/job-types"} {
		resp := ts.call(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
	resp := ts.call(t, http.MethodGet, "/jobs", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_ExpiredAccessToken(t *testing.T) {
	ts := newTestServer(t)
	pair := ts.login(t)

	resp := ts.call(t, http.MethodGet, "/users/me", pair.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ts.clock.Advance(2 * time.Hour)
	resp = ts.call(t, http.MethodGet, "/users/me", pair.AccessToken, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_RefreshRotates(t *testing.T) {
	ts := newTestServer(t)
	pair := ts.login(t)
	body := `{"refreshToken":"` + pair.RefreshToken + `"}`

	resp := ts.call(t, http.MethodPost, common.RefreshPath, "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var next models.TokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&next))
	assert.NotEqual(t, pair.AccessToken, next.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	resp = ts.call(t, http.MethodPost, common.RefreshPath, "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "old refresh token must be rejected")
}

func TestServer_JobsQuery(t *testing.T) {
	ts := newTestServer(t)
	pair := ts.login(t)

	resp := ts.call(t, http.MethodGet, "/jobs?status=COMPLETED", pair.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var jobs []models.Job
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jobs))
	assert.Len(t, jobs, 9)

	resp = ts.call(t, http.MethodGet, "/jobs?from=yesterday", pair.AccessToken, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.call(t, http.MethodGet, "/jobs/missing", pair.AccessToken, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_DeleteReturnsNoContent(t *testing.T) {
	ts := newTestServer(t)
	pair := ts.login(t)
	id := ts.store.Jobs(models.JobFilter{})[0].ID

	resp := ts.call(t, http.MethodDelete, "/jobs/"+id, pair.AccessToken, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ts.call(t, http.MethodDelete, "/jobs/"+id, pair.AccessToken, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func newRealClient(t *testing.T, ts *testServer) (*client.HTTPClient, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	c, err := client.NewHTTPClient(ts.BaseURL(), store,
		client.WithHTTPClient(ts.Client()),
		client.WithRefreshThreshold(time.Minute),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, store
}

func TestClientAgainstMockAPI_CRUD(t *testing.T) {
	ts := newTestServer(t)
	c, _ := newRealClient(t, ts)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Login(ctx, DemoLogin, DemoPassword))

	me, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, DemoLogin, me.Login)

	team, err := c.CreateTeam(ctx, models.TeamInput{Name: ptr("Night Shift")})
	require.NoError(t, err)
	team, err = c.UpdateTeam(ctx, team.ID, models.TeamInput{Color: ptr("#000000")})
	require.NoError(t, err)
	assert.Equal(t, "Night Shift", team.Name)
	assert.Equal(t, "#000000", team.Color)

	date := time.Now().UTC().Truncate(24 * time.Hour)
	job, err := c.CreateJob(ctx, models.JobInput{Date: &date, TeamID: team.ID})
	require.NoError(t, err)

	jobs, err := c.ListJobs(ctx, models.JobFilter{TeamID: team.ID})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.ID, jobs[0].ID)

	require.NoError(t, c.DeleteJob(ctx, job.ID))
	_, err = c.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
	require.NoError(t, c.DeleteTeam(ctx, team.ID))
}

func TestClientAgainstMockAPI_RefreshAfterExpiry(t *testing.T) {
	ts := newTestServer(t)
	c, store := newRealClient(t, ts)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, DemoLogin, DemoPassword))
	firstRefresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)

	// Access tokens are now expired server side while still fresh by the
	// client's clock, so only the reactive path can recover.
	ts.clock.Advance(2 * time.Hour)

	g, gctx := errgroup.WithContext(ctx)
	for range 5 {
		g.Go(func() error {
			_, err := c.ListJobs(gctx, models.JobFilter{})
			return err
		})
	}
	require.NoError(t, g.Wait())

	rotated, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, firstRefresh, rotated)

	// A second refresh would have consumed the rotated token.
	body := `{"refreshToken":"` + rotated + `"}`
	resp := ts.call(t, http.MethodPost, common.RefreshPath, "", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClientAgainstMockAPI_RefreshTokenExpired(t *testing.T) {
	ts := newTestServer(t)
	c, store := newRealClient(t, ts)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, DemoLogin, DemoPassword))
	ts.clock.Advance(48 * time.Hour)

	_, err := c.ListTeams(ctx)
	assert.ErrorIs(t, err, client.ErrSessionExpired)

	ok, err := c.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	access, _ := store.AccessToken(ctx)
	assert.Empty(t, access)
}
