package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/client/session"
	"github.com/dmitrijs2005/aideasy/internal/common"
)

// fakeAPI is a tiny in-process backend that rotates tokens like the real
// one and records what it was asked.
type fakeAPI struct {
	mu            sync.Mutex
	access        map[string]bool
	refresh       map[string]bool
	issued        int
	jobs          []models.Job
	requestIDs    []string
	alwaysDeny    bool
	refreshStatus int

	refreshCalls atomic.Int32
	jobCalls     atomic.Int32
	// refreshGate, when set, blocks the refresh handler until closed.
	refreshGate chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{access: map[string]bool{}, refresh: map[string]bool{}}
}

func (f *fakeAPI) allowAccess(t string)  { f.mu.Lock(); f.access[t] = true; f.mu.Unlock() }
func (f *fakeAPI) allowRefresh(t string) { f.mu.Lock(); f.refresh[t] = true; f.mu.Unlock() }

func (f *fakeAPI) authorized(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestIDs = append(f.requestIDs, r.Header.Get(common.RequestIDHeaderName))
	if f.alwaysDeny {
		return false
	}
	return f.access[common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))]
}

func (f *fakeAPI) issue() models.TokenPair {
	f.issued++
	p := models.TokenPair{
		AccessToken:  fmt.Sprintf("A%d", f.issued),
		RefreshToken: fmt.Sprintf("R%d", f.issued),
		TokenType:    common.TokenTypeBearer,
	}
	f.access[p.AccessToken] = true
	f.refresh[p.RefreshToken] = true
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+common.SessionsPath, func(w http.ResponseWriter, r *http.Request) {
		var in models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Login != "alice" || in.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		f.mu.Lock()
		p := f.issue()
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, p)
	})

	mux.HandleFunc("POST "+common.RefreshPath, func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		if f.refreshGate != nil {
			<-f.refreshGate
		}
		if f.refreshStatus != 0 {
			writeJSON(w, f.refreshStatus, map[string]string{"message": "refresh rejected"})
			return
		}
		var in models.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&in)

		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.refresh[in.RefreshToken] {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid refresh token"})
			return
		}
		delete(f.refresh, in.RefreshToken)
		writeJSON(w, http.StatusOK, f.issue())
	})

	mux.HandleFunc("GET /jobs", func(w http.ResponseWriter, r *http.Request) {
		f.jobCalls.Add(1)
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		f.mu.Lock()
		jobs := f.jobs
		f.mu.Unlock()
		if jobs == nil {
			jobs = []models.Job{}
		}
		writeJSON(w, http.StatusOK, jobs)
	})

	mux.HandleFunc("GET /jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, nil)
			return
		}
		http.Error(w, "job not found", http.StatusNotFound)
	})

	mux.HandleFunc("GET /teams", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, nil)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	return mux
}

type testEnv struct {
	api     *fakeAPI
	server  *httptest.Server
	store   *session.MemoryStore
	client  *HTTPClient
	expired atomic.Int32
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{api: newFakeAPI(), store: session.NewMemoryStore()}
	env.server = httptest.NewServer(env.api.handler())
	t.Cleanup(env.server.Close)

	opts = append([]Option{
		WithTimeout(5 * time.Second),
		WithSessionExpiredHook(func() { env.expired.Add(1) }),
	}, opts...)
	c, err := NewHTTPClient(env.server.URL, env.store, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	env.client = c
	return env
}

// withExpiredSession stores a rejected access token next to a valid
// refresh token.
func (e *testEnv) withExpiredSession(t *testing.T) {
	t.Helper()
	e.api.allowRefresh("R0")
	require.NoError(t, e.store.SetPair(t.Context(), models.TokenPair{AccessToken: "A-stale", RefreshToken: "R0"}, time.Hour, time.Hour))
}
