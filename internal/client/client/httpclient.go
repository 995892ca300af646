package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/client/session"
	"github.com/dmitrijs2005/aideasy/internal/common"
	"github.com/dmitrijs2005/aideasy/internal/logging"
)

const (
	DefaultTimeout          = 10 * time.Second
	DefaultRefreshThreshold = 5 * time.Minute
	DefaultAccessTokenTTL   = 24 * time.Hour
	DefaultRefreshTokenTTL  = 15 * 24 * time.Hour
	DefaultQueueCapacity    = 64

	maxErrorBody = 4 << 10
)

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   session.Store
	log     logging.Logger

	timeout          time.Duration
	refreshThreshold time.Duration
	accessTTL        time.Duration
	refreshTTL       time.Duration
	onExpired        func()

	gate   *refreshGate
	parser *jwt.Parser
	now    func() time.Time
	bg     sync.WaitGroup
}

type Option func(*HTTPClient)

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithHTTPClient replaces the underlying *http.Client. Its Timeout wins
// over WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithRefreshThreshold sets how close to its exp claim an access token is
// refreshed ahead of time.
func WithRefreshThreshold(d time.Duration) Option {
	return func(c *HTTPClient) { c.refreshThreshold = d }
}

// WithTokenTTL sets how long stored tokens stay readable.
func WithTokenTTL(access, refresh time.Duration) Option {
	return func(c *HTTPClient) {
		c.accessTTL = access
		c.refreshTTL = refresh
	}
}

// WithQueueCapacity bounds the number of requests waiting on a refresh.
func WithQueueCapacity(n int) Option {
	return func(c *HTTPClient) { c.gate = newRefreshGate(n) }
}

// WithSessionExpiredHook registers fn to run after a terminal refresh
// failure has cleared the session.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *HTTPClient) { c.onExpired = fn }
}

func NewHTTPClient(baseURL string, store session.Store, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if store == nil {
		return nil, errors.New("session store is required")
	}

	c := &HTTPClient{
		baseURL:          strings.TrimRight(baseURL, "/"),
		store:            store,
		log:              logging.Nop(),
		timeout:          DefaultTimeout,
		refreshThreshold: DefaultRefreshThreshold,
		accessTTL:        DefaultAccessTokenTTL,
		refreshTTL:       DefaultRefreshTokenTTL,
		gate:             newRefreshGate(DefaultQueueCapacity),
		parser:           jwt.NewParser(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// Close waits for background refreshes and drops idle connections.
func (c *HTTPClient) Close() error {
	c.bg.Wait()
	c.http.CloseIdleConnections()
	return nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// auth requests carry the access token and recover from 401 by
	// refreshing it.
	auth bool
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	var payload []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}
	reqID := uuid.NewString()

	var token string
	if r.auth {
		t, err := c.store.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		token = t
		if token != "" {
			c.refreshAheadIfDue(ctx, token)
		}
	}

	resp, err := c.send(ctx, r, payload, reqID, token)
	if err != nil {
		return err
	}

	if r.auth && resp.StatusCode == http.StatusUnauthorized {
		discard(resp)

		fresh, err := c.refreshAfterUnauthorized(ctx, token)
		if err != nil {
			return err
		}
		// Replayed exactly once; a second 401 is returned as is.
		resp, err = c.send(ctx, r, payload, reqID, fresh)
		if err != nil {
			return err
		}
	}

	return decode(resp, out)
}

func (c *HTTPClient) send(ctx context.Context, r request, payload []byte, reqID, token string) (*http.Response, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Debug(ctx, "request failed", "method", r.method, "path", r.path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, r.method, r.path, err)
	}
	return resp, nil
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}

// refreshAfterUnauthorized returns an access token to replay a request
// that was rejected while carrying sent.
func (c *HTTPClient) refreshAfterUnauthorized(ctx context.Context, sent string) (string, error) {
	rt, err := c.store.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if rt == "" {
		c.log.Info(ctx, "no refresh token, session expired")
		c.expireSession(ctx)
		return "", ErrSessionExpired
	}

	lead, wait, err := c.gate.enter()
	if err != nil {
		c.log.Warn(ctx, "refresh queue full")
		return "", err
	}
	if !lead {
		_, queued := c.gate.snapshot()
		c.log.Debug(ctx, "waiting for token refresh", "queued", queued)
		return c.gate.await(ctx, wait)
	}

	res := c.runRefresh(ctx, sent)
	released := c.gate.finish(res)
	c.log.Debug(ctx, "refresh waiters released", "count", released)
	return res.token, res.err
}

// refreshAheadIfDue starts a background refresh when token is about to
// expire. The caller goes on with token.
func (c *HTTPClient) refreshAheadIfDue(ctx context.Context, token string) {
	if !c.dueForRefresh(token) || !c.gate.tryLead() {
		return
	}

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		c.log.Debug(ctx, "refreshing access token ahead of expiry")
		c.gate.finish(c.runRefresh(ctx, token))
	}()
}

func (c *HTTPClient) dueForRefresh(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := c.parser.ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Sub(c.now()) <= c.refreshThreshold
}

// runRefresh exchanges the stored refresh token for a new pair. It must
// only be called by the gate leader. sent is the access token the caller
// holds; if the store already has a different one, a previous refresh
// rotated it and no new exchange is made.
func (c *HTTPClient) runRefresh(ctx context.Context, sent string) refreshResult {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	if current, err := c.store.AccessToken(ctx); err == nil && current != "" && current != sent {
		return refreshResult{token: current}
	}

	c.log.Info(ctx, "refreshing access token")

	pair, err := c.exchange(ctx)
	if err != nil {
		c.log.Warn(ctx, "token refresh failed", "error", err)
		c.expireSession(ctx)
		return refreshResult{err: fmt.Errorf("%w: %w", ErrSessionExpired, err)}
	}

	c.log.Info(ctx, "access token refreshed")
	return refreshResult{token: pair.AccessToken}
}

func (c *HTTPClient) exchange(ctx context.Context) (models.TokenPair, error) {
	rt, err := c.store.RefreshToken(ctx)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read refresh token: %w", err)
	}
	if rt == "" {
		return models.TokenPair{}, errors.New("no refresh token")
	}

	var pair models.TokenPair
	err = c.do(ctx, request{
		method: http.MethodPost,
		path:   common.RefreshPath,
		body:   models.RefreshRequest{RefreshToken: rt},
	}, &pair)
	if err != nil {
		return models.TokenPair{}, err
	}
	if pair.AccessToken == "" {
		return models.TokenPair{}, fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = rt
	}

	if err := c.store.SetPair(ctx, pair, c.accessTTL, c.refreshTTL); err != nil {
		return models.TokenPair{}, fmt.Errorf("store tokens: %w", err)
	}
	return pair, nil
}

func (c *HTTPClient) expireSession(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}
