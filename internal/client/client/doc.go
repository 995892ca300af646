// Package client talks to the scheduling REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     sessions, jobs, teams, clients and users.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     stored access token to every request and keeps the session alive by
//     refreshing tokens.
//
// # Token refresh
//
// A 401 on an authenticated request triggers a refresh through the
// /auth/refresh endpoint; the request is then replayed once with the new
// access token. Only one refresh runs at a time. Requests that hit 401
// while it is in flight wait in a bounded FIFO queue and are replayed in
// order once it succeeds. A token close to its exp claim is refreshed ahead
// of time in the background.
//
// A refresh that fails is terminal: the session store is cleared, every
// waiter gets the same ErrSessionExpired and the OnSessionExpired hook runs.
//
// # Error Handling
//
// Sentinel errors can be matched with errors.Is: ErrUnavailable (transport
// failure, never refreshed), ErrUnauthorized, ErrNotFound,
// ErrSessionExpired, ErrRefreshQueueFull and ErrInvalidResponse. Any other
// non-2xx response is an *APIError.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation. A refresh is run on a context
// detached from the caller that started it, so cancelling one request does
// not fail the others waiting on the same refresh.
package client
