// Package common contains constants and small helpers shared by the client
// and the mock API.
package common

const (
	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName carries a per-request uuid for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// RefreshPath is the token rotation endpoint. Requests to it never
	// trigger a refresh themselves.
	RefreshPath = "/auth/refresh"

	// SessionsPath is the login endpoint.
	SessionsPath = "/sessions"

	// TokenTypeBearer is the token_type value returned by the auth endpoints.
	TokenTypeBearer = "Bearer"
)
