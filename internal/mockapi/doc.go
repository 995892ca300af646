// Package mockapi is a self-contained HTTP backend that serves the same
// REST contract as the production scheduling API. It keeps everything in
// memory and is used for local development and end-to-end tests of the
// client.
//
// Sessions use short-lived HS256 access tokens and opaque refresh tokens
// that are rotated on every use: a refresh token works exactly once.
package mockapi
