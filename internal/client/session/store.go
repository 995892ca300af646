// Package session persists the access and refresh tokens of the signed-in
// user.
//
// A Store behaves like a browser cookie jar: every value carries its own
// lifetime and an expired value reads as absent. Reads of a missing key
// return "" and a nil error.
package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	// SetAccessToken stores token for ttl. A non-positive ttl never expires.
	SetAccessToken(ctx context.Context, token string, ttl time.Duration) error
	SetRefreshToken(ctx context.Context, token string, ttl time.Duration) error
	// SetPair stores both tokens atomically.
	SetPair(ctx context.Context, pair models.TokenPair, accessTTL, refreshTTL time.Duration) error
	Clear(ctx context.Context) error
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func expired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && !now.Before(expiresAt)
}
