package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/dbx"
)

// SQLiteStore keeps tokens in the session table of the local database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// OpenSQLiteStore opens and migrates the database at dsn.
func OpenSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	return NewSQLiteStore(db), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, keyAccessToken)
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, keyRefreshToken)
}

func (s *SQLiteStore) SetAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	return s.put(ctx, s.db, keyAccessToken, token, ttl)
}

func (s *SQLiteStore) SetRefreshToken(ctx context.Context, token string, ttl time.Duration) error {
	return s.put(ctx, s.db, keyRefreshToken, token, ttl)
}

func (s *SQLiteStore) SetPair(ctx context.Context, pair models.TokenPair, accessTTL, refreshTTL time.Duration) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.put(ctx, tx, keyAccessToken, pair.AccessToken, accessTTL); err != nil {
			return err
		}
		return s.put(ctx, tx, keyRefreshToken, pair.RefreshToken, refreshTTL)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	var (
		value     string
		expiresAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `SELECT value, expires_at FROM session WHERE key = ?`, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}

	if expiresAt.Valid && expired(time.UnixMilli(expiresAt.Int64), s.now()) {
		return "", nil
	}
	return value, nil
}

func (s *SQLiteStore) put(ctx context.Context, db dbx.DBTX, key, value string, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if exp := expiry(s.now(), ttl); !exp.IsZero() {
		expiresAt = sql.NullInt64{Int64: exp.UnixMilli(), Valid: true}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}
