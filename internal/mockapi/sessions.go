package mockapi

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/common"
)

// Sessions issues and rotates token pairs.
type Sessions struct {
	store      *Store
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewSessions(store *Store, cfg *Config) *Sessions {
	return &Sessions{
		store:      store,
		secret:     []byte(cfg.SecretKey),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}
}

// Login verifies the credentials and returns a fresh pair.
func (s *Sessions) Login(login, password string) (models.TokenPair, error) {
	u, err := s.store.Authenticate(login, password)
	if err != nil {
		return models.TokenPair{}, err
	}
	return s.issue(u)
}

// Refresh consumes refreshToken and returns a new pair.
func (s *Sessions) Refresh(refreshToken string) (models.TokenPair, error) {
	userID, err := s.store.ConsumeRefreshToken(refreshToken, s.now())
	if err != nil {
		return models.TokenPair{}, err
	}
	u, err := s.store.User(userID)
	if err != nil {
		return models.TokenPair{}, ErrInvalidToken
	}
	return s.issue(u)
}

// Authenticate returns the user id of a valid access token.
func (s *Sessions) Authenticate(accessToken string) (string, error) {
	return UserIDFromToken(accessToken, s.secret, s.now())
}

func (s *Sessions) issue(u models.UserProfile) (models.TokenPair, error) {
	now := s.now()
	access, err := GenerateToken(u.ID, u.Role, s.secret, s.accessTTL, now)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}
	s.store.SaveRefreshToken(refresh, u.ID, now.Add(s.refreshTTL))
	return models.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: common.TokenTypeBearer}, nil
}
