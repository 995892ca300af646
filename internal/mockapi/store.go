package mockapi

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrConflict     = errors.New("already exists")
	ErrBadInput     = errors.New("bad input")
)

type user struct {
	profile      models.UserProfile
	passwordHash []byte
}

type refreshEntry struct {
	userID  string
	expires time.Time
}

// Store is the in-memory database of the mock API. It is safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	orgID    string
	users    map[string]*user
	teams    map[string]models.Team
	clients  map[string]models.Client
	jobTypes map[string]models.JobType
	jobs     map[string]models.Job
	refresh  map[string]refreshEntry
}

func NewStore(orgID string) *Store {
	return &Store{
		orgID:    orgID,
		users:    map[string]*user{},
		teams:    map[string]models.Team{},
		clients:  map[string]models.Client{},
		jobTypes: map[string]models.JobType{},
		jobs:     map[string]models.Job{},
		refresh:  map[string]refreshEntry{},
	}
}

func newID() string { return uuid.NewString() }

// AddUser stores a user with a bcrypt hash of password.
func (s *Store) AddUser(p models.UserProfile, password string) (models.UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.UserProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.profile.Login == p.Login {
			return models.UserProfile{}, ErrConflict
		}
	}
	if p.ID == "" {
		p.ID = newID()
	}
	p.OrganizationID = s.orgID
	s.users[p.ID] = &user{profile: p, passwordHash: hash}
	return p, nil
}

// Authenticate checks login and password.
func (s *Store) Authenticate(login, password string) (models.UserProfile, error) {
	s.mu.RLock()
	var found *user
	for _, u := range s.users {
		if u.profile.Login == login {
			found = u
			break
		}
	}
	s.mu.RUnlock()

	if found == nil {
		return models.UserProfile{}, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password)) != nil {
		return models.UserProfile{}, ErrUnauthorized
	}
	return found.profile, nil
}

func (s *Store) User(id string) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.UserProfile{}, ErrNotFound
	}
	return u.profile, nil
}

func (s *Store) Users() []models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UserProfile, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.profile)
	}
	slices.SortFunc(out, func(a, b models.UserProfile) int { return cmp.Compare(a.Login, b.Login) })
	return out
}

// SaveRefreshToken records token as valid for userID until expires.
func (s *Store) SaveRefreshToken(token, userID string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[token] = refreshEntry{userID: userID, expires: expires}
}

// ConsumeRefreshToken deletes token and returns its user. A token can be
// consumed once.
func (s *Store) ConsumeRefreshToken(token string, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.refresh[token]
	if !ok {
		return "", ErrInvalidToken
	}
	delete(s.refresh, token)
	if !now.Before(e.expires) {
		return "", ErrTokenExpired
	}
	return e.userID, nil
}

func sortedValues[K comparable, V any](m map[K]V, key func(V) string) []V {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b V) int { return cmp.Compare(key(a), key(b)) })
	return out
}

func (s *Store) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.teams, func(t models.Team) string { return t.Name })
}

func (s *Store) Team(id string) (models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return models.Team{}, ErrNotFound
	}
	return t, nil
}

func (s *Store) CreateTeam(in models.TeamInput, now time.Time) (models.Team, error) {
	if in.Name == nil || *in.Name == "" {
		return models.Team{}, ErrBadInput
	}
	t := models.Team{ID: newID(), IsActive: true, OrganizationID: s.orgID, CreatedAt: &now, UpdatedAt: &now}
	applyTeam(&t, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTeam(id string, in models.TeamInput, now time.Time) (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok {
		return models.Team{}, ErrNotFound
	}
	applyTeam(&t, in)
	t.UpdatedAt = &now
	s.teams[id] = t
	s.refreshJobTeams(t)
	return t, nil
}

func (s *Store) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[id]; !ok {
		return ErrNotFound
	}
	delete(s.teams, id)
	for jid, j := range s.jobs {
		if j.TeamID() == id {
			j.Team = nil
			s.jobs[jid] = j
		}
	}
	return nil
}

func applyTeam(t *models.Team, in models.TeamInput) {
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Color != nil {
		t.Color = *in.Color
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}

// refreshJobTeams keeps the embedded team of jobs in sync. Callers hold mu.
func (s *Store) refreshJobTeams(t models.Team) {
	for jid, j := range s.jobs {
		if j.TeamID() == t.ID {
			team := t
			j.Team = &team
			s.jobs[jid] = j
		}
	}
}

func (s *Store) AddClient(c models.Client) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	c.OrganizationID = s.orgID
	for i := range c.Addresses {
		if c.Addresses[i].ID == "" {
			c.Addresses[i].ID = newID()
		}
		c.Addresses[i].ClientID = c.ID
	}
	s.clients[c.ID] = c
	return c
}

func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.clients, models.Client.FullName)
}

func (s *Store) Client(id string) (models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return models.Client{}, ErrNotFound
	}
	return c, nil
}

func (s *Store) AddJobType(jt models.JobType) models.JobType {
	s.mu.Lock()
	defer s.mu.Unlock()
	if jt.ID == "" {
		jt.ID = newID()
	}
	s.jobTypes[jt.ID] = jt
	return jt
}

func (s *Store) JobTypes() []models.JobType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.jobTypes, func(jt models.JobType) string { return jt.Name })
}

// Jobs returns the jobs matching f ordered by calendar date.
func (s *Store) Jobs(f models.JobFilter) []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Job, 0)
	for _, j := range s.jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	slices.SortFunc(out, func(a, b models.Job) int {
		if c := a.CalendarDate().Compare(b.CalendarDate()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (s *Store) Job(id string) (models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return models.Job{}, ErrNotFound
	}
	return j, nil
}

func (s *Store) CreateJob(in models.JobInput) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := models.Job{ID: newID(), Status: models.JobStatusScheduled}
	if err := s.applyJob(&j, in); err != nil {
		return models.Job{}, err
	}
	s.jobs[j.ID] = j
	return j, nil
}

func (s *Store) UpdateJob(id string, in models.JobInput) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return models.Job{}, ErrNotFound
	}
	if err := s.applyJob(&j, in); err != nil {
		return models.Job{}, err
	}
	s.jobs[id] = j
	return j, nil
}

func (s *Store) DeleteJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(s.jobs, id)
	return nil
}

// applyJob copies the set fields of in onto j and resolves references.
// Callers hold mu.
func (s *Store) applyJob(j *models.Job, in models.JobInput) error {
	next := *j
	if in.Status != "" {
		next.Status = in.Status
	}
	if in.Date != nil {
		next.Date = *in.Date
	}
	if in.ScheduledStartTime != nil {
		next.ScheduledStartTime = in.ScheduledStartTime
	}
	if in.ScheduledEndTime != nil {
		next.ScheduledEndTime = in.ScheduledEndTime
	}
	if in.Order != nil {
		next.Order = in.Order
	}
	if in.ChargeAmount != nil {
		next.ChargeAmount = in.ChargeAmount
	}
	if in.ChargeBy != "" {
		next.ChargeBy = in.ChargeBy
	}
	if in.IsPaid != nil {
		next.IsPaid = *in.IsPaid
	}
	if in.OtherInformation != "" {
		next.OtherInformation = in.OtherInformation
	}
	if in.CancelReason != "" {
		next.CancelReason = in.CancelReason
	}

	if in.TeamID != "" {
		t, ok := s.teams[in.TeamID]
		if !ok {
			return ErrBadInput
		}
		next.Team = &t
	}
	if in.JobTypeID != "" {
		jt, ok := s.jobTypes[in.JobTypeID]
		if !ok {
			return ErrBadInput
		}
		next.JobType = &jt
	}
	if in.ClientID != "" {
		c, ok := s.clients[in.ClientID]
		if !ok {
			return ErrBadInput
		}
		next.Client = &c
		next.Address = nil
		if len(c.Addresses) > 0 {
			next.Address = &c.Addresses[0]
		}
	}
	if in.AddressID != "" && next.Client != nil {
		for i := range next.Client.Addresses {
			if next.Client.Addresses[i].ID == in.AddressID {
				next.Address = &next.Client.Addresses[i]
			}
		}
	}

	if next.Date.IsZero() && next.ScheduledStartTime == nil {
		return ErrBadInput
	}
	if err := next.Validate(); err != nil {
		return errors.Join(ErrBadInput, err)
	}
	*j = next
	return nil
}
