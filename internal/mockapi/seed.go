package mockapi

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// Demo credentials created by Seed.
const (
	DemoLogin    = "demo"
	DemoPassword = "demo"
)

func ptr[T any](v T) *T { return &v }

// Seed fills s with a demo organization and a week of jobs around now.
func Seed(s *Store, now time.Time, loc *time.Location) error {
	if _, err := s.AddUser(models.UserProfile{
		Role:     "ADMIN",
		FullName: "Demo Manager",
		Email:    "demo@example.com",
		Login:    DemoLogin,
	}, DemoPassword); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if _, err := s.AddUser(models.UserProfile{
		Role:     "CLEANER",
		FullName: "Ana Souza",
		Login:    "ana",
	}, "ana"); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	var teamIDs []string
	for _, t := range []struct{ name, color string }{
		{"Blue Team", "#3b82f6"},
		{"Green Team", "#22c55e"},
	} {
		team, err := s.CreateTeam(models.TeamInput{Name: ptr(t.name), Color: ptr(t.color)}, now)
		if err != nil {
			return fmt.Errorf("seed team: %w", err)
		}
		teamIDs = append(teamIDs, team.ID)
	}

	regular := s.AddJobType(models.JobType{Name: "Regular Cleaning", Short: "RC", IsActive: true})
	deep := s.AddJobType(models.JobType{Name: "Deep Cleaning", Short: "DC", IsActive: true})
	types := []string{regular.ID, deep.ID}

	var clientIDs []string
	for _, c := range []models.Client{
		{FirstName: "Maria", LastName: "Silva", Phone1: "555-0101", IsActive: true,
			Addresses: []models.Address{{Street: "12 Palm St", City: "Orlando", State: "FL", ZipCode: "32801", IsDefault: true}}},
		{FirstName: "John", LastName: "Park", Phone1: "555-0102", IsActive: true,
			Addresses: []models.Address{{Street: "48 Oak Ave", City: "Orlando", State: "FL", ZipCode: "32803", IsDefault: true}}},
		{FirstName: "Lucia", LastName: "Gomez", Phone1: "555-0103", IsActive: true,
			Addresses: []models.Address{{Street: "7 Lake Rd", City: "Winter Park", State: "FL", ZipCode: "32789", IsDefault: true}}},
	} {
		clientIDs = append(clientIDs, s.AddClient(c).ID)
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	for day := -3; day <= 7; day++ {
		date := today.AddDate(0, 0, day)
		for slot := 0; slot < 3; slot++ {
			n := (day + 3) * 3
			in := models.JobInput{
				Date:      ptr(date.UTC()),
				Order:     ptr(slot),
				JobTypeID: types[(n+slot)%len(types)],
				ClientID:  clientIDs[(n+slot)%len(clientIDs)],
				TeamID:    teamIDs[slot%len(teamIDs)],
			}
			// The third slot of every day has no time.
			if slot < 2 {
				start := date.Add(time.Duration(8+slot*4) * time.Hour)
				in.ScheduledStartTime = ptr(start.UTC())
				in.ScheduledEndTime = ptr(start.Add(3 * time.Hour).UTC())
			}
			if day < 0 {
				in.Status = models.JobStatusCompleted
			}
			if _, err := s.CreateJob(in); err != nil {
				return fmt.Errorf("seed job: %w", err)
			}
		}
	}
	return nil
}
