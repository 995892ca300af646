package models

import (
	"fmt"
	"strings"
	"time"
)

type Team struct {
	ID             string     `json:"id,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Color          string     `json:"color,omitempty"`
	IsActive       bool       `json:"isActive"`
	OrganizationID string     `json:"organizationId,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

type JobType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Short       string `json:"short"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type Address struct {
	ID         string `json:"id,omitempty"`
	ClientID   string `json:"clientId,omitempty"`
	Street     string `json:"street"`
	Complement string `json:"complement,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	IsDefault  bool   `json:"isDefault"`
	IsBilling  bool   `json:"isBilling"`
}

// FullAddress renders "street, city, state zip".
func (a Address) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.ZipCode)
}

type Client struct {
	ID             string    `json:"id,omitempty"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone1         string    `json:"phone1"`
	Phone2         string    `json:"phone2,omitempty"`
	Email          string    `json:"email,omitempty"`
	Addresses      []Address `json:"addresses,omitempty"`
	IsActive       bool      `json:"isActive"`
	OrganizationID string    `json:"organizationId,omitempty"`
}

func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// UserProfile is the authenticated user as returned by /users/me.
type UserProfile struct {
	ID             string `json:"id"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	FullName       string `json:"full_name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Login          string `json:"login"`
}

// Initials returns the first letter of every word of the name, "??" when empty.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "??"
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToUpper(f[:1]))
	}
	return b.String()
}

// HumanizeEnum turns "IN_PROGRESS" into "In Progress".
func HumanizeEnum(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}

// TeamInput is the create/update payload for a team. Nil fields are left
// unchanged by an update.
type TeamInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
