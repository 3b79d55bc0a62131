package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("volunteer not found")
	ErrAlreadyRegistered = errors.New("user already registered as volunteer")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAdminOnly         = errors.New("admin role required")
)

// Volunteer mirrors the volunteers table. One row per user.
type Volunteer struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Skills       []string  `json:"skills"`
	Location     *string   `json:"location,omitempty"`
	Availability *string   `json:"availability,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateVolunteerRequest struct {
	Skills       []string `json:"skills,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Availability *string  `json:"availability,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
