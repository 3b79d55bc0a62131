package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Profile mirrors the profiles table. Role is immutable through the
// profile API; only the identity layer grants admin.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
}
