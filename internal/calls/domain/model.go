package domain

import (
	"errors"
	"time"
)

const (
	CallStatusActive = "active"
	CallStatusClosed = "closed"
)

const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
	ApplicationAssigned = "assigned"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

var (
	ErrCallNotFound         = errors.New("volunteer call not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrCallClosed           = errors.New("volunteer call is closed")
	ErrCallFull             = errors.New("volunteer call is at capacity")
	ErrDuplicateApplication = errors.New("volunteer already applied to this call")
	ErrInvalidTransition    = errors.New("application transition not permitted")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAdminOnly            = errors.New("admin role required")
)

// VolunteerCall mirrors the volunteer_calls table. closed_at is set exactly
// when status is closed.
type VolunteerCall struct {
	ID               string     `json:"id"`
	DisasterName     string     `json:"disaster_name"`
	DisasterLocation string     `json:"disaster_location"`
	Description      *string    `json:"description,omitempty"`
	RequiredSkills   []string   `json:"required_skills"`
	VolunteersNeeded int        `json:"volunteers_needed"`
	PriorityLevel    string     `json:"priority_level"`
	Status           string     `json:"status"`
	CreatedBy        *string    `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

// Application mirrors the volunteer_call_applications table. One per
// (call, volunteer) pair.
type Application struct {
	ID          string     `json:"id"`
	CallID      string     `json:"call_id"`
	VolunteerID string     `json:"volunteer_id"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes,omitempty"`
	AppliedAt   time.Time  `json:"applied_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
}

func IsValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh || p == PriorityCritical
}

// CanReview reports whether a review may move an application from→to.
// Accepted is a shortlist state; it can still go either way.
func CanReview(from, to string) bool {
	switch from {
	case ApplicationPending:
		return to == ApplicationAccepted || to == ApplicationRejected
	case ApplicationAccepted:
		return to == ApplicationAssigned || to == ApplicationRejected
	}
	return false
}
