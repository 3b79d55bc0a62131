package domain

import (
	"errors"
	"time"
)

const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
)

// MinDescriptionLen is a content-quality gate on submissions, not a type check.
const MinDescriptionLen = 10

var (
	ErrNotFound          = errors.New("victim request not found")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAdminOnly         = errors.New("admin role required")
	ErrVolunteerInactive = errors.New("assigned volunteer not found or inactive")
)

// VictimRequest mirrors the victim_requests table.
type VictimRequest struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	Location            string     `json:"location"`
	Description         string     `json:"description"`
	UrgentNeeds         *string    `json:"urgent_needs,omitempty"`
	Status              string     `json:"status"`
	AssignedVolunteerID *string    `json:"assigned_volunteer_id,omitempty"`
	RequestDate         time.Time  `json:"request_date"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func IsValidStatus(status string) bool {
	return status == StatusPending ||
		status == StatusApproved ||
		status == StatusInProgress ||
		status == StatusCompleted ||
		status == StatusRejected
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}

// CanTransition reports whether from→to is a legal lifecycle edge.
// Rejection is reachable from any non-terminal state.
func CanTransition(from, to string) bool {
	switch {
	case from == StatusPending && to == StatusApproved:
		return true
	case from == StatusApproved && to == StatusInProgress:
		return true
	case from == StatusInProgress && to == StatusCompleted:
		return true
	case to == StatusRejected && !IsTerminal(from):
		return true
	}
	return false
}
