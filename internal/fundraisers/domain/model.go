package domain

import (
	"errors"
	"time"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// AnonymousDonorName replaces the supplied donor name on anonymous donations.
const AnonymousDonorName = "Anonymous"

var (
	ErrNotFound     = errors.New("fundraiser not found")
	ErrNotActive    = errors.New("fundraiser is not active")
	ErrInvalidInput = errors.New("invalid input")
	ErrAdminOnly    = errors.New("admin role required")
)

// Fundraiser mirrors the fundraisers table. raised_amount is stored but
// derived: it always equals the sum of recorded donations.
type Fundraiser struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	GoalAmount   float64    `json:"goal_amount"`
	RaisedAmount float64    `json:"raised_amount"`
	Status       string     `json:"status"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedBy    *string    `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Donation struct {
	ID           string    `json:"id"`
	FundraiserID string    `json:"fundraiser_id"`
	DonorUserID  *string   `json:"donor_user_id,omitempty"`
	DonorName    string    `json:"donor_name"`
	Amount       float64   `json:"amount"`
	IsAnonymous  bool      `json:"is_anonymous"`
	DonationDate time.Time `json:"donation_date"`
}

// CanClose reports whether an admin may move a fundraiser from→to.
// Only active fundraisers close, and reaching the goal never closes one
// automatically; over-funding is allowed.
func CanClose(from, to string) bool {
	return from == StatusActive && (to == StatusCompleted || to == StatusCancelled)
}
