package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrRequestNotFound      = errors.New("victim request not found")
	ErrInsufficientQuantity = errors.New("insufficient resource quantity")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAdminOnly            = errors.New("admin role required")
)

// Resource mirrors the resources table. quantity is the running available
// balance; the original baseline equals quantity plus the sum of its
// allocations.
type Resource struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Unit      *string   `json:"unit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Allocation records quantity drawn from a resource against a victim
// request. Allocations are append-only.
type Allocation struct {
	ID                string    `json:"id"`
	ResourceID        string    `json:"resource_id"`
	RequestID         string    `json:"request_id"`
	QuantityAllocated int       `json:"quantity_allocated"`
	AllocatedBy       *string   `json:"allocated_by,omitempty"`
	AllocationDate    time.Time `json:"allocation_date"`
}

type UpdateResourceRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Unit     *string `json:"unit,omitempty"`
}
