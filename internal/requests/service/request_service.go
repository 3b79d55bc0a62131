package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/repository"
)

// RequestService owns the victim request lifecycle.
type RequestService struct {
	requestRepo *repository.RequestRepository
}

func NewRequestService(requestRepo *repository.RequestRepository) *RequestService {
	return &RequestService{requestRepo: requestRepo}
}

// Submit creates a pending request for the caller. Location and description
// are required and the description must carry enough detail to act on.
func (s *RequestService) Submit(ctx context.Context, userID, location, description string, urgentNeeds *string) (*domain.VictimRequest, error) {
	location = strings.TrimSpace(location)
	description = strings.TrimSpace(description)

	if location == "" {
		return nil, fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(description) < domain.MinDescriptionLen {
		return nil, fmt.Errorf("%w: description must be at least %d characters", domain.ErrInvalidInput, domain.MinDescriptionLen)
	}

	return s.requestRepo.Create(ctx, userID, location, description, urgentNeeds)
}

// Transition moves a request to newStatus on behalf of an admin. Assigning a
// volunteer here is an administrative action independent of the volunteer's
// call applications.
func (s *RequestService) Transition(ctx context.Context, requestID, actorRole, newStatus string, assignedVolunteerID *string) (*domain.VictimRequest, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	if !domain.IsValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, newStatus)
	}
	return s.requestRepo.Transition(ctx, requestID, newStatus, assignedVolunteerID)
}

func (s *RequestService) Get(ctx context.Context, id string) (*domain.VictimRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

func (s *RequestService) ListMine(ctx context.Context, userID string) ([]domain.VictimRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

// ListAll is the admin view, optionally filtered by status.
func (s *RequestService) ListAll(ctx context.Context, actorRole, status string) ([]domain.VictimRequest, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	if status != "" && !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.requestRepo.List(ctx, status)
}
