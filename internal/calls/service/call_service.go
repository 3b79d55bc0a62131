package service

import (
	"context"
	"fmt"
	"strings"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/repository"
	volunteerrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/repository"
)

// CallService owns volunteer call capacity and application review.
type CallService struct {
	callRepo      *repository.CallRepository
	volunteerRepo *volunteerrepo.VolunteerRepository
}

func NewCallService(callRepo *repository.CallRepository, volunteerRepo *volunteerrepo.VolunteerRepository) *CallService {
	return &CallService{callRepo: callRepo, volunteerRepo: volunteerRepo}
}

type CreateCallRequest struct {
	DisasterName     string   `json:"disaster_name"`
	DisasterLocation string   `json:"disaster_location"`
	Description      *string  `json:"description,omitempty"`
	RequiredSkills   []string `json:"required_skills"`
	VolunteersNeeded int      `json:"volunteers_needed"`
	PriorityLevel    string   `json:"priority_level"`
}

func (s *CallService) CreateCall(ctx context.Context, actorID, actorRole string, req *CreateCallRequest) (*domain.VolunteerCall, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}

	name := strings.TrimSpace(req.DisasterName)
	location := strings.TrimSpace(req.DisasterLocation)
	if name == "" || location == "" {
		return nil, fmt.Errorf("%w: disaster name and location are required", domain.ErrInvalidInput)
	}
	if req.VolunteersNeeded < 1 {
		return nil, fmt.Errorf("%w: volunteers_needed must be at least 1", domain.ErrInvalidInput)
	}
	priority := req.PriorityLevel
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.IsValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, priority)
	}

	call := &domain.VolunteerCall{
		DisasterName:     name,
		DisasterLocation: location,
		Description:      req.Description,
		RequiredSkills:   req.RequiredSkills,
		VolunteersNeeded: req.VolunteersNeeded,
		PriorityLevel:    priority,
		CreatedBy:        &actorID,
	}
	return s.callRepo.CreateCall(ctx, call)
}

func (s *CallService) GetCall(ctx context.Context, id string) (*domain.VolunteerCall, error) {
	return s.callRepo.GetCall(ctx, id)
}

func (s *CallService) ListCalls(ctx context.Context, status string) ([]domain.VolunteerCall, error) {
	if status != "" && status != domain.CallStatusActive && status != domain.CallStatusClosed {
		return nil, fmt.Errorf("%w: unknown call status %q", domain.ErrInvalidInput, status)
	}
	return s.callRepo.ListCalls(ctx, status)
}

func (s *CallService) CloseCall(ctx context.Context, actorRole, callID string) (*domain.VolunteerCall, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.callRepo.CloseCall(ctx, callID)
}

// Apply files an application for the calling user's volunteer record.
func (s *CallService) Apply(ctx context.Context, userID, callID string) (*domain.Application, error) {
	volunteer, err := s.volunteerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.callRepo.Apply(ctx, callID, volunteer.ID)
}

// Review moves an application through the review states. Closing the call
// when capacity is reached happens atomically with the review itself.
func (s *CallService) Review(ctx context.Context, actorID, actorRole, applicationID, newStatus string, notes *string) (*domain.Application, *domain.VolunteerCall, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, nil, domain.ErrAdminOnly
	}
	if newStatus != domain.ApplicationAccepted &&
		newStatus != domain.ApplicationRejected &&
		newStatus != domain.ApplicationAssigned {
		return nil, nil, fmt.Errorf("%w: unknown application status %q", domain.ErrInvalidInput, newStatus)
	}
	return s.callRepo.Review(ctx, applicationID, actorID, newStatus, notes)
}

func (s *CallService) ListApplicationsForCall(ctx context.Context, actorRole, callID string) ([]domain.Application, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.callRepo.ListApplicationsByCall(ctx, callID)
}

func (s *CallService) ListMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	volunteer, err := s.volunteerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.callRepo.ListApplicationsByVolunteer(ctx, volunteer.ID)
}
