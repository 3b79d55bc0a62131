package service

import (
	"context"
	"fmt"
	"strings"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/repository"
)

type VolunteerService struct {
	volunteerRepo *repository.VolunteerRepository
}

func NewVolunteerService(volunteerRepo *repository.VolunteerRepository) *VolunteerService {
	return &VolunteerService{volunteerRepo: volunteerRepo}
}

// Register enrols the caller as a volunteer. The skill set must be non-empty.
func (s *VolunteerService) Register(ctx context.Context, userID string, skills []string, location, availability *string) (*domain.Volunteer, error) {
	cleaned := cleanSkills(skills)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one skill is required", domain.ErrInvalidInput)
	}
	return s.volunteerRepo.Create(ctx, userID, cleaned, location, availability)
}

func (s *VolunteerService) GetMine(ctx context.Context, userID string) (*domain.Volunteer, error) {
	return s.volunteerRepo.GetByUserID(ctx, userID)
}

func (s *VolunteerService) UpdateMine(ctx context.Context, userID string, req *domain.UpdateVolunteerRequest) (*domain.Volunteer, error) {
	if req.Skills != nil {
		req.Skills = cleanSkills(req.Skills)
		if len(req.Skills) == 0 {
			return nil, fmt.Errorf("%w: skill set must not be empty", domain.ErrInvalidInput)
		}
	}
	return s.volunteerRepo.Update(ctx, userID, req)
}

func (s *VolunteerService) ListAll(ctx context.Context, actorRole string) ([]domain.Volunteer, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.volunteerRepo.List(ctx)
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}
