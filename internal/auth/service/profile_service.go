package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/repository"
)

type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the caller's own name/contact. Role changes are
// not accepted through this path.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		req.Name = &trimmed
	}
	return s.profileRepo.Update(ctx, userID, req)
}
