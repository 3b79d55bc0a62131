package service

import (
	"context"
	"fmt"
	"strings"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/repository"
)

// ResourceService owns the resource inventory ledger.
type ResourceService struct {
	resourceRepo *repository.ResourceRepository
}

func NewResourceService(resourceRepo *repository.ResourceRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo}
}

func (s *ResourceService) Create(ctx context.Context, actorRole, name, category string, quantity int, unit *string) (*domain.Resource, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: name and category are required", domain.ErrInvalidInput)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}
	return s.resourceRepo.Create(ctx, name, category, quantity, unit)
}

func (s *ResourceService) Get(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resourceRepo.GetByID(ctx, id)
}

func (s *ResourceService) List(ctx context.Context) ([]domain.Resource, error) {
	return s.resourceRepo.List(ctx)
}

func (s *ResourceService) Update(ctx context.Context, actorRole, id string, req *domain.UpdateResourceRequest) (*domain.Resource, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}
	return s.resourceRepo.Update(ctx, id, req)
}

// Allocate draws quantity against a victim request. Admin-only; the
// balance check and decrement happen atomically in the repository.
func (s *ResourceService) Allocate(ctx context.Context, actorID, actorRole, resourceID, requestID string, quantity int) (*domain.Resource, *domain.Allocation, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, nil, domain.ErrAdminOnly
	}
	if quantity <= 0 {
		return nil, nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	return s.resourceRepo.Allocate(ctx, resourceID, requestID, quantity, actorID)
}

func (s *ResourceService) ListAllocationsByResource(ctx context.Context, actorRole, resourceID string) ([]domain.Allocation, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.resourceRepo.ListAllocationsByResource(ctx, resourceID)
}

func (s *ResourceService) ListAllocationsByRequest(ctx context.Context, actorRole, requestID string) ([]domain.Allocation, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.resourceRepo.ListAllocationsByRequest(ctx, requestID)
}
