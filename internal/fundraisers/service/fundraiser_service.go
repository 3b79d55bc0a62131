package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/repository"
)

// FundraiserService owns campaign totals and donation recording. Amounts
// are recorded only; no payment processing happens here.
type FundraiserService struct {
	fundraiserRepo *repository.FundraiserRepository
}

func NewFundraiserService(fundraiserRepo *repository.FundraiserRepository) *FundraiserService {
	return &FundraiserService{fundraiserRepo: fundraiserRepo}
}

type CreateFundraiserRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	GoalAmount  float64    `json:"goal_amount"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

func (s *FundraiserService) Create(ctx context.Context, actorID, actorRole string, req *CreateFundraiserRequest) (*domain.Fundraiser, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if req.GoalAmount <= 0 {
		return nil, fmt.Errorf("%w: goal_amount must be positive", domain.ErrInvalidInput)
	}

	f := &domain.Fundraiser{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		GoalAmount:  req.GoalAmount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   &actorID,
	}
	return s.fundraiserRepo.Create(ctx, f)
}

func (s *FundraiserService) Get(ctx context.Context, id string) (*domain.Fundraiser, error) {
	return s.fundraiserRepo.GetByID(ctx, id)
}

func (s *FundraiserService) List(ctx context.Context, status string) ([]domain.Fundraiser, error) {
	if status != "" && status != domain.StatusActive && status != domain.StatusCompleted && status != domain.StatusCancelled {
		return nil, fmt.Errorf("%w: unknown fundraiser status %q", domain.ErrInvalidInput, status)
	}
	return s.fundraiserRepo.List(ctx, status)
}

// Close is the explicit admin closure. Reaching the goal never closes a
// fundraiser on its own.
func (s *FundraiserService) Close(ctx context.Context, actorRole, id, newStatus string) (*domain.Fundraiser, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	if newStatus != domain.StatusCompleted && newStatus != domain.StatusCancelled {
		return nil, fmt.Errorf("%w: status must be completed or cancelled", domain.ErrInvalidInput)
	}
	return s.fundraiserRepo.Close(ctx, id, newStatus)
}

// Donate records a donation against an active fundraiser. Anonymous
// donations always store the placeholder donor name, whatever was supplied.
func (s *FundraiserService) Donate(ctx context.Context, fundraiserID, donorUserID, donorName string, amount float64, isAnonymous bool) (*domain.Fundraiser, *domain.Donation, error) {
	if amount <= 0 {
		return nil, nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	donorName = strings.TrimSpace(donorName)
	if isAnonymous {
		donorName = domain.AnonymousDonorName
	} else if donorName == "" {
		return nil, nil, fmt.Errorf("%w: donor_name is required", domain.ErrInvalidInput)
	}

	d := &domain.Donation{
		FundraiserID: fundraiserID,
		DonorName:    donorName,
		Amount:       amount,
		IsAnonymous:  isAnonymous,
	}
	if donorUserID != "" {
		d.DonorUserID = &donorUserID
	}
	return s.fundraiserRepo.Donate(ctx, d)
}

func (s *FundraiserService) ListDonations(ctx context.Context, actorRole, fundraiserID string) ([]domain.Donation, error) {
	if actorRole != authdomain.RoleAdmin {
		return nil, domain.ErrAdminOnly
	}
	return s.fundraiserRepo.ListDonationsByFundraiser(ctx, fundraiserID)
}

func (s *FundraiserService) ListMyDonations(ctx context.Context, userID string) ([]domain.Donation, error) {
	return s.fundraiserRepo.ListDonationsByDonor(ctx, userID)
}
