// internal/services/profile_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

type ProfileService struct {
	profiles repository.ProfileRepository
	contents repository.ContentRepository
	logger   *logrus.Logger
	now      func() time.Time
}

type UpdateProfileRequest struct {
	FullName    *string `json:"fullName,omitempty" validate:"omitempty,max=255"`
	CompanyName *string `json:"companyName,omitempty" validate:"omitempty,max=255"`
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required"`
}

// UsageReport is what a user sees about their own consumption.
type UsageReport struct {
	Usage        models.Usage        `json:"usage"`
	ContentStats map[string]int64    `json:"contentStats"`
	Subscription models.Subscription `json:"subscription"`
}

func NewProfileService(profiles repository.ProfileRepository, contents repository.ContentRepository, logger *logrus.Logger) *ProfileService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProfileService{
		profiles: profiles,
		contents: contents,
		logger:   logger,
		now:      time.Now,
	}
}

// EnsureProfile returns the stored profile for an authenticated user,
// creating it with the default role and a trial subscription on first sight.
func (s *ProfileService) EnsureProfile(ctx context.Context, id uuid.UUID, email string) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	profile, err = s.profiles.Ensure(ctx, &models.Profile{
		ID:           id,
		Email:        email,
		Role:         models.UserRoleUser,
		Subscription: models.DefaultSubscription(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"user_id": id, "email": email}).Info("Profile created")
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.profiles.FindByID(ctx, id)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fullName, companyName := profile.FullName, profile.CompanyName
	if req.FullName != nil {
		fullName = strings.TrimSpace(*req.FullName)
	}
	if req.CompanyName != nil {
		companyName = strings.TrimSpace(*req.CompanyName)
	}
	if fullName == profile.FullName && companyName == profile.CompanyName {
		return profile, nil
	}

	if err := s.profiles.UpdateDetails(ctx, id, fullName, companyName); err != nil {
		return nil, err
	}
	profile.FullName = fullName
	profile.CompanyName = companyName
	return profile, nil
}

func (s *ProfileService) Usage(ctx context.Context, id uuid.UUID) (*UsageReport, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.contents.CountByType(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UsageReport{
		Usage:        profile.Usage(),
		ContentStats: stats,
		Subscription: profile.Subscription,
	}, nil
}

func (s *ProfileService) RecordGeneration(ctx context.Context, id uuid.UUID) error {
	return s.profiles.IncrementUsage(ctx, id, s.now().UTC())
}

func (s *ProfileService) List(ctx context.Context, params utils.PaginationParams) ([]models.Profile, int64, error) {
	return s.profiles.List(ctx, params)
}

func (s *ProfileService) UpdateRole(ctx context.Context, actor, id uuid.UUID, role models.UserRole) (*models.Profile, error) {
	if role != models.UserRoleUser && role != models.UserRoleAdmin {
		return nil, invalid("role", i18n.KeyProfileInvalidRole, "role must be user or admin")
	}

	if err := s.profiles.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"actor_id": actor,
		"user_id":  id,
		"role":     role,
	}).Info("Profile role changed")
	return s.profiles.FindByID(ctx, id)
}

func (s *ProfileService) UpdateSubscription(ctx context.Context, id uuid.UUID, sub models.Subscription) error {
	if err := s.profiles.UpdateSubscription(ctx, id, sub); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": id,
		"plan":    sub.Plan,
		"status":  sub.Status,
	}).Info("Subscription updated")
	return nil
}

func (s *ProfileService) FindByStripeCustomer(ctx context.Context, customerID string) (*models.Profile, error) {
	return s.profiles.FindByStripeCustomer(ctx, customerID)
}
