// internal/repository/profile_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

var profileSortFields = []string{"created_at", "email", "full_name"}

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	FindByStripeCustomer(ctx context.Context, customerID string) (*models.Profile, error)
	// Ensure inserts the profile unless one with the same id exists and
	// returns the stored row either way.
	Ensure(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, fullName, companyName string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role models.UserRole) error
	UpdateSubscription(ctx context.Context, id uuid.UUID, sub models.Subscription) error
	IncrementUsage(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, params utils.PaginationParams) ([]models.Profile, int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) FindByStripeCustomer(ctx context.Context, customerID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("subscription->>'stripeCustomerId' = ?", customerID).
		First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepository) Ensure(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return r.FindByID(ctx, profile.ID)
}

func (r *profileRepository) UpdateDetails(ctx context.Context, id uuid.UUID, fullName, companyName string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"full_name":    fullName,
		"company_name": companyName,
	})
}

func (r *profileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.UserRole) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"role": role})
}

func (r *profileRepository) UpdateSubscription(ctx context.Context, id uuid.UUID, sub models.Subscription) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"subscription": sub})
}

// IncrementUsage bumps both counters in one statement so concurrent
// generations never lose an increment.
func (r *profileRepository) IncrementUsage(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"usage_content_generated": gorm.Expr("usage_content_generated + 1"),
		"usage_api_calls":         gorm.Expr("usage_api_calls + 1"),
		"usage_last_used":         at,
	})
}

func (r *profileRepository) updateColumns(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.Profile, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Profile{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ? OR company_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	var profiles []models.Profile
	query = utils.ApplySort(query, params, profileSortFields)
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, total, nil
}
