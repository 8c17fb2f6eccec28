// internal/repository/campaign_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

var campaignSortFields = []string{"created_at", "updated_at", "name"}

type CampaignFilter struct {
	UserID      uuid.UUID
	ChannelType string
	utils.PaginationParams
}

type CampaignRepository interface {
	List(ctx context.Context, filter CampaignFilter) ([]models.MarketingCampaign, int64, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.MarketingCampaign, error)
	Create(ctx context.Context, campaign *models.MarketingCampaign) error
	Save(ctx context.Context, campaign *models.MarketingCampaign) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) List(ctx context.Context, filter CampaignFilter) ([]models.MarketingCampaign, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MarketingCampaign{}).Where("user_id = ?", filter.UserID)
	if filter.ChannelType != "" {
		query = query.Where("channel_type = ?", filter.ChannelType)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var campaigns []models.MarketingCampaign
	query = utils.ApplySort(query, filter.PaginationParams, campaignSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, total, nil
}

func (r *campaignRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.MarketingCampaign, error) {
	var campaign models.MarketingCampaign
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&campaign).Error
	if err != nil {
		return nil, translate(err)
	}
	return &campaign, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.MarketingCampaign) error {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *campaignRepository) Save(ctx context.Context, campaign *models.MarketingCampaign) error {
	result := r.db.WithContext(ctx).Model(campaign).
		Where("user_id = ?", campaign.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(campaign)
	if result.Error != nil {
		return fmt.Errorf("failed to update campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.MarketingCampaign{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
