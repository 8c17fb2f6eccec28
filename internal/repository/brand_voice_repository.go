// internal/repository/brand_voice_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saileshbalu94/ecommerce-ai/internal/database"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

type BrandVoiceRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.BrandVoice, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.BrandVoice, error)
	Create(ctx context.Context, voice *models.BrandVoice) error
	Save(ctx context.Context, voice *models.BrandVoice) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// SetDefault flags one voice and clears the flag on the owner's others.
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
}

type brandVoiceRepository struct {
	db *gorm.DB
}

func NewBrandVoiceRepository(db *gorm.DB) BrandVoiceRepository {
	return &brandVoiceRepository{db: db}
}

func (r *brandVoiceRepository) List(ctx context.Context, userID uuid.UUID) ([]models.BrandVoice, error) {
	var voices []models.BrandVoice
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&voices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list brand voices: %w", err)
	}
	return voices, nil
}

func (r *brandVoiceRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.BrandVoice, error) {
	var voice models.BrandVoice
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&voice).Error
	if err != nil {
		return nil, translate(err)
	}
	return &voice, nil
}

func (r *brandVoiceRepository) Create(ctx context.Context, voice *models.BrandVoice) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if voice.IsDefault {
			if err := clearDefault(tx, voice.UserID); err != nil {
				return err
			}
		}
		if err := tx.Create(voice).Error; err != nil {
			return fmt.Errorf("failed to create brand voice: %w", err)
		}
		return nil
	})
}

func (r *brandVoiceRepository) Save(ctx context.Context, voice *models.BrandVoice) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if voice.IsDefault {
			if err := tx.Model(&models.BrandVoice{}).
				Where("user_id = ? AND id <> ? AND is_default", voice.UserID, voice.ID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default brand voice: %w", err)
			}
		}
		result := tx.Model(voice).
			Where("user_id = ?", voice.UserID).
			Select("*").Omit("id", "user_id", "created_at").
			Updates(voice)
		if result.Error != nil {
			return fmt.Errorf("failed to update brand voice: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *brandVoiceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.BrandVoice{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete brand voice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *brandVoiceRepository) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := clearDefault(tx, userID); err != nil {
			return err
		}
		result := tx.Model(&models.BrandVoice{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true)
		if result.Error != nil {
			return fmt.Errorf("failed to set default brand voice: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func clearDefault(tx *gorm.DB, userID uuid.UUID) error {
	err := tx.Model(&models.BrandVoice{}).
		Where("user_id = ? AND is_default", userID).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear default brand voice: %w", err)
	}
	return nil
}
