// internal/repository/content_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

var contentSortFields = []string{"created_at", "updated_at", "title"}

type ContentFilter struct {
	UserID      uuid.UUID
	ContentType string
	Status      string
	utils.PaginationParams
}

type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Content, error)
	List(ctx context.Context, filter ContentFilter) ([]models.Content, int64, error)
	// Update writes the mutable columns if the stored row_version still
	// equals content.RowVersion, then bumps it.
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByType(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

func (r *contentRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&content).Error
	if err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (r *contentRepository) List(ctx context.Context, filter ContentFilter) ([]models.Content, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Content{}).Where("user_id = ?", filter.UserID)

	if filter.ContentType != "" {
		query = query.Where("content_type = ?", filter.ContentType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count content: %w", err)
	}

	var items []models.Content
	query = utils.ApplySort(query, filter.PaginationParams, contentSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list content: %w", err)
	}

	return items, total, nil
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	now := content.UpdatedAt
	if now.IsZero() {
		now = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ? AND user_id = ? AND row_version = ?", content.ID, content.UserID, content.RowVersion).
		Updates(map[string]interface{}{
			"title":             content.Title,
			"status":            content.Status,
			"generated_content": content.GeneratedContent,
			"conversation":      content.Conversation,
			"metadata":          content.Metadata,
			"updated_at":        now,
			"row_version":       gorm.Expr("row_version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, content.UserID, content.ID)
	}

	content.RowVersion++
	content.UpdatedAt = now
	return nil
}

// missOrConflict tells a vanished row apart from a stale row_version.
func (r *contentRepository) missOrConflict(ctx context.Context, userID, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check content: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

func (r *contentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Content{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contentRepository) CountByType(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		ContentType string
		Count       int64
	}
	err := r.db.WithContext(ctx).Model(&models.Content{}).
		Select("content_type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("content_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count content by type: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ContentType] = row.Count
	}
	return counts, nil
}
