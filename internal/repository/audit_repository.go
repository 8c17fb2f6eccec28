// internal/repository/audit_repository.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
