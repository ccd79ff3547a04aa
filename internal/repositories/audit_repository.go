package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"healthkeeper/internal/models/db_models"
)

type AuditRepository interface {
	Record(ctx context.Context, userID *uuid.UUID, action, detail, ip string) error
	ListForUser(ctx context.Context, userID string, limit int) ([]db_models.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, userID *uuid.UUID, action, detail, ip string) error {
	entry := &db_models.AuditLog{
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		IPAddress: ip,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) ListForUser(ctx context.Context, userID string, limit int) ([]db_models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []db_models.AuditLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
