package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"healthkeeper/internal/models/db_models"
)

type SessionRepository interface {
	Insert(ctx context.Context, session *db_models.Session) error
	// FindActive returns the active, unexpired session matching both the
	// user and the exact access token string.
	FindActive(ctx context.Context, userID, token string) (*db_models.Session, error)
	FindActiveByRefreshToken(ctx context.Context, refreshToken string) (*db_models.Session, error)
	Deactivate(ctx context.Context, id string) error
	DeactivateByToken(ctx context.Context, userID, token string) error
	DeactivateAllForUser(ctx context.Context, userID string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, session *db_models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindActive(ctx context.Context, userID, token string) (*db_models.Session, error) {
	var session db_models.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ? AND is_active = ? AND expires_at > ?",
			userID, token, true, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindActiveByRefreshToken(ctx context.Context, refreshToken string) (*db_models.Session, error) {
	var session db_models.Session
	err := r.db.WithContext(ctx).
		Where("refresh_token = ? AND is_active = ?", refreshToken, true).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Session{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *sessionRepository) DeactivateByToken(ctx context.Context, userID, token string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Session{}).
		Where("user_id = ? AND token = ?", userID, token).
		Update("is_active", false).Error
}

func (r *sessionRepository) DeactivateAllForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}
