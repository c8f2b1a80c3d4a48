// Package sessionrepo stores revoked session token ids until they expire.
package sessionrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevokedSessionDTO struct {
	TokenID   string    `gorm:"type:varchar(64);primaryKey"`
	ExpiresAt time.Time `gorm:"not null;index"`
	RevokedAt time.Time `gorm:"not null"`
}

func (RevokedSessionDTO) TableName() string {
	return "revoked_sessions"
}

// GormRevokedSessionRepository works outside any unit of work: revocation is
// a single idempotent statement.
type GormRevokedSessionRepository struct {
	db *gorm.DB
}

func NewGormRevokedSessionRepository(db *gorm.DB) *GormRevokedSessionRepository {
	return &GormRevokedSessionRepository{db: db}
}

func (r *GormRevokedSessionRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	dto := RevokedSessionDTO{
		TokenID:   tokenID,
		ExpiresAt: expiresAt.UTC(),
		RevokedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

func (r *GormRevokedSessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&RevokedSessionDTO{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRevokedSessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&RevokedSessionDTO{}, "expires_at < ?", now.UTC())
	return result.RowsAffected, result.Error
}
