package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/traintrack/traintrack/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormStore persists token records in the jwt_tokens table. Rows are never
// hard-deleted: a revoked record stays as a permanently revoked row, and
// expiry is enforced lazily by the lifecycle manager on read.
type GormStore struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewGormStore(db *gorm.DB, logger *logging.Service) *GormStore {
	return &GormStore{
		db:     db,
		logger: logger,
	}
}

func (g *GormStore) Save(ctx context.Context, rec Record) error {
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		g.logger.Error("failed to store token record", zap.Error(err))
		return fmt.Errorf("failed to store token record: %w", err)
	}
	return nil
}

func (g *GormStore) FindByHash(ctx context.Context, kind Kind, hash string) (*Record, error) {
	var rec Record
	err := g.db.WithContext(ctx).
		Where("token_type = ? AND token_hash = ?", kind, hash).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		g.logger.Error("failed to read token record", zap.Error(err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &rec, nil
}

func (g *GormStore) SetRevoked(ctx context.Context, kind Kind, hash string) error {
	// Conditional update on revoked = false is the compare-and-swap that
	// serializes concurrent revocations of the same record.
	result := g.db.WithContext(ctx).
		Model(&Record{}).
		Where("token_type = ? AND token_hash = ? AND revoked = ?", kind, hash, false).
		Update("revoked", true)
	if result.Error != nil {
		g.logger.Error("failed to revoke token record", zap.Error(result.Error))
		return fmt.Errorf("failed to revoke token record: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		return nil
	}

	// No row flipped: either the record is already revoked (idempotent
	// success) or it does not exist.
	var count int64
	if err := g.db.WithContext(ctx).
		Model(&Record{}).
		Where("token_type = ? AND token_hash = ?", kind, hash).
		Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return ErrTokenNotFound
	}

	return nil
}
