package repository

import (
	"context"
	"time"

	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"gorm.io/gorm"
)

// RefreshTokenRepository handles login sessions. Tokens are looked up
// by their SHA-256 digest; the raw value never reaches this layer.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "Create")

	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to create refresh token").
			Uint("user_id", token.UserID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *RefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "FindByHash")

	var token model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *RefreshTokenRepository) FindByID(ctx context.Context, id uint) (*model.RefreshToken, error) {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "FindByID")

	var token model.RefreshToken
	if err := r.db.WithContext(ctx).First(&token, id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Rotate revokes the presented token and inserts its replacement in one
// transaction. The conditional UPDATE is the replay guard: two
// concurrent rotations of the same token race on revoked_at, exactly
// one sees RowsAffected == 1, the loser gets gorm.ErrRecordNotFound.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldHash string, replacement *model.RefreshToken) error {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "Rotate")
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RefreshToken{}).
			Where("token_hash = ? AND revoked_at IS NULL", oldHash).
			Updates(map[string]interface{}{
				"revoked_at":   now,
				"last_used_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(replacement).Error
	})
	if err != nil && err != gorm.ErrRecordNotFound {
		logger.ErrorWithContext(ctx, "failed to rotate refresh token").
			Err(err).
			Log()
	}
	return err
}

// RevokeByID revokes a single session owned by the user. Already
// revoked sessions report not found.
func (r *RefreshTokenRepository) RevokeByID(ctx context.Context, id, userID uint) error {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "RevokeByID")

	result := r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL", id, userID).
		Update("revoked_at", time.Now().UTC())
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to revoke refresh token").
			Uint("id", id).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RevokeAllForUser revokes every active session of the user and returns
// how many were revoked.
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "RevokeAllForUser")

	result := r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now().UTC())
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to revoke sessions").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "sessions revoked").
		Uint("user_id", userID).
		Int64("count", result.RowsAffected).
		Log()
	return result.RowsAffected, nil
}

// ListActiveForUser returns unrevoked, unexpired sessions, newest first.
func (r *RefreshTokenRepository) ListActiveForUser(ctx context.Context, userID uint) ([]model.RefreshToken, error) {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "ListActiveForUser")

	var tokens []model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now().UTC()).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// CountActive counts live sessions across all users.
func (r *RefreshTokenRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("revoked_at IS NULL AND expires_at > ?", time.Now().UTC()).
		Count(&total).Error
	return total, err
}

// DeleteExpired purges rows that can never be used again. Run from a
// background sweep, not the request path.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "refresh_token_repository", "DeleteExpired")

	result := r.db.WithContext(ctx).Unscoped().
		Where("expires_at < ?", olderThan).
		Delete(&model.RefreshToken{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to purge expired tokens").
			Err(result.Error).
			Log()
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
