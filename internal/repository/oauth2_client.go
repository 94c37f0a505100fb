package repository

import (
	"context"
	"time"

	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"gorm.io/gorm"
)

// OAuth2ClientRepository handles machine-credential persistence.
type OAuth2ClientRepository struct {
	db *gorm.DB
}

func NewOAuth2ClientRepository(db *gorm.DB) *OAuth2ClientRepository {
	return &OAuth2ClientRepository{db: db}
}

func (r *OAuth2ClientRepository) Create(ctx context.Context, client *model.OAuth2Client) error {
	ctx = ctxutil.WithOperation(ctx, "oauth2_client_repository", "Create")

	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to create oauth2 client").
			Uint("user_id", client.UserID).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "oauth2 client created").
		String("client_id", client.ClientID).
		Uint("user_id", client.UserID).
		Log()
	return nil
}

func (r *OAuth2ClientRepository) FindByClientID(ctx context.Context, clientID string) (*model.OAuth2Client, error) {
	ctx = ctxutil.WithOperation(ctx, "oauth2_client_repository", "FindByClientID")

	var client model.OAuth2Client
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *OAuth2ClientRepository) ListForUser(ctx context.Context, userID uint) ([]model.OAuth2Client, error) {
	ctx = ctxutil.WithOperation(ctx, "oauth2_client_repository", "ListForUser")

	var clients []model.OAuth2Client
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// DeactivateAllForUser retires a user's existing credentials before a
// regeneration issues the replacement pair.
func (r *OAuth2ClientRepository) DeactivateAllForUser(ctx context.Context, userID uint) error {
	ctx = ctxutil.WithOperation(ctx, "oauth2_client_repository", "DeactivateAllForUser")

	err := r.db.WithContext(ctx).Model(&model.OAuth2Client{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "failed to deactivate oauth2 clients").
			Uint("user_id", userID).
			Err(err).
			Log()
	}
	return err
}

// TouchLastUsed records a successful exchange. Best effort.
func (r *OAuth2ClientRepository) TouchLastUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.OAuth2Client{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now().UTC()).Error
}
