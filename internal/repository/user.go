package repository

import (
	"context"
	"time"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"gorm.io/gorm"
)

// UserRepository handles user persistence.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithOperation(ctx, "user_repository", "Create")

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to create user").
			String("email", user.Email).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "user created").
		Uint("id", user.ID).
		Duration(ctxutil.GetDuration(ctx)).
		Log()
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "user_repository", "FindByEmail")

	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "user_repository", "FindByID")

	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithOperation(ctx, "user_repository", "Update")

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to update user").
			Uint("id", user.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

// Delete hard-deletes a user. gorm.Model soft delete is deliberately
// bypassed so the unique email constraint frees up immediately.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "user_repository", "Delete")

	result := r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to delete user").
			Uint("id", id).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "user deleted").
		Uint("id", id).
		Duration(ctxutil.GetDuration(ctx)).
		Log()
	return nil
}

// List returns a page of users, optionally filtered by email or full
// name substring.
func (r *UserRepository) List(ctx context.Context, params constants.PaginationParams) ([]model.User, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "user_repository", "List")

	query := r.db.WithContext(ctx).Model(&model.User{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("id").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&users).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "failed to list users").
			Err(err).
			Log()
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	return total, err
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_active = ?", true).
		Count(&total).Error
	return total, err
}

func (r *UserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("created_at >= ?", since).
		Count(&total).Error
	return total, err
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[model.Role]int64, error) {
	type roleCount struct {
		Role  model.Role
		Count int64
	}

	var rows []roleCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, count(*) as count").
		Group("role").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
