package service

import (
	"context"
	"errors"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserAdminStore extends UserStore with the admin-facing operations.
type UserAdminStore interface {
	UserStore
	List(ctx context.Context, params constants.PaginationParams) ([]model.User, int64, error)
	Delete(ctx context.Context, id uint) error
}

// CustomerCounter reports how many customers a user owns.
type CustomerCounter interface {
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
}

// UserService implements profile management and admin user management.
type UserService struct {
	users     UserAdminStore
	tokens    RefreshTokenStore
	customers CustomerCounter
}

func NewUserService(users UserAdminStore, tokens RefreshTokenStore, customers CustomerCounter) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		customers: customers,
	}
}

// GetProfile returns the user's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "GetProfile")

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes the user's own display name or password.
// A password change revokes every session; the user logs in again.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "UpdateProfile")

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	passwordChanged := false
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		user.PasswordHash = string(hash)
		passwordChanged = true
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if passwordChanged {
		if _, err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
			logger.WarnWithContext(ctx, "failed to revoke sessions after password change").
				Uint("user_id", userID).
				Err(err).
				Log()
		}
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns a page of users with their customer counts.
func (s *UserService) ListUsers(ctx context.Context, params constants.PaginationParams) ([]dto.AdminUserListItem, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "ListUsers")

	users, total, err := s.users.List(ctx, params)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.AdminUserListItem, 0, len(users))
	for i := range users {
		u := &users[i]
		count, err := s.customers.CountByOwner(ctx, u.ID)
		if err != nil {
			return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		out = append(out, dto.AdminUserListItem{
			UserResponse:  dto.NewUserResponse(u),
			CustomerCount: count,
		})
	}
	return out, total, nil
}

// GetUser returns one user by id, admin view.
func (s *UserService) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "GetUser")

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// PromoteUser sets a user's role. Demotions are allowed, including on
// oneself; the guard reloads the role on every request so the change is
// immediate.
func (s *UserService) PromoteUser(ctx context.Context, targetID uint, role model.Role) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "PromoteUser")

	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	previous := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "user role changed").
		Uint("target_id", targetID).
		String("from", string(previous)).
		String("to", string(role)).
		Log()

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// AdminUpdateUser applies an admin's partial update. Deactivating
// oneself trips the self-lockout guard; deactivating anyone revokes
// their sessions.
func (s *UserService) AdminUpdateUser(ctx context.Context, actorID, targetID uint, req dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "AdminUpdateUser")

	if req.IsActive != nil && !*req.IsActive && actorID == targetID {
		return nil, apperrors.ErrSelfLockout
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperrors.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	deactivated := false
	if req.IsActive != nil {
		deactivated = user.IsActive && !*req.IsActive
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if deactivated {
		if _, err := s.tokens.RevokeAllForUser(ctx, targetID); err != nil {
			logger.WarnWithContext(ctx, "failed to revoke sessions on deactivation").
				Uint("target_id", targetID).
				Err(err).
				Log()
		}
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ToggleUserStatus flips a user's active flag. Deactivation revokes all
// of the target's sessions so lockout is immediate. Admins cannot
// deactivate themselves.
func (s *UserService) ToggleUserStatus(ctx context.Context, actorID, targetID uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "ToggleUserStatus")

	if actorID == targetID {
		return nil, apperrors.ErrSelfLockout
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user.IsActive = !user.IsActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !user.IsActive {
		if _, err := s.tokens.RevokeAllForUser(ctx, targetID); err != nil {
			logger.WarnWithContext(ctx, "failed to revoke sessions on deactivation").
				Uint("target_id", targetID).
				Err(err).
				Log()
		}
	}

	logger.InfoWithContext(ctx, "user status toggled").
		Uint("target_id", targetID).
		Bool("is_active", user.IsActive).
		Log()

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a user. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	ctx = ctxutil.WithOperation(ctx, "user_service", "DeleteUser")

	if actorID == targetID {
		return apperrors.ErrSelfLockout
	}

	if _, err := s.tokens.RevokeAllForUser(ctx, targetID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
