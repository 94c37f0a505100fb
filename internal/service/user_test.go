package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin-surface methods for memUserStore, completing UserAdminStore.

func (s *memUserStore) List(_ context.Context, params constants.PaginationParams) ([]model.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []model.User
	for _, row := range s.rows {
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if params.Offset >= len(all) {
		return nil, total, nil
	}
	end := params.Offset + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[params.Offset:end], total, nil
}

func (s *memUserStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	return nil
}

type fixedCustomerCounter struct{ counts map[uint]int64 }

func (c *fixedCustomerCounter) CountByOwner(_ context.Context, ownerID uint) (int64, error) {
	return c.counts[ownerID], nil
}

type userFixture struct {
	users  *memUserStore
	tokens *memTokenStore
	svc    *UserService
}

func newUserFixture() *userFixture {
	users := newMemUserStore()
	tokens := newMemTokenStore()
	return &userFixture{
		users:  users,
		tokens: tokens,
		svc:    NewUserService(users, tokens, &fixedCustomerCounter{counts: map[uint]int64{}}),
	}
}

func (f *userFixture) addUser(t *testing.T, email string, role model.Role) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Someone",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *userFixture) addSession(t *testing.T, userID uint) *model.RefreshToken {
	t.Helper()
	token := &model.RefreshToken{
		UserID:    userID,
		TokenHash: HashRefreshToken("session-" + time.Now().String()),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, f.tokens.Create(context.Background(), token))
	return token
}

func TestToggleUserStatusSelfLockout(t *testing.T) {
	f := newUserFixture()
	admin := f.addUser(t, "admin@example.com", model.RoleAdmin)

	_, err := f.svc.ToggleUserStatus(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfLockout)
}

func TestToggleUserStatusRevokesSessions(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.addUser(t, "admin@example.com", model.RoleAdmin)
	target := f.addUser(t, "bob@example.com", model.RoleBasic)
	f.addSession(t, target.ID)
	f.addSession(t, target.ID)

	resp, err := f.svc.ToggleUserStatus(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	sessions, err := f.tokens.ListActiveForUser(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions, "deactivation must revoke every session")

	// Toggling back on does not resurrect them.
	resp, err = f.svc.ToggleUserStatus(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	sessions, err = f.tokens.ListActiveForUser(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDeleteUserSelfLockout(t *testing.T) {
	f := newUserFixture()
	admin := f.addUser(t, "admin@example.com", model.RoleAdmin)

	err := f.svc.DeleteUser(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfLockout)
}

func TestDeleteUser(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.addUser(t, "admin@example.com", model.RoleAdmin)
	target := f.addUser(t, "bob@example.com", model.RoleBasic)
	f.addSession(t, target.ID)

	require.NoError(t, f.svc.DeleteUser(ctx, admin.ID, target.ID))

	_, err := f.svc.GetUser(ctx, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = f.svc.DeleteUser(ctx, admin.ID, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestPromoteUser(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	target := f.addUser(t, "bob@example.com", model.RoleBasic)

	resp, err := f.svc.PromoteUser(ctx, target.ID, model.RolePremium)
	require.NoError(t, err)
	assert.Equal(t, model.RolePremium, resp.Role)

	_, err = f.svc.PromoteUser(ctx, target.ID, model.Role("superuser"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)

	_, err = f.svc.PromoteUser(ctx, 999, model.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAdminUpdateUserSelfDeactivation(t *testing.T) {
	f := newUserFixture()
	admin := f.addUser(t, "admin@example.com", model.RoleAdmin)

	inactive := false
	_, err := f.svc.AdminUpdateUser(context.Background(), admin.ID, admin.ID, dto.AdminUpdateUserRequest{
		IsActive: &inactive,
	})
	assert.ErrorIs(t, err, apperrors.ErrSelfLockout)

	// Renaming oneself is fine.
	name := "Renamed Admin"
	resp, err := f.svc.AdminUpdateUser(context.Background(), admin.ID, admin.ID, dto.AdminUpdateUserRequest{
		FullName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, name, resp.FullName)
}

func TestUpdateProfilePasswordRevokesSessions(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	user := f.addUser(t, "alice@example.com", model.RoleBasic)
	f.addSession(t, user.ID)

	newPassword := "brand-new-password"
	_, err := f.svc.UpdateProfile(ctx, user.ID, dto.UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)

	sessions, err := f.tokens.ListActiveForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	updated, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPassword)))
}

func TestListUsersIncludesCustomerCounts(t *testing.T) {
	users := newMemUserStore()
	tokens := newMemTokenStore()
	f := &userFixture{users: users, tokens: tokens}
	a := f.addUser(t, "a@example.com", model.RoleBasic)
	b := f.addUser(t, "b@example.com", model.RolePremium)

	svc := NewUserService(users, tokens, &fixedCustomerCounter{counts: map[uint]int64{
		a.ID: 3,
		b.ID: 0,
	}})

	list, total, err := svc.ListUsers(context.Background(), constants.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].CustomerCount)
	assert.Equal(t, int64(0), list[1].CustomerCount)
}
