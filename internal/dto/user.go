package dto

import (
	"time"

	"github.com/fastcrm/fastcrm/internal/model"
)

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      model.Role `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewUserResponse maps a model.User to its public shape.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateProfileRequest lets a user change their own display name or password.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=100"`
	Password *string `json:"password" binding:"omitempty,password"`
}

// AdminUpdateUserRequest is the admin's partial update of another user.
type AdminUpdateUserRequest struct {
	FullName *string     `json:"full_name" binding:"omitempty,min=1,max=100"`
	Role     *model.Role `json:"role" binding:"omitempty,role"`
	IsActive *bool       `json:"is_active"`
}

// PromoteRequest changes a user's role, admin only.
type PromoteRequest struct {
	Role model.Role `json:"role" binding:"required,role"`
}
