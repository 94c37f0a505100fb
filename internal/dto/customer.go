package dto

import (
	"time"

	"github.com/fastcrm/fastcrm/internal/model"
)

// CreateCustomerRequest is the payload for creating a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Company string `json:"company" binding:"omitempty,max=100"`
	Status  string `json:"status" binding:"omitempty,oneof=Active Inactive Lead"`
}

// UpdateCustomerRequest is a partial update; nil fields are untouched.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email   *string `json:"email" binding:"omitempty,email,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Company *string `json:"company" binding:"omitempty,max=100"`
	Status  *string `json:"status" binding:"omitempty,oneof=Active Inactive Lead"`
}

// CustomerResponse is the public representation of a customer.
type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	OwnerID   uint      `json:"owner_id"`
	NoteCount int       `json:"note_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomerResponse maps a model.Customer to its public shape.
func NewCustomerResponse(c *model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Status:    c.Status,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
