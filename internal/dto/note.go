package dto

import (
	"time"

	"github.com/fastcrm/fastcrm/internal/model"
)

// CreateNoteRequest is the payload for adding a note to a customer.
type CreateNoteRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// UpdateNoteRequest replaces a note's content.
type UpdateNoteRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// NoteResponse is the public representation of a note.
type NoteResponse struct {
	ID         uint      `json:"id"`
	CustomerID uint      `json:"customer_id"`
	Content    string    `json:"content"`
	CreatedBy  uint      `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewNoteResponse maps a model.Note to its public shape.
func NewNoteResponse(n *model.Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		CustomerID: n.CustomerID,
		Content:    n.Content,
		CreatedBy:  n.CreatedBy,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
