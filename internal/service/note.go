package service

import (
	"context"
	"errors"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"gorm.io/gorm"
)

// NoteStore is the note persistence surface. Notes are always addressed
// through their customer.
type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id, customerID uint) (*model.Note, error)
	ListByCustomer(ctx context.Context, customerID uint, params constants.PaginationParams) ([]model.Note, int64, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id, customerID uint) error
}

// NoteService implements note CRUD nested under customers. Access to a
// note is access to its customer, so every operation resolves the
// customer through the ownership scope first.
type NoteService struct {
	notes     NoteStore
	customers CustomerStore
}

func NewNoteService(notes NoteStore, customers CustomerStore) *NoteService {
	return &NoteService{notes: notes, customers: customers}
}

// resolveCustomer loads the customer under the actor's scope. A foreign
// customer surfaces as not found.
func (s *NoteService) resolveCustomer(ctx context.Context, actorID uint, role model.Role, customerID uint) (*model.Customer, error) {
	customer, err := s.customers.FindByID(ctx, customerID, ownerScope(actorID, role))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return customer, nil
}

func (s *NoteService) List(ctx context.Context, actorID uint, role model.Role, customerID uint, params constants.PaginationParams) ([]dto.NoteResponse, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "List")

	if _, err := s.resolveCustomer(ctx, actorID, role, customerID); err != nil {
		return nil, 0, err
	}

	notes, total, err := s.notes.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, dto.NewNoteResponse(&notes[i]))
	}
	return out, total, nil
}

func (s *NoteService) Create(ctx context.Context, actorID uint, role model.Role, customerID uint, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Create")

	if _, err := s.resolveCustomer(ctx, actorID, role, customerID); err != nil {
		return nil, err
	}

	note := &model.Note{
		CustomerID: customerID,
		Content:    req.Content,
		CreatedBy:  actorID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

func (s *NoteService) Get(ctx context.Context, actorID uint, role model.Role, customerID, noteID uint) (*dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Get")

	if _, err := s.resolveCustomer(ctx, actorID, role, customerID); err != nil {
		return nil, err
	}

	note, err := s.notes.FindByID(ctx, noteID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

func (s *NoteService) Update(ctx context.Context, actorID uint, role model.Role, customerID, noteID uint, req dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Update")

	if _, err := s.resolveCustomer(ctx, actorID, role, customerID); err != nil {
		return nil, err
	}

	note, err := s.notes.FindByID(ctx, noteID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	note.Content = req.Content
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

func (s *NoteService) Delete(ctx context.Context, actorID uint, role model.Role, customerID, noteID uint) error {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Delete")

	if _, err := s.resolveCustomer(ctx, actorID, role, customerID); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, noteID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
