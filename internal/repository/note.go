package repository

import (
	"context"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"gorm.io/gorm"
)

// NoteRepository handles note persistence. Callers resolve customer
// ownership before reaching this layer.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	ctx = ctxutil.WithOperation(ctx, "note_repository", "Create")

	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to create note").
			Uint("customer_id", note.CustomerID).
			Err(err).
			Log()
		return err
	}
	return nil
}

// FindByID loads one note belonging to the given customer.
func (r *NoteRepository) FindByID(ctx context.Context, id, customerID uint) (*model.Note, error) {
	ctx = ctxutil.WithOperation(ctx, "note_repository", "FindByID")

	var note model.Note
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByCustomer returns a customer's notes, newest first.
func (r *NoteRepository) ListByCustomer(ctx context.Context, customerID uint, params constants.PaginationParams) ([]model.Note, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "note_repository", "ListByCustomer")

	query := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []model.Note
	err := query.Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&notes).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "failed to list notes").
			Uint("customer_id", customerID).
			Err(err).
			Log()
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *model.Note) error {
	ctx = ctxutil.WithOperation(ctx, "note_repository", "Update")

	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to update note").
			Uint("id", note.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, customerID uint) error {
	ctx = ctxutil.WithOperation(ctx, "note_repository", "Delete")

	result := r.db.WithContext(ctx).Unscoped().
		Where("customer_id = ?", customerID).
		Delete(&model.Note{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to delete note").
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

func (r *NoteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Note{}).Count(&total).Error
	return total, err
}
