package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memNoteStore struct {
	mu   sync.Mutex
	seq  uint
	rows map[uint]model.Note
}

func newMemNoteStore() *memNoteStore {
	return &memNoteStore{rows: make(map[uint]model.Note)}
}

func (s *memNoteStore) Create(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	note.ID = s.seq
	note.CreatedAt = time.Now().UTC()
	s.rows[note.ID] = *note
	return nil
}

func (s *memNoteStore) FindByID(_ context.Context, id, customerID uint) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok || row.CustomerID != customerID {
		return nil, gorm.ErrRecordNotFound
	}
	n := row
	return &n, nil
}

func (s *memNoteStore) ListByCustomer(_ context.Context, customerID uint, params constants.PaginationParams) ([]model.Note, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []model.Note
	for _, row := range s.rows {
		if row.CustomerID == customerID {
			all = append(all, row)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

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

func (s *memNoteStore) Update(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[note.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.rows[note.ID] = *note
	return nil
}

func (s *memNoteStore) Delete(_ context.Context, id, customerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok || row.CustomerID != customerID {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	return nil
}

func newNoteFixture(t *testing.T) (*NoteService, uint) {
	t.Helper()
	customers := newMemCustomerStore()
	custSvc := NewCustomerService(customers)

	created, err := custSvc.Create(context.Background(), 1, dto.CreateCustomerRequest{Name: "Acme Corp"})
	require.NoError(t, err)

	return NewNoteService(newMemNoteStore(), customers), created.ID
}

func TestNoteLifecycle(t *testing.T) {
	svc, customerID := newNoteFixture(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, model.RolePremium, customerID, dto.CreateNoteRequest{Content: "first call went well"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), note.CreatedBy)
	assert.Equal(t, customerID, note.CustomerID)

	updated, err := svc.Update(ctx, 1, model.RolePremium, customerID, note.ID, dto.UpdateNoteRequest{Content: "follow up next week"})
	require.NoError(t, err)
	assert.Equal(t, "follow up next week", updated.Content)

	list, total, err := svc.List(ctx, 1, model.RolePremium, customerID, defaultParams())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, 1, model.RolePremium, customerID, note.ID))

	_, err = svc.Get(ctx, 1, model.RolePremium, customerID, note.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestNoteAccessFollowsCustomerOwnership(t *testing.T) {
	svc, customerID := newNoteFixture(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, 1, model.RolePremium, customerID, dto.CreateNoteRequest{Content: "private"})
	require.NoError(t, err)

	// A foreign caller cannot even see the customer, so every note
	// operation reads as customer-not-found.
	_, err = svc.Get(ctx, 2, model.RolePremium, customerID, note.ID)
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)

	_, err = svc.Create(ctx, 2, model.RolePremium, customerID, dto.CreateNoteRequest{Content: "intrusion"})
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)

	err = svc.Delete(ctx, 2, model.RolePremium, customerID, note.ID)
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)

	// Admin bypasses ownership.
	got, err := svc.Get(ctx, 99, model.RoleAdmin, customerID, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Content)
}

func TestNoteUnknownCustomer(t *testing.T) {
	svc, _ := newNoteFixture(t)

	_, err := svc.Create(context.Background(), 1, model.RolePremium, 999, dto.CreateNoteRequest{Content: "x"})
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}
