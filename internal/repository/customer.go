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

// CustomerRepository handles customer persistence. Ownership scoping is
// expressed through the ownerID parameter: zero means unscoped (admin).
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	ctx = ctxutil.WithOperation(ctx, "customer_repository", "Create")

	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to create customer").
			Uint("owner_id", customer.OwnerID).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "customer created").
		Uint("id", customer.ID).
		Duration(ctxutil.GetDuration(ctx)).
		Log()
	return nil
}

// FindByID loads one customer scoped to the owner. ownerID zero skips
// the scope for admin access.
func (r *CustomerRepository) FindByID(ctx context.Context, id, ownerID uint) (*model.Customer, error) {
	ctx = ctxutil.WithOperation(ctx, "customer_repository", "FindByID")

	query := r.db.WithContext(ctx)
	if ownerID != 0 {
		query = query.Where("owner_id = ?", ownerID)
	}

	var customer model.Customer
	if err := query.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns a page of customers, owner-scoped and optionally filtered
// by a name, email or company substring.
func (r *CustomerRepository) List(ctx context.Context, ownerID uint, params constants.PaginationParams) ([]model.Customer, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "customer_repository", "List")

	query := r.db.WithContext(ctx).Model(&model.Customer{})
	if ownerID != 0 {
		query = query.Where("owner_id = ?", ownerID)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []model.Customer
	err := query.Order("id").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&customers).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "failed to list customers").
			Uint("owner_id", ownerID).
			Err(err).
			Log()
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	ctx = ctxutil.WithOperation(ctx, "customer_repository", "Update")

	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		logger.ErrorWithContext(ctx, "failed to update customer").
			Uint("id", customer.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

// Delete removes a customer and, via the cascade constraint, its notes.
// The owner scope keeps a non-admin from deleting across tenants.
func (r *CustomerRepository) Delete(ctx context.Context, id, ownerID uint) error {
	ctx = ctxutil.WithOperation(ctx, "customer_repository", "Delete")

	query := r.db.WithContext(ctx).Unscoped()
	if ownerID != 0 {
		query = query.Where("owner_id = ?", ownerID)
	}

	result := query.Delete(&model.Customer{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "failed to delete customer").
			Uint("id", id).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "customer deleted").
		Uint("id", id).
		Duration(ctxutil.GetDuration(ctx)).
		Log()
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&total).Error
	return total, err
}

func (r *CustomerRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("created_at >= ?", since).
		Count(&total).Error
	return total, err
}

func (r *CustomerRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	return total, err
}

func (r *CustomerRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
