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
	"gorm.io/gorm"
)

// CustomerStore is the customer persistence surface. An ownerID of zero
// means unscoped access.
type CustomerStore interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id, ownerID uint) (*model.Customer, error)
	List(ctx context.Context, ownerID uint, params constants.PaginationParams) ([]model.Customer, int64, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id, ownerID uint) error
}

// CustomerService implements customer CRUD with ownership enforcement.
// Admins see every record; everyone else sees only their own, and a
// foreign record is indistinguishable from a missing one.
type CustomerService struct {
	customers CustomerStore
}

func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

// ownerScope maps an actor to the repository owner filter.
func ownerScope(actorID uint, role model.Role) uint {
	if role == model.RoleAdmin {
		return 0
	}
	return actorID
}

func (s *CustomerService) List(ctx context.Context, actorID uint, role model.Role, params constants.PaginationParams) ([]dto.CustomerResponse, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "customer_service", "List")

	customers, total, err := s.customers.List(ctx, ownerScope(actorID, role), params)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, dto.NewCustomerResponse(&customers[i]))
	}
	return out, total, nil
}

func (s *CustomerService) Create(ctx context.Context, actorID uint, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "customer_service", "Create")

	status := req.Status
	if status == "" {
		status = "Active"
	}

	customer := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Status:  status,
		OwnerID: actorID,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

func (s *CustomerService) Get(ctx context.Context, actorID uint, role model.Role, id uint) (*dto.CustomerResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "customer_service", "Get")

	customer, err := s.customers.FindByID(ctx, id, ownerScope(actorID, role))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

func (s *CustomerService) Update(ctx context.Context, actorID uint, role model.Role, id uint, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "customer_service", "Update")

	customer, err := s.customers.FindByID(ctx, id, ownerScope(actorID, role))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Company != nil {
		customer.Company = *req.Company
	}
	if req.Status != nil {
		customer.Status = *req.Status
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

func (s *CustomerService) Delete(ctx context.Context, actorID uint, role model.Role, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "customer_service", "Delete")

	if err := s.customers.Delete(ctx, id, ownerScope(actorID, role)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCustomerNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "customer removed").
		Uint("customer_id", id).
		Uint("actor_id", actorID).
		Log()
	return nil
}
