package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/shop-admin/internal/apperr"
	"github.com/tuanvumaihuynh/shop-admin/internal/dashboard"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/search"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

type CreateCustomerParams struct {
	Name                   string `json:"name" validate:"required"`
	Email                  string `json:"email" validate:"omitempty,email"`
	Phone                  string `json:"phone"`
	Address                string `json:"address"`
	City                   string `json:"city"`
	PostalCode             string `json:"postalCode"`
	Location               string `json:"location"`
	JoinDate               string `json:"joinDate"`
	Status                 string `json:"status"`
	Birthday               string `json:"birthday"`
	PreferredContactMethod string `json:"preferredContactMethod"`
	ReferredBy             string `json:"referredBy"`
	Notes                  string `json:"notes"`
	LoyaltyPoints          int    `json:"loyaltyPoints" validate:"gte=0"`
}

// UpdateCustomerParams changes the non-nil fields only. Order statistics are
// maintained from order events and cannot be set here.
type UpdateCustomerParams struct {
	Name                   *string `json:"name" validate:"omitempty,min=1"`
	Email                  *string `json:"email" validate:"omitempty,email"`
	Phone                  *string `json:"phone"`
	Address                *string `json:"address"`
	City                   *string `json:"city"`
	PostalCode             *string `json:"postalCode"`
	Location               *string `json:"location"`
	Status                 *string `json:"status"`
	Birthday               *string `json:"birthday"`
	PreferredContactMethod *string `json:"preferredContactMethod"`
	ReferredBy             *string `json:"referredBy"`
	Notes                  *string `json:"notes"`
	LoyaltyPoints          *int    `json:"loyaltyPoints" validate:"omitempty,gte=0"`
	IsBlocked              *bool   `json:"isBlocked"`
}

type ListCustomersParams struct {
	// Query is matched against name, phone and email.
	Query string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, error)
	GetCustomer(ctx context.Context, id string) (model.Customer, error)
	ListCustomers(ctx context.Context, params ListCustomersParams) ([]model.Customer, error)
	ListAllCustomers(ctx context.Context) ([]model.Customer, error)
	UpdateCustomer(ctx context.Context, id string, params UpdateCustomerParams) (model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	GetCustomerSummary(ctx context.Context) (dashboard.CustomerStats, error)
	// ApplyOrder records a placed order on the customer's statistics.
	ApplyOrder(ctx context.Context, customerID string, total decimal.Decimal, orderedAt time.Time) error
}

type customerService struct {
	store        docstore.Store
	validator    validator.Validator
	customerRepo repository.CustomerRepository
}

func NewCustomerService(
	store docstore.Store,
	validator validator.Validator,
	customerRepo repository.CustomerRepository,
) CustomerService {
	return &customerService{
		store:        store,
		validator:    validator,
		customerRepo: customerRepo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Customer{}, err
	}

	customer, err := newCustomer(params)
	if err != nil {
		return model.Customer{}, err
	}

	if err := s.customerRepo.CreateCustomer(ctx, customer); err != nil {
		return model.Customer{}, fmt.Errorf("customer repository create customer: %w", err)
	}

	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	customer, err := s.customerRepo.GetCustomer(ctx, id)
	if err != nil {
		return model.Customer{}, mapNotFound(err, apperr.CustomerNotFoundErr)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, params ListCustomersParams) ([]model.Customer, error) {
	customers, err := s.ListAllCustomers(ctx)
	if err != nil {
		return nil, err
	}

	return search.Filter(customers, params.Query, func(c model.Customer) []string {
		return []string{c.Name, c.Phone, c.Email}
	}), nil
}

func (s *customerService) ListAllCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customerRepo.ListAllCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("customer repository list all customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, params UpdateCustomerParams) (model.Customer, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Customer{}, err
	}

	var customer model.Customer
	if err := s.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		customer, err = s.customerRepo.GetCustomer(ctx, id)
		if err != nil {
			return mapNotFound(err, apperr.CustomerNotFoundErr)
		}

		setIfNotNil(&customer.Name, params.Name)
		setIfNotNil(&customer.Email, params.Email)
		setIfNotNil(&customer.Phone, params.Phone)
		setIfNotNil(&customer.Address, params.Address)
		setIfNotNil(&customer.City, params.City)
		setIfNotNil(&customer.PostalCode, params.PostalCode)
		setIfNotNil(&customer.Location, params.Location)
		setIfNotNil(&customer.Status, params.Status)
		setIfNotNil(&customer.Birthday, params.Birthday)
		setIfNotNil(&customer.PreferredContactMethod, params.PreferredContactMethod)
		setIfNotNil(&customer.ReferredBy, params.ReferredBy)
		setIfNotNil(&customer.Notes, params.Notes)
		setIfNotNil(&customer.LoyaltyPoints, params.LoyaltyPoints)
		setIfNotNil(&customer.IsBlocked, params.IsBlocked)
		customer.UpdatedAt = now()

		return s.customerRepo.UpdateCustomer(ctx, customer)
	}); err != nil {
		return model.Customer{}, fmt.Errorf("update customer %s: %w", id, err)
	}

	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.DeleteCustomer(ctx, id); err != nil {
		return mapNotFound(err, apperr.CustomerNotFoundErr)
	}
	return nil
}

func (s *customerService) GetCustomerSummary(ctx context.Context) (dashboard.CustomerStats, error) {
	customers, err := s.ListAllCustomers(ctx)
	if err != nil {
		return dashboard.CustomerStats{}, err
	}
	return dashboard.CustomerSummary(customers), nil
}

func (s *customerService) ApplyOrder(ctx context.Context, customerID string, total decimal.Decimal, orderedAt time.Time) error {
	return s.store.WithTx(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetCustomer(ctx, customerID)
		if err != nil {
			return mapNotFound(err, apperr.CustomerNotFoundErr)
		}

		customer.TotalOrders++
		customer.TotalSpent = customer.TotalSpent.Add(total)
		if customer.LastOrder == nil || orderedAt.After(*customer.LastOrder) {
			customer.LastOrder = &orderedAt
		}
		if customer.Status == "" || model.StatusIs(customer.Status, model.CustomerStatusNew) {
			customer.Status = model.CustomerStatusActive
		}
		customer.UpdatedAt = now()

		return s.customerRepo.UpdateCustomer(ctx, customer)
	})
}

func newCustomer(params CreateCustomerParams) (model.Customer, error) {
	id, err := newID()
	if err != nil {
		return model.Customer{}, err
	}

	ts := now()
	joinDate := params.JoinDate
	if joinDate == "" {
		joinDate = ts.Format(time.DateOnly)
	}
	status := params.Status
	if status == "" {
		status = model.CustomerStatusNew
	}

	return model.Customer{
		ID:                     id,
		Name:                   params.Name,
		Email:                  params.Email,
		Phone:                  params.Phone,
		Address:                params.Address,
		City:                   params.City,
		PostalCode:             params.PostalCode,
		Location:               params.Location,
		JoinDate:               joinDate,
		Status:                 status,
		TotalSpent:             decimal.Zero,
		Birthday:               params.Birthday,
		PreferredContactMethod: params.PreferredContactMethod,
		ReferredBy:             params.ReferredBy,
		Notes:                  params.Notes,
		LoyaltyPoints:          params.LoyaltyPoints,
		CreatedAt:              ts,
		UpdatedAt:              ts,
	}, nil
}

func setIfNotNil[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
