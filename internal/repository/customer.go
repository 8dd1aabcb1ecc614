package repository

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer model.Customer) error
	GetCustomer(ctx context.Context, id string) (model.Customer, error)
	ListAllCustomers(ctx context.Context) ([]model.Customer, error)
	// UpdateCustomer overwrites every mutable field of the stored customer.
	UpdateCustomer(ctx context.Context, customer model.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

type customerRepository struct {
	coll docstore.Collection
}

func NewCustomerRepository(store docstore.Store) CustomerRepository {
	return &customerRepository{coll: store.Collection(model.CollectionCustomers)}
}

func (r customerRepository) CreateCustomer(ctx context.Context, customer model.Customer) error {
	if err := r.coll.Insert(ctx, customer.ID, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r customerRepository) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	var customer model.Customer
	if err := r.coll.Get(ctx, id, &customer); err != nil {
		return model.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (r customerRepository) ListAllCustomers(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	if err := r.coll.Find(ctx, docstore.Query{}, &customers); err != nil {
		return nil, fmt.Errorf("list all customers: %w", err)
	}
	return customers, nil
}

func (r customerRepository) UpdateCustomer(ctx context.Context, c model.Customer) error {
	if err := r.coll.Patch(ctx, c.ID, map[string]any{
		"name":                   c.Name,
		"email":                  c.Email,
		"phone":                  c.Phone,
		"address":                c.Address,
		"city":                   c.City,
		"postalCode":             c.PostalCode,
		"location":               c.Location,
		"joinDate":               c.JoinDate,
		"status":                 c.Status,
		"totalSpent":             c.TotalSpent,
		"totalOrders":            c.TotalOrders,
		"lastOrder":              c.LastOrder,
		"birthday":               c.Birthday,
		"preferredContactMethod": c.PreferredContactMethod,
		"referredBy":             c.ReferredBy,
		"notes":                  c.Notes,
		"loyaltyPoints":          c.LoyaltyPoints,
		"isBlocked":              c.IsBlocked,
		"updatedAt":              c.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r customerRepository) DeleteCustomer(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
