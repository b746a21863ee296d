package repository

import (
	"context"
	"fmt"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/store"
)

const customersCollection = "customers"

type CustomerRepository struct {
	store *store.Store
}

func NewCustomerRepository(s *store.Store) *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	customers, err := store.Load[domain.Customer](r.store, customersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customers, err := store.Load[domain.Customer](r.store, customersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
}

func (r *CustomerRepository) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	customers, err := store.Load[domain.Customer](r.store, customersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	for i := range customers {
		if customers[i].Username == username {
			return &customers[i], nil
		}
	}
	return nil, fmt.Errorf("GetByUsername: %w", domain.ErrNotFound)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	customers, err := store.Load[domain.Customer](r.store, customersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	for i := range customers {
		if customers[i].Email == email {
			return &customers[i], nil
		}
	}
	return nil, fmt.Errorf("GetByEmail: %w", domain.ErrNotFound)
}

func (r *CustomerRepository) Add(ctx context.Context, customer *domain.Customer) error {
	customers, err := store.Load[domain.Customer](r.store, customersCollection)
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	customers = append(customers, *customer)
	if err := store.Save(r.store, customersCollection, customers); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	customers, err := store.Load[domain.Customer](r.store, customersCollection)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	for i := range customers {
		if customers[i].ID == customer.ID {
			customers[i] = *customer
			if err := store.Save(r.store, customersCollection, customers); err != nil {
				return fmt.Errorf("Update: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Update: %w", domain.ErrNotFound)
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	customers, err := store.Load[domain.Customer](r.store, customersCollection)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	for i := range customers {
		if customers[i].ID == id {
			customers = append(customers[:i], customers[i+1:]...)
			if err := store.Save(r.store, customersCollection, customers); err != nil {
				return fmt.Errorf("Delete: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Delete: %w", domain.ErrNotFound)
}
