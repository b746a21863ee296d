package repository

import (
	"context"
	"fmt"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/store"
)

const managersCollection = "account_managers"

type AccountManagerRepository struct {
	store *store.Store
}

func NewAccountManagerRepository(s *store.Store) *AccountManagerRepository {
	return &AccountManagerRepository{store: s}
}

func (r *AccountManagerRepository) GetAll(ctx context.Context) ([]domain.AccountManager, error) {
	managers, err := store.Load[domain.AccountManager](r.store, managersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	return managers, nil
}

func (r *AccountManagerRepository) GetByID(ctx context.Context, id string) (*domain.AccountManager, error) {
	managers, err := store.Load[domain.AccountManager](r.store, managersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	for i := range managers {
		if managers[i].ID == id {
			return &managers[i], nil
		}
	}
	return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
}

func (r *AccountManagerRepository) GetByUsername(ctx context.Context, username string) (*domain.AccountManager, error) {
	managers, err := store.Load[domain.AccountManager](r.store, managersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	for i := range managers {
		if managers[i].Username == username {
			return &managers[i], nil
		}
	}
	return nil, fmt.Errorf("GetByUsername: %w", domain.ErrNotFound)
}

func (r *AccountManagerRepository) GetByEmail(ctx context.Context, email string) (*domain.AccountManager, error) {
	managers, err := store.Load[domain.AccountManager](r.store, managersCollection)
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	for i := range managers {
		if managers[i].Email == email {
			return &managers[i], nil
		}
	}
	return nil, fmt.Errorf("GetByEmail: %w", domain.ErrNotFound)
}

func (r *AccountManagerRepository) Add(ctx context.Context, manager *domain.AccountManager) error {
	managers, err := store.Load[domain.AccountManager](r.store, managersCollection)
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	managers = append(managers, *manager)
	if err := store.Save(r.store, managersCollection, managers); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (r *AccountManagerRepository) Update(ctx context.Context, manager *domain.AccountManager) error {
	managers, err := store.Load[domain.AccountManager](r.store, managersCollection)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	for i := range managers {
		if managers[i].ID == manager.ID {
			managers[i] = *manager
			if err := store.Save(r.store, managersCollection, managers); err != nil {
				return fmt.Errorf("Update: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Update: %w", domain.ErrNotFound)
}

func (r *AccountManagerRepository) Delete(ctx context.Context, id string) error {
	managers, err := store.Load[domain.AccountManager](r.store, managersCollection)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	for i := range managers {
		if managers[i].ID == id {
			managers = append(managers[:i], managers[i+1:]...)
			if err := store.Save(r.store, managersCollection, managers); err != nil {
				return fmt.Errorf("Delete: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("Delete: %w", domain.ErrNotFound)
}
