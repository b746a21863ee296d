package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/logging"
)

type customerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
	Add(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
}

type managerRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.AccountManager, error)
	GetByEmail(ctx context.Context, email string) (*domain.AccountManager, error)
	Add(ctx context.Context, manager *domain.AccountManager) error
}

// DirectoryService owns the mapping of human identities to accounts:
// uniqueness checks at creation, account-number linkage, credential hashing.
type DirectoryService struct {
	customers customerRepo
	managers  managerRepo
	accounts  accountRepo
	seq       *NumberSequence
}

func NewDirectoryService(customers customerRepo, managers managerRepo, accounts accountRepo, seq *NumberSequence) *DirectoryService {
	return &DirectoryService{
		customers: customers,
		managers:  managers,
		accounts:  accounts,
		seq:       seq,
	}
}

type CreateCustomerRequest struct {
	Username    string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	Password    string
	AccountType domain.AccountType
}

// CreateCustomer registers a customer and opens their default account. The
// customer record and the account record are persisted as two independent
// writes, customer first; there is no rollback if the second write fails.
func (s *DirectoryService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, *domain.Account, error) {
	log := logging.FromContext(ctx)

	if err := s.checkCustomerUsername(ctx, req.Username); err != nil {
		return nil, nil, fmt.Errorf("CreateCustomer: %w", err)
	}
	if !req.AccountType.IsValid() {
		return nil, nil, fmt.Errorf("CreateCustomer: %w", domain.ErrInvalidAccountType)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("CreateCustomer: hash password: %w", err)
	}

	customer := &domain.Customer{
		ID:           uuid.NewString(),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	accountName := req.FirstName + " " + req.LastName
	account := domain.NewAccount(s.seq.Next(), accountName, req.AccountType, customer.ID)
	customer.LinkAccount(account.Number)

	if err := s.customers.Add(ctx, customer); err != nil {
		return nil, nil, fmt.Errorf("CreateCustomer: persist customer: %w", err)
	}
	if err := s.accounts.Add(ctx, account); err != nil {
		return nil, nil, fmt.Errorf("CreateCustomer: persist account: %w", err)
	}

	log.Info("customer created",
		"customer_id", customer.ID,
		"username", customer.Username,
		"account", account.Number,
	)
	return customer, account, nil
}

type CreateAccountManagerRequest struct {
	Username string
	Email    string
	FullName string
	Password string
}

// CreateAccountManager enforces username and email uniqueness, in that order,
// before anything is persisted.
func (s *DirectoryService) CreateAccountManager(ctx context.Context, req CreateAccountManagerRequest) (*domain.AccountManager, error) {
	_, err := s.managers.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("CreateAccountManager: %w", domain.ErrDuplicateUsername)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("CreateAccountManager: check username: %w", err)
	}

	_, err = s.managers.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("CreateAccountManager: %w", domain.ErrDuplicateEmail)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("CreateAccountManager: check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("CreateAccountManager: hash password: %w", err)
	}

	manager := &domain.AccountManager{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.managers.Add(ctx, manager); err != nil {
		return nil, fmt.Errorf("CreateAccountManager: %w", err)
	}

	logging.FromContext(ctx).Info("account manager created",
		"manager_id", manager.ID,
		"username", manager.Username,
	)
	return manager, nil
}

// OpenAccount opens an additional account for an existing customer and links
// its number into the customer record. Account write first, then the customer
// link; the two are not atomic.
func (s *DirectoryService) OpenAccount(ctx context.Context, customerID, accountName string, accountType domain.AccountType) (*domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("OpenAccount: %w", domain.ErrInvalidAccountType)
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("OpenAccount: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}

	account := domain.NewAccount(s.seq.Next(), accountName, accountType, customer.ID)
	customer.LinkAccount(account.Number)

	if err := s.accounts.Add(ctx, account); err != nil {
		return nil, fmt.Errorf("OpenAccount: persist account: %w", err)
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("OpenAccount: link account: %w", err)
	}

	logging.FromContext(ctx).Info("account opened",
		"customer_id", customer.ID,
		"account", account.Number,
		"type", accountType.String(),
	)
	return account, nil
}

// OpenStandaloneAccount opens an account owned by no customer.
func (s *DirectoryService) OpenStandaloneAccount(ctx context.Context, accountName string, accountType domain.AccountType) (*domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("OpenStandaloneAccount: %w", domain.ErrInvalidAccountType)
	}

	account := domain.NewAccount(s.seq.Next(), accountName, accountType, "")
	if err := s.accounts.Add(ctx, account); err != nil {
		return nil, fmt.Errorf("OpenStandaloneAccount: %w", err)
	}

	logging.FromContext(ctx).Info("standalone account opened", "account", account.Number)
	return account, nil
}

// DeleteAccount removes the account record. Nothing cascades: the account's
// transactions stay in the log and any customer link to the number survives.
func (s *DirectoryService) DeleteAccount(ctx context.Context, accountNumber string) error {
	if err := s.accounts.Delete(ctx, accountNumber); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("DeleteAccount: %w", domain.ErrAccountNotFound)
		}
		return fmt.Errorf("DeleteAccount: %w", err)
	}
	logging.FromContext(ctx).Info("account deleted", "account", accountNumber)
	return nil
}

func (s *DirectoryService) Customer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Customer: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("Customer: %w", err)
	}
	return customer, nil
}

// FileComplaint appends a complaint to the customer record.
func (s *DirectoryService) FileComplaint(ctx context.Context, customerID, complaint string) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("FileComplaint: %w", domain.ErrCustomerNotFound)
		}
		return fmt.Errorf("FileComplaint: %w", err)
	}
	customer.AddComplaint(complaint)
	if err := s.customers.Update(ctx, customer); err != nil {
		return fmt.Errorf("FileComplaint: %w", err)
	}
	return nil
}

func (s *DirectoryService) checkCustomerUsername(ctx context.Context, username string) error {
	_, err := s.customers.GetByUsername(ctx, username)
	if err == nil {
		return domain.ErrDuplicateUsername
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("checkCustomerUsername: %w", err)
	}
	return nil
}
