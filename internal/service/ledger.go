package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/logging"
)

type accountRepo interface {
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	Add(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, number string) error
}

type transactionRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByAccountNumber(ctx context.Context, number string) ([]domain.Transaction, error)
	Add(ctx context.Context, txn *domain.Transaction) error
	AddAll(ctx context.Context, records []domain.Transaction) error
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error
}

// MutationRequest carries the caller-supplied context of a balance mutation.
type MutationRequest struct {
	Amount      decimal.Decimal
	Initiator   string
	Channel     string
	Description string
}

// LedgerService runs the read-mutate-write cycle for every balance mutation:
// load the account(s), let the entity mutate and emit transaction records,
// then persist the account(s) and the transaction log as separate writes.
// The entity is the only validator of frozen/amount/funds preconditions.
type LedgerService struct {
	accounts     accountRepo
	transactions transactionRepo
}

func NewLedgerService(accounts accountRepo, transactions transactionRepo) *LedgerService {
	return &LedgerService{accounts: accounts, transactions: transactions}
}

func (s *LedgerService) Deposit(ctx context.Context, accountNumber string, req MutationRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	acct, err := s.loadAccount(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	txn, err := acct.Deposit(req.Amount, req.Initiator, req.Channel, req.Description)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, fmt.Errorf("Deposit: persist account: %w", err)
	}
	// Second, independent write. A failure here leaves the account holding a
	// transaction id the log does not know about.
	if err := s.transactions.Add(ctx, txn); err != nil {
		return nil, fmt.Errorf("Deposit: persist transaction: %w", err)
	}

	log.Info("deposit completed",
		"account", acct.Number,
		"amount", req.Amount,
		"balance", acct.Balance,
		"transaction_id", txn.ID,
	)
	return txn, nil
}

func (s *LedgerService) Withdraw(ctx context.Context, accountNumber string, req MutationRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	acct, err := s.loadAccount(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	txn, err := acct.Withdraw(req.Amount, req.Initiator, req.Channel, req.Description)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, fmt.Errorf("Withdraw: persist account: %w", err)
	}
	if err := s.transactions.Add(ctx, txn); err != nil {
		return nil, fmt.Errorf("Withdraw: persist transaction: %w", err)
	}

	log.Info("withdrawal completed",
		"account", acct.Number,
		"amount", req.Amount,
		"balance", acct.Balance,
		"transaction_id", txn.ID,
	)
	return txn, nil
}

// Transfer moves funds between two accounts. The in-memory debit and credit
// happen in one step inside the entity; persistence is four separate writes
// (source account, destination account, then both transaction legs) with no
// commit boundary across them. A crash between the account writes leaves the
// persisted ledger with money debited from the source but not yet credited to
// the destination.
func (s *LedgerService) Transfer(ctx context.Context, sourceNumber, destNumber string, req MutationRequest) (debit, credit *domain.Transaction, err error) {
	log := logging.FromContext(ctx)

	source, err := s.loadAccount(ctx, sourceNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("Transfer: source: %w", err)
	}
	dest, err := s.loadAccount(ctx, destNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("Transfer: destination: %w", err)
	}

	debit, credit, err = source.TransferTo(dest, req.Amount, req.Initiator, req.Channel, req.Description)
	if err != nil {
		return nil, nil, fmt.Errorf("Transfer: %w", err)
	}

	if err := s.accounts.Update(ctx, source); err != nil {
		return nil, nil, fmt.Errorf("Transfer: persist source: %w", err)
	}
	if err := s.accounts.Update(ctx, dest); err != nil {
		return nil, nil, fmt.Errorf("Transfer: persist destination: %w", err)
	}
	if err := s.transactions.AddAll(ctx, []domain.Transaction{*debit, *credit}); err != nil {
		return nil, nil, fmt.Errorf("Transfer: persist legs: %w", err)
	}

	log.Info("transfer completed",
		"source", source.Number,
		"destination", dest.Number,
		"amount", req.Amount,
		"reference", debit.ReferenceNumber,
	)
	return debit, credit, nil
}

func (s *LedgerService) Freeze(ctx context.Context, accountNumber string) error {
	acct, err := s.loadAccount(ctx, accountNumber)
	if err != nil {
		return fmt.Errorf("Freeze: %w", err)
	}
	acct.Freeze()
	if err := s.accounts.Update(ctx, acct); err != nil {
		return fmt.Errorf("Freeze: %w", err)
	}
	logging.FromContext(ctx).Info("account frozen", "account", acct.Number)
	return nil
}

func (s *LedgerService) Unfreeze(ctx context.Context, accountNumber string) error {
	acct, err := s.loadAccount(ctx, accountNumber)
	if err != nil {
		return fmt.Errorf("Unfreeze: %w", err)
	}
	acct.Unfreeze()
	if err := s.accounts.Update(ctx, acct); err != nil {
		return fmt.Errorf("Unfreeze: %w", err)
	}
	logging.FromContext(ctx).Info("account unfrozen", "account", acct.Number)
	return nil
}

// SetTransactionStatus sets any status on any transaction. There is no legal
// transition table; callers own the semantics of the change.
func (s *LedgerService) SetTransactionStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("SetTransactionStatus: %w", domain.ErrInvalidStatus)
	}
	if err := s.transactions.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("SetTransactionStatus: %w", domain.ErrTransactionNotFound)
		}
		return fmt.Errorf("SetTransactionStatus: %w", err)
	}
	return nil
}

func (s *LedgerService) Account(ctx context.Context, accountNumber string) (*domain.Account, error) {
	acct, err := s.loadAccount(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("Account: %w", err)
	}
	return acct, nil
}

func (s *LedgerService) Transactions(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	txns, err := s.transactions.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("Transactions: %w", err)
	}
	return txns, nil
}

func (s *LedgerService) loadAccount(ctx context.Context, number string) (*domain.Account, error) {
	acct, err := s.accounts.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", number, domain.ErrAccountNotFound)
		}
		return nil, err
	}
	return acct, nil
}
