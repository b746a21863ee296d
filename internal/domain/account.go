package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType int

const (
	AccountTypeCurrent AccountType = iota
	AccountTypeSaving
	AccountTypeFixedDeposit
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeCurrent:
		return "current"
	case AccountTypeSaving:
		return "saving"
	case AccountTypeFixedDeposit:
		return "fixed_deposit"
	default:
		return fmt.Sprintf("AccountType(%d)", int(t))
	}
}

func (t AccountType) IsValid() bool {
	return t >= AccountTypeCurrent && t <= AccountTypeFixedDeposit
}

// Account owns balance mutation. Every successful mutation produces the
// Transaction record(s) describing it and appends their ids to TransactionIDs;
// persisting both is the caller's job.
type Account struct {
	Number         string          `json:"accountNumber"`
	Name           string          `json:"accountName"`
	Type           AccountType     `json:"accountType"`
	Balance        decimal.Decimal `json:"accountBalance"`
	CustomerID     string          `json:"customerId"`
	TransactionIDs []string        `json:"transactionIds"`
	CreatedAt      time.Time       `json:"dateCreated"`
	Frozen         bool            `json:"isFrozen"`
}

func NewAccount(number, name string, accountType AccountType, customerID string) *Account {
	return &Account{
		Number:     number,
		Name:       name,
		Type:       accountType,
		Balance:    decimal.Zero,
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
	}
}

// Deposit credits the account and records a completed transaction.
func (a *Account) Deposit(amount decimal.Decimal, initiator, channel, description string) (*Transaction, error) {
	if a.Frozen {
		return nil, fmt.Errorf("Deposit: account %s: %w", a.Number, ErrAccountFrozen)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("Deposit: %w", ErrInvalidAmount)
	}

	a.Balance = a.Balance.Add(amount)
	txn := newTransaction(TransactionTypeDeposit, amount, "", a.Number, a.Balance, initiator, channel, description, newReferenceNumber(), time.Now().UTC())
	a.TransactionIDs = append(a.TransactionIDs, txn.ID)
	return txn, nil
}

// Withdraw debits the account. Preconditions are checked frozen, amount,
// funds, in that order, all before the balance is touched.
func (a *Account) Withdraw(amount decimal.Decimal, initiator, channel, description string) (*Transaction, error) {
	if a.Frozen {
		return nil, fmt.Errorf("Withdraw: account %s: %w", a.Number, ErrAccountFrozen)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("Withdraw: %w", ErrInvalidAmount)
	}
	if a.Balance.LessThan(amount) {
		return nil, fmt.Errorf("Withdraw: %w", ErrInsufficientFunds)
	}

	a.Balance = a.Balance.Sub(amount)
	txn := newTransaction(TransactionTypeWithdraw, amount, a.Number, "", a.Balance, initiator, channel, description, newReferenceNumber(), time.Now().UTC())
	a.TransactionIDs = append(a.TransactionIDs, txn.ID)
	return txn, nil
}

// TransferTo debits the receiver and credits dest in one in-memory step; no
// caller ever observes a state where only one side has moved. The two legs
// share a reference number and timestamp but have distinct ids, one appended
// to each account's TransactionIDs.
func (a *Account) TransferTo(dest *Account, amount decimal.Decimal, initiator, channel, description string) (debit, credit *Transaction, err error) {
	if a.Frozen {
		return nil, nil, fmt.Errorf("TransferTo: source %s: %w", a.Number, ErrAccountFrozen)
	}
	if dest.Frozen {
		return nil, nil, fmt.Errorf("TransferTo: destination %s: %w", dest.Number, ErrAccountFrozen)
	}
	if a.Number == dest.Number {
		return nil, nil, fmt.Errorf("TransferTo: %w", ErrSelfTransfer)
	}
	if amount.Sign() <= 0 {
		return nil, nil, fmt.Errorf("TransferTo: %w", ErrInvalidAmount)
	}
	if a.Balance.LessThan(amount) {
		return nil, nil, fmt.Errorf("TransferTo: %w", ErrInsufficientFunds)
	}

	a.Balance = a.Balance.Sub(amount)
	dest.Balance = dest.Balance.Add(amount)

	ref := newReferenceNumber()
	now := time.Now().UTC()
	debit = newTransaction(TransactionTypeTransfer, amount, a.Number, dest.Number, a.Balance, initiator, channel, description, ref, now)
	credit = newTransaction(TransactionTypeTransfer, amount, a.Number, dest.Number, dest.Balance, initiator, channel, description, ref, now)

	a.TransactionIDs = append(a.TransactionIDs, debit.ID)
	dest.TransactionIDs = append(dest.TransactionIDs, credit.ID)
	return debit, credit, nil
}

// Freeze and Unfreeze are unconditional flips; they produce no audit record.
func (a *Account) Freeze()   { a.Frozen = true }
func (a *Account) Unfreeze() { a.Frozen = false }
