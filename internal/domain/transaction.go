package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persisted amounts are bare JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionType int

const (
	TransactionTypeWithdraw TransactionType = iota
	TransactionTypeDeposit
	TransactionTypeTransfer
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeWithdraw:
		return "withdraw"
	case TransactionTypeDeposit:
		return "deposit"
	case TransactionTypeTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("TransactionType(%d)", int(t))
	}
}

type TransactionStatus int

const (
	TransactionStatusPending TransactionStatus = iota
	TransactionStatusCompleted
	TransactionStatusFailed
	TransactionStatusCancelled
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionStatusPending:
		return "pending"
	case TransactionStatusCompleted:
		return "completed"
	case TransactionStatusFailed:
		return "failed"
	case TransactionStatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("TransactionStatus(%d)", int(s))
	}
}

func (s TransactionStatus) IsValid() bool {
	return s >= TransactionStatusPending && s <= TransactionStatusCancelled
}

// Transaction is immutable after creation except for Status. A transfer
// produces two of these (debit leg and credit leg) sharing one
// ReferenceNumber; deposits and withdrawals leave exactly one of
// SourceAccount/DestinationAccount empty.
type Transaction struct {
	ID                 string            `json:"id"`
	Type               TransactionType   `json:"transactionType"`
	Amount             decimal.Decimal   `json:"amount"`
	SourceAccount      string            `json:"sourceAccount"`
	DestinationAccount string            `json:"destinationAccount"`
	Status             TransactionStatus `json:"status"`
	CreatedAt          time.Time         `json:"dateCreated"`
	Description        string            `json:"description"`
	BalanceAfter       decimal.Decimal   `json:"balanceAfterTransaction"`
	Initiator          string            `json:"initiator"`
	Channel            string            `json:"channel"`
	ReferenceNumber    string            `json:"referenceNumber"`
}

// Mutations only ever record transactions that already happened, so records
// are born Completed; Pending is never observed on these paths.
func newTransaction(txnType TransactionType, amount decimal.Decimal, source, destination string, balanceAfter decimal.Decimal, initiator, channel, description, reference string, createdAt time.Time) *Transaction {
	return &Transaction{
		ID:                 uuid.NewString(),
		Type:               txnType,
		Amount:             amount,
		SourceAccount:      source,
		DestinationAccount: destination,
		Status:             TransactionStatusCompleted,
		CreatedAt:          createdAt,
		Description:        description,
		BalanceAfter:       balanceAfter,
		Initiator:          initiator,
		Channel:            channel,
		ReferenceNumber:    reference,
	}
}

func newReferenceNumber() string {
	return uuid.NewString()
}
