package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/repository"
	"github.com/ojutalayomi/BankApp/internal/service"
	"github.com/ojutalayomi/BankApp/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ledgerFixture struct {
	svc          *service.LedgerService
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	s, err := store.Open(t.TempDir(), store.Options{})
	require.NoError(t, err)

	accounts := repository.NewAccountRepository(s)
	transactions := repository.NewTransactionRepository(s)
	return &ledgerFixture{
		svc:          service.NewLedgerService(accounts, transactions),
		accounts:     accounts,
		transactions: transactions,
	}
}

func (f *ledgerFixture) seedAccount(t *testing.T, number, balance string) {
	t.Helper()
	acct := domain.NewAccount(number, "Holder "+number, domain.AccountTypeCurrent, "")
	acct.Balance = dec(balance)
	require.NoError(t, f.accounts.Add(context.Background(), acct))
}

func mutation(amount string) service.MutationRequest {
	return service.MutationRequest{
		Amount:    dec(amount),
		Initiator: "owner",
		Channel:   "branch",
	}
}

func TestLedgerDeposit(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.seedAccount(t, "1000001", "200.00")

	txn, err := f.svc.Deposit(ctx, "1000001", mutation("50.00"))
	require.NoError(t, err)

	// Both persistence calls happened: the rewritten account and the log entry.
	acct, err := f.accounts.GetByNumber(ctx, "1000001")
	require.NoError(t, err)
	assert.True(t, acct.Balance.Equal(dec("250.00")))
	assert.Equal(t, []string{txn.ID}, acct.TransactionIDs)

	logged, err := f.transactions.GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeDeposit, logged.Type)
	assert.True(t, logged.BalanceAfter.Equal(dec("250.00")))
}

func TestLedgerDeposit_AccountNotFound(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.svc.Deposit(context.Background(), "9999999", mutation("50.00"))
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLedgerWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.seedAccount(t, "1000001", "200.00")

	txn, err := f.svc.Withdraw(ctx, "1000001", mutation("75.50"))
	require.NoError(t, err)

	acct, err := f.accounts.GetByNumber(ctx, "1000001")
	require.NoError(t, err)
	assert.True(t, acct.Balance.Equal(dec("124.50")))
	assert.Equal(t, []string{txn.ID}, acct.TransactionIDs)
}

func TestLedgerWithdraw_InsufficientFundsPersistsNothing(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.seedAccount(t, "1000001", "200.00")

	_, err := f.svc.Withdraw(ctx, "1000001", mutation("200.01"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	acct, err := f.accounts.GetByNumber(ctx, "1000001")
	require.NoError(t, err)
	assert.True(t, acct.Balance.Equal(dec("200.00")))
	assert.Empty(t, acct.TransactionIDs)

	txns, err := f.transactions.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestLedgerTransfer(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.seedAccount(t, "1000001", "200.00")
	f.seedAccount(t, "1000002", "100.00")

	debit, credit, err := f.svc.Transfer(ctx, "1000001", "1000002", mutation("75.00"))
	require.NoError(t, err)

	source, err := f.accounts.GetByNumber(ctx, "1000001")
	require.NoError(t, err)
	dest, err := f.accounts.GetByNumber(ctx, "1000002")
	require.NoError(t, err)

	assert.True(t, source.Balance.Equal(dec("125.00")))
	assert.True(t, dest.Balance.Equal(dec("175.00")))
	assert.Equal(t, []string{debit.ID}, source.TransactionIDs)
	assert.Equal(t, []string{credit.ID}, dest.TransactionIDs)

	// Both legs hit the log together, sharing one reference number.
	txns, err := f.transactions.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, txns[0].ReferenceNumber, txns[1].ReferenceNumber)
	assert.NotEqual(t, txns[0].ID, txns[1].ID)

	// Conservation across the persisted ledger.
	assert.True(t, source.Balance.Add(dest.Balance).Equal(dec("300.00")))
}

func TestLedgerTransfer_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		source  string
		dest    string
		amount  string
		freeze  []string
		wantErr error
	}{
		{name: "missing source", source: "9999999", dest: "1000002", amount: "10", wantErr: domain.ErrAccountNotFound},
		{name: "missing destination", source: "1000001", dest: "9999999", amount: "10", wantErr: domain.ErrAccountNotFound},
		{name: "frozen source", source: "1000001", dest: "1000002", amount: "10", freeze: []string{"1000001"}, wantErr: domain.ErrAccountFrozen},
		{name: "frozen destination", source: "1000001", dest: "1000002", amount: "10", freeze: []string{"1000002"}, wantErr: domain.ErrAccountFrozen},
		{name: "self transfer", source: "1000001", dest: "1000001", amount: "10", wantErr: domain.ErrSelfTransfer},
		{name: "invalid amount", source: "1000001", dest: "1000002", amount: "-1", wantErr: domain.ErrInvalidAmount},
		{name: "insufficient funds", source: "1000001", dest: "1000002", amount: "500", wantErr: domain.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)
			f.seedAccount(t, "1000001", "200.00")
			f.seedAccount(t, "1000002", "100.00")
			for _, n := range tt.freeze {
				require.NoError(t, f.svc.Freeze(ctx, n))
			}

			_, _, err := f.svc.Transfer(ctx, tt.source, tt.dest, mutation(tt.amount))
			require.ErrorIs(t, err, tt.wantErr)

			// Nothing may have been persisted.
			source, err := f.accounts.GetByNumber(ctx, "1000001")
			require.NoError(t, err)
			dest, err := f.accounts.GetByNumber(ctx, "1000002")
			require.NoError(t, err)
			assert.True(t, source.Balance.Equal(dec("200.00")))
			assert.True(t, dest.Balance.Equal(dec("100.00")))
			assert.Empty(t, source.TransactionIDs)
			assert.Empty(t, dest.TransactionIDs)

			txns, err := f.transactions.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, txns)
		})
	}
}

func TestLedgerFreezeUnfreeze(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.seedAccount(t, "1000001", "200.00")

	require.NoError(t, f.svc.Freeze(ctx, "1000001"))
	_, err := f.svc.Deposit(ctx, "1000001", mutation("1"))
	require.ErrorIs(t, err, domain.ErrAccountFrozen)

	require.NoError(t, f.svc.Unfreeze(ctx, "1000001"))
	_, err = f.svc.Deposit(ctx, "1000001", mutation("1"))
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Freeze(ctx, "9999999"), domain.ErrAccountNotFound)
}

func TestLedgerSetTransactionStatus(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.seedAccount(t, "1000001", "200.00")

	txn, err := f.svc.Deposit(ctx, "1000001", mutation("10"))
	require.NoError(t, err)

	require.NoError(t, f.svc.SetTransactionStatus(ctx, txn.ID, domain.TransactionStatusCancelled))
	got, err := f.transactions.GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCancelled, got.Status)

	require.ErrorIs(t, f.svc.SetTransactionStatus(ctx, "missing", domain.TransactionStatusFailed), domain.ErrTransactionNotFound)
	require.ErrorIs(t, f.svc.SetTransactionStatus(ctx, txn.ID, domain.TransactionStatus(9)), domain.ErrInvalidStatus)
}

func TestLedgerTransactions(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.seedAccount(t, "1000001", "200.00")
	f.seedAccount(t, "1000002", "0")

	_, err := f.svc.Deposit(ctx, "1000001", mutation("10"))
	require.NoError(t, err)
	_, _, err = f.svc.Transfer(ctx, "1000001", "1000002", mutation("20"))
	require.NoError(t, err)

	history, err := f.svc.Transactions(ctx, "1000002")
	require.NoError(t, err)
	// The destination sees both transfer legs, not the unrelated deposit.
	assert.Len(t, history, 2)
}
