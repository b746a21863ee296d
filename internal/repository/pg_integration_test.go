package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojutalayomi/BankApp/internal/domain"
	"github.com/ojutalayomi/BankApp/internal/repository"
	"github.com/ojutalayomi/BankApp/internal/service"
	"github.com/ojutalayomi/BankApp/internal/testutil"
)

func TestPostgresAccountRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewPostgresAccountRepository(db)

	acct := domain.NewAccount("1000050", "Ada Obi", domain.AccountTypeSaving, "cust-1")
	acct.Balance = decimal.RequireFromString("200.00")
	require.NoError(t, repo.Add(ctx, acct))

	got, err := repo.GetByNumber(ctx, "1000050")
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", got.Name)
	assert.Equal(t, domain.AccountTypeSaving, got.Type)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("200.00")))
	assert.Empty(t, got.TransactionIDs)

	got.Balance = decimal.RequireFromString("125.00")
	got.TransactionIDs = append(got.TransactionIDs, "txn-1")
	got.Frozen = true
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByNumber(ctx, "1000050")
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("125.00")))
	assert.Equal(t, []string{"txn-1"}, updated.TransactionIDs)
	assert.True(t, updated.Frozen)

	max, err := repo.MaxAccountNumber(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1000050, max)

	exists, err := repo.Exists(ctx, "1000050")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "1000050"))
	_, err = repo.GetByNumber(ctx, "1000050")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresTransactionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewPostgresTransactionRepository(db)

	now := time.Now().UTC().Truncate(time.Microsecond)
	ref := uuid.NewString()
	legs := []domain.Transaction{
		{
			ID:                 uuid.NewString(),
			Type:               domain.TransactionTypeTransfer,
			Amount:             decimal.RequireFromString("75.00"),
			SourceAccount:      "1000001",
			DestinationAccount: "1000002",
			Status:             domain.TransactionStatusCompleted,
			CreatedAt:          now,
			BalanceAfter:       decimal.RequireFromString("125.00"),
			ReferenceNumber:    ref,
		},
		{
			ID:                 uuid.NewString(),
			Type:               domain.TransactionTypeTransfer,
			Amount:             decimal.RequireFromString("75.00"),
			SourceAccount:      "1000001",
			DestinationAccount: "1000002",
			Status:             domain.TransactionStatusCompleted,
			CreatedAt:          now,
			BalanceAfter:       decimal.RequireFromString("175.00"),
			ReferenceNumber:    ref,
		},
	}
	require.NoError(t, repo.AddAll(ctx, legs))

	bySource, err := repo.GetByAccountNumber(ctx, "1000001")
	require.NoError(t, err)
	require.Len(t, bySource, 2)
	assert.Equal(t, ref, bySource[0].ReferenceNumber)
	assert.Equal(t, ref, bySource[1].ReferenceNumber)

	byDest, err := repo.GetByAccountNumber(ctx, "1000002")
	require.NoError(t, err)
	assert.Len(t, byDest, 2)

	require.NoError(t, repo.UpdateStatus(ctx, legs[0].ID, domain.TransactionStatusCancelled))
	got, err := repo.GetByID(ctx, legs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCancelled, got.Status)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerServiceOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	accounts := repository.NewPostgresAccountRepository(db)
	transactions := repository.NewPostgresTransactionRepository(db)
	svc := service.NewLedgerService(accounts, transactions)

	a := domain.NewAccount("1000001", "A", domain.AccountTypeCurrent, "")
	a.Balance = decimal.RequireFromString("200.00")
	b := domain.NewAccount("1000002", "B", domain.AccountTypeCurrent, "")
	b.Balance = decimal.RequireFromString("100.00")
	require.NoError(t, accounts.Add(ctx, a))
	require.NoError(t, accounts.Add(ctx, b))

	debit, credit, err := svc.Transfer(ctx, "1000001", "1000002", service.MutationRequest{
		Amount:    decimal.RequireFromString("75.00"),
		Initiator: "owner",
		Channel:   "mobile",
	})
	require.NoError(t, err)
	assert.Equal(t, debit.ReferenceNumber, credit.ReferenceNumber)

	source, err := accounts.GetByNumber(ctx, "1000001")
	require.NoError(t, err)
	dest, err := accounts.GetByNumber(ctx, "1000002")
	require.NoError(t, err)
	assert.True(t, source.Balance.Equal(decimal.RequireFromString("125.00")))
	assert.True(t, dest.Balance.Equal(decimal.RequireFromString("175.00")))
	assert.Equal(t, []string{debit.ID}, source.TransactionIDs)
	assert.Equal(t, []string{credit.ID}, dest.TransactionIDs)
}
