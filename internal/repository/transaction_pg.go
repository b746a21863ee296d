package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ojutalayomi/BankApp/internal/domain"
)

const pgTransactionColumns = `id, transaction_type, amount, source_account,
	destination_account, status, created_at, description, balance_after,
	initiator, channel, reference_number`

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pgTransactionColumns+` FROM transactions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *PostgresTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pgTransactionColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return t, nil
}

func (r *PostgresTransactionRepository) GetByAccountNumber(ctx context.Context, number string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pgTransactionColumns+` FROM transactions
		 WHERE source_account = $1 OR destination_account = $1
		 ORDER BY created_at, id`, number)
	if err != nil {
		return nil, fmt.Errorf("GetByAccountNumber: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *PostgresTransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresTransactionRepository) Add(ctx context.Context, txn *domain.Transaction) error {
	if err := r.AddAll(ctx, []domain.Transaction{*txn}); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (r *PostgresTransactionRepository) AddAll(ctx context.Context, records []domain.Transaction) error {
	for i := range records {
		t := &records[i]
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO transactions (`+pgTransactionColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			t.ID, int(t.Type), t.Amount, t.SourceAccount,
			t.DestinationAccount, int(t.Status), t.CreatedAt, t.Description,
			t.BalanceAfter, t.Initiator, t.Channel, t.ReferenceNumber,
		)
		if err != nil {
			return fmt.Errorf("AddAll: %w", err)
		}
	}
	return nil
}

func (r *PostgresTransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET status = $2, description = $3
		 WHERE id = $1`,
		txn.ID, int(txn.Status), txn.Description,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresTransactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET status = $2 WHERE id = $1`, id, int(status))
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("UpdateStatus: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresTransactionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("collectTransactions: %w", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collectTransactions: %w", err)
	}
	return txns, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	var txnType, status int
	err := row.Scan(
		&t.ID, &txnType, &t.Amount, &t.SourceAccount,
		&t.DestinationAccount, &status, &t.CreatedAt, &t.Description,
		&t.BalanceAfter, &t.Initiator, &t.Channel, &t.ReferenceNumber,
	)
	if err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(txnType)
	t.Status = domain.TransactionStatus(status)
	return &t, nil
}
