package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ojutalayomi/BankApp/internal/domain"
)

const pgAccountColumns = `account_number, account_name, account_type, balance,
	customer_id, transaction_ids, created_at, frozen`

type PostgresAccountRepository struct {
	db *sql.DB
}

func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pgAccountColumns+` FROM accounts ORDER BY account_number`)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("GetAll: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}
	return accounts, nil
}

func (r *PostgresAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pgAccountColumns+` FROM accounts WHERE account_number = $1`, number)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByNumber: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByNumber: %w", err)
	}
	return a, nil
}

func (r *PostgresAccountRepository) Exists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresAccountRepository) Add(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+pgAccountColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.Number, account.Name, int(account.Type), account.Balance,
		account.CustomerID, pq.Array(account.TransactionIDs), account.CreatedAt, account.Frozen,
	)
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET account_name = $2, account_type = $3, balance = $4, customer_id = $5,
		     transaction_ids = $6, frozen = $7
		 WHERE account_number = $1`,
		account.Number, account.Name, int(account.Type), account.Balance,
		account.CustomerID, pq.Array(account.TransactionIDs), account.Frozen,
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

func (r *PostgresAccountRepository) Delete(ctx context.Context, number string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE account_number = $1`, number)
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

func (r *PostgresAccountRepository) MaxAccountNumber(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(account_number::bigint), 0)
		 FROM accounts WHERE account_number ~ '^[0-9]+$'`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("MaxAccountNumber: %w", err)
	}
	return max, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	var accountType int
	var transactionIDs pq.StringArray
	err := row.Scan(
		&a.Number, &a.Name, &accountType, &a.Balance,
		&a.CustomerID, &transactionIDs, &a.CreatedAt, &a.Frozen,
	)
	if err != nil {
		return nil, err
	}
	a.Type = domain.AccountType(accountType)
	a.TransactionIDs = transactionIDs
	return &a, nil
}
