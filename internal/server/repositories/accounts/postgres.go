// Package accounts provides the PostgreSQL-backed account store.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/dbx"
	"github.com/dmitrijs2005/workshops/internal/server/models"
)

// UserNameConstraint is the unique constraint guarding accounts.username.
const UserNameConstraint = "accounts_username_key"

// PostgresRepository works over dbx.DBTX so it can run inside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts account and fills in CreatedAt. A username collision is
// reported as common.ErrDuplicateUsername.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, username, email, password_hash, first_name, last_name, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.UserName, account.Email, account.PasswordHash,
		account.FirstName, account.LastName, account.IsActive).Scan(&account.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, UserNameConstraint) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetByUserName looks the account up by exact username.
func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, first_name, last_name, is_active, created_at
		 FROM accounts
		 WHERE username = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, userName))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, first_name, last_name, is_active, created_at
		 FROM accounts
		 WHERE id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// EmailExists reports whether any account uses email, ignoring case.
func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE lower(email) = lower($1))
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) UpdateNames(ctx context.Context, id, firstName, lastName string) error {
	query :=
		`UPDATE accounts SET first_name = $2, last_name = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, firstName, lastName)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.UserName, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.IsActive, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
