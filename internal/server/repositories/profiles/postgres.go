// Package profiles provides the PostgreSQL-backed profile store.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/dbx"
	"github.com/dmitrijs2005/workshops/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts profile with its activation key and expiry. CreatedAt is
// written as given so that the expiry stays relative to it; a zero CreatedAt
// falls back to the column default.
func (r *PostgresRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (id, account_id, institute, department, position, phone_number, activation_key, key_expiry_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))
		 RETURNING created_at
		 `

	var createdAt sql.NullTime
	if !profile.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: profile.CreatedAt, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		profile.ID, profile.AccountID, profile.Institute, profile.Department, string(profile.Position),
		profile.PhoneNumber, profile.ActivationKey, profile.KeyExpiryTime, createdAt).Scan(&profile.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *PostgresRepository) GetByAccountID(ctx context.Context, accountID string) (*models.Profile, error) {
	query :=
		`SELECT id, account_id, institute, department, position, phone_number, activation_key, key_expiry_time, created_at
		 FROM profiles
		 WHERE account_id = $1
		 `

	p := &models.Profile{}
	var position string
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&p.ID, &p.AccountID, &p.Institute, &p.Department,
		&position, &p.PhoneNumber, &p.ActivationKey, &p.KeyExpiryTime, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Position = models.Position(position)

	return p, nil
}

// UpdateDetails changes the editable profile fields of the account's profile.
func (r *PostgresRepository) UpdateDetails(ctx context.Context, accountID, institute, department string) error {
	query :=
		`UPDATE profiles SET institute = $2, department = $3
		 WHERE account_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, accountID, institute, department)
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
