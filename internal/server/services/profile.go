package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/workshops/internal/dbx"
	"github.com/dmitrijs2005/workshops/internal/server/forms"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/repomanager"
)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

func (s *ProfileService) Get(ctx context.Context, accountID string) (*models.Account, *models.Profile, error) {
	return s.load(ctx, s.db, accountID)
}

// Form returns the profile editor seeded from the stored records.
func (s *ProfileService) Form(ctx context.Context, accountID string) (*forms.Form, error) {
	account, profile, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return forms.NewProfileForm(account, profile), nil
}

// Update binds values to the profile editor and stores names and profile
// details together.
func (s *ProfileService) Update(ctx context.Context, accountID string, values map[string]string) (*models.Account, *models.Profile, error) {
	form, err := s.Form(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	cleaned, err := form.Bind(values)
	if err != nil {
		return nil, nil, err
	}

	var account *models.Account
	var profile *models.Profile
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).UpdateNames(ctx, accountID,
			cleaned[forms.FieldFirstName], cleaned[forms.FieldLastName]); err != nil {
			return fmt.Errorf("error updating account: %w", err)
		}
		if err := s.repomanager.Profiles(tx).UpdateDetails(ctx, accountID,
			cleaned[forms.FieldInstitute], cleaned[forms.FieldDepartment]); err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}
		var err error
		account, profile, err = s.load(ctx, tx, accountID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return account, profile, nil
}

func (s *ProfileService) load(ctx context.Context, db dbx.DBTX, accountID string) (*models.Account, *models.Profile, error) {
	account, err := s.repomanager.Accounts(db).GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading account: %w", err)
	}
	profile, err := s.repomanager.Profiles(db).GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading profile: %w", err)
	}
	return account, profile, nil
}
