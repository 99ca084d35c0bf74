// Package services contains the server-side business logic: registration,
// login, profile editing and the workshop editors.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/dbx"
	"github.com/dmitrijs2005/workshops/internal/logging"
	"github.com/dmitrijs2005/workshops/internal/server/activation"
	"github.com/dmitrijs2005/workshops/internal/server/auth"
	"github.com/dmitrijs2005/workshops/internal/server/config"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/notify"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/workshops/internal/server/validation"
	"github.com/google/uuid"
)

// RegistrationForm is the raw sign-up submission.
type RegistrationForm struct {
	UserName        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	Institute       string `json:"institute"`
	Department      string `json:"department"`
	Position        string `json:"position"`
}

// rules lists the field checks in the order they are reported. Character
// set checks come before length limits.
func (f *RegistrationForm) rules() []validation.Rule {
	return []validation.Rule{
		{Field: "username", Value: f.UserName, Checks: []validation.Check{validation.Required, validation.Username, validation.MaxLength(validation.MaxUsernameLength)}},
		{Field: "email", Value: f.Email, Checks: []validation.Check{validation.Required, validation.Email}},
		{Field: "password", Value: f.Password, Checks: []validation.Check{validation.Required, validation.Password, validation.MaxLength(validation.MaxPasswordLength)}},
		{Field: "confirm_password", Value: f.ConfirmPassword, Checks: []validation.Check{validation.Required, validation.MaxLength(validation.MaxPasswordLength), validation.Matches(f.Password)}},
		{Field: "first_name", Value: f.FirstName, Checks: []validation.Check{validation.Required, validation.MaxLength(validation.MaxNameLength)}},
		{Field: "last_name", Value: f.LastName, Checks: []validation.Check{validation.Required, validation.MaxLength(validation.MaxNameLength)}},
		{Field: "phone_number", Value: f.PhoneNumber, Checks: []validation.Check{validation.Required, validation.Phone}},
		{Field: "institute", Value: f.Institute, Checks: []validation.Check{validation.Required, validation.MaxLength(validation.MaxInstituteLength)}},
		{Field: "department", Value: f.Department, Checks: []validation.Check{validation.Required, validation.MaxLength(validation.MaxDepartmentLength)}},
		{Field: "position", Value: f.Position, Checks: []validation.Check{validation.Required, validation.Position}},
	}
}

// RegistrationResult is returned to the caller of a successful registration
// so that it can sign the new user in. UserName is the stored, lowercase form.
type RegistrationResult struct {
	AccountID     string
	UserName      string
	Password      string
	ActivationKey string
	KeyExpiresAt  time.Time
}

type RegistrationService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	issuer             *activation.Issuer
	notifier           notify.Notifier
	log                logging.Logger
	bcryptCost         int
	enforceUniqueEmail bool
	now                func() time.Time
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, n notify.Notifier, log logging.Logger) *RegistrationService {
	return &RegistrationService{
		db:                 db,
		repomanager:        m,
		issuer:             &activation.Issuer{},
		notifier:           n,
		log:                log.With("module", "registration"),
		bcryptCost:         cfg.BcryptCost,
		enforceUniqueEmail: cfg.EnforceUniqueEmail,
		now:                time.Now,
	}
}

// Register validates the form, then creates the account and its profile in
// one transaction. The activation notice is sent after commit; a failure to
// send it does not undo the registration.
func (s *RegistrationService) Register(ctx context.Context, form RegistrationForm) (*RegistrationResult, error) {
	if err := validation.Run(form.rules()...); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, s.db, form); err != nil {
		return nil, err
	}

	userName := strings.ToLower(form.UserName)

	hash, err := auth.HashPassword(form.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		UserName:     userName,
		Email:        form.Email,
		PasswordHash: hash,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
	}

	// Profile creation time and key expiry share one instant, at the
	// microsecond resolution of timestamptz.
	issuedAt := s.now().Truncate(time.Microsecond)

	var token activation.Token
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkUnique(ctx, tx, form); err != nil {
			return err
		}

		if _, err := s.repomanager.Accounts(tx).Create(ctx, account); err != nil {
			if errors.Is(err, common.ErrDuplicateUsername) {
				return &validation.FieldError{Field: "username", Err: err}
			}
			return fmt.Errorf("error creating account: %w", err)
		}

		var err error
		token, err = s.issuer.Issue(userName, issuedAt)
		if err != nil {
			return fmt.Errorf("error issuing activation key: %w", err)
		}

		profile := &models.Profile{
			ID:            uuid.NewString(),
			AccountID:     account.ID,
			Institute:     form.Institute,
			Department:    form.Department,
			Position:      models.Position(form.Position),
			PhoneNumber:   form.PhoneNumber,
			ActivationKey: token.Key,
			KeyExpiryTime: token.ExpiresAt,
			CreatedAt:     issuedAt,
		}
		if _, err := s.repomanager.Profiles(tx).Create(ctx, profile); err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account registered", "username", userName, "account_id", account.ID)
	s.sendNotice(ctx, account, token, issuedAt)

	return &RegistrationResult{
		AccountID:     account.ID,
		UserName:      userName,
		Password:      form.Password,
		ActivationKey: token.Key,
		KeyExpiresAt:  token.ExpiresAt,
	}, nil
}

// checkUnique rejects a username already on file, comparing lowercase forms,
// and optionally a duplicate email.
func (s *RegistrationService) checkUnique(ctx context.Context, db dbx.DBTX, form RegistrationForm) error {
	repo := s.repomanager.Accounts(db)

	_, err := repo.GetByUserName(ctx, strings.ToLower(form.UserName))
	switch {
	case err == nil:
		return &validation.FieldError{Field: "username", Err: common.ErrDuplicateUsername}
	case !errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("error checking username: %w", err)
	}

	if !s.enforceUniqueEmail {
		return nil
	}
	exists, err := repo.EmailExists(ctx, form.Email)
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return &validation.FieldError{Field: "email", Err: common.ErrDuplicateEmail}
	}
	return nil
}

func (s *RegistrationService) sendNotice(ctx context.Context, account *models.Account, token activation.Token, issuedAt time.Time) {
	if s.notifier == nil {
		return
	}
	n := notify.NewActivationNotice(account.ID, account.UserName, account.Email, token.Key, token.ExpiresAt, issuedAt)
	if err := s.notifier.NotifyActivation(ctx, n); err != nil {
		s.log.Error(ctx, "activation notice failed", "username", account.UserName, "error", err)
	}
}
