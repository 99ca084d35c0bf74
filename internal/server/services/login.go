package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/logging"
	"github.com/dmitrijs2005/workshops/internal/server/auth"
	"github.com/dmitrijs2005/workshops/internal/server/config"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator verifies credentials. A nil account with a nil error means
// the credentials did not match.
type Authenticator interface {
	Authenticate(ctx context.Context, userName, password string) (*models.Account, error)
}

// PasswordAuthenticator checks credentials against stored bcrypt hashes.
type PasswordAuthenticator struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cost        int

	dummyOnce sync.Once
	dummyHash []byte
	dummyErr  error
}

func NewPasswordAuthenticator(db *sql.DB, m repomanager.RepositoryManager, cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{db: db, repomanager: m, cost: cost}
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, userName, password string) (*models.Account, error) {
	account, err := a.repomanager.Accounts(a.db).GetByUserName(ctx, strings.ToLower(userName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same bcrypt time as for a known user
			dummy, err := a.dummy()
			if err != nil {
				return nil, fmt.Errorf("error preparing dummy hash: %w", err)
			}
			auth.CheckPassword(dummy, password)
			return nil, nil
		}
		return nil, err
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, nil
	}
	return account, nil
}

// dummy hashes a random password once. A cost bcrypt rejects falls back to
// bcrypt.DefaultCost.
func (a *PasswordAuthenticator) dummy() ([]byte, error) {
	a.dummyOnce.Do(func() {
		pw, err := common.MakeRandHexString(16)
		if err != nil {
			pw = "dummy-password"
		}
		a.dummyHash, a.dummyErr = auth.HashPassword(pw, a.cost)
		if a.dummyErr != nil {
			a.dummyHash, a.dummyErr = auth.HashPassword(pw, bcrypt.DefaultCost)
		}
	})
	return a.dummyHash, a.dummyErr
}

// LoginResult is a signed-in account and its access token.
type LoginResult struct {
	Account     *models.Account
	AccessToken string
}

type AuthService struct {
	authenticator               Authenticator
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	log                         logging.Logger
}

func NewAuthService(a Authenticator, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		authenticator:               a,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		log:                         log.With("module", "auth"),
	}
}

// Login returns common.ErrAuthenticationFailed for every kind of credential
// failure, so callers cannot tell an unknown user from a wrong password.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	if userName == "" || password == "" {
		return nil, common.ErrAuthenticationFailed
	}

	account, err := s.authenticator.Authenticate(ctx, userName, password)
	if err != nil {
		s.log.Warn(ctx, "authenticator error", "error", err)
		return nil, common.ErrAuthenticationFailed
	}
	if account == nil {
		return nil, common.ErrAuthenticationFailed
	}

	token, err := auth.GenerateToken(account.ID, account.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{Account: account, AccessToken: token}, nil
}

// VerifyToken resolves an access token to its claims.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}
