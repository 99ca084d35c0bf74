// Package httpapi exposes the portal operations as a JSON API over chi.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/workshops/internal/logging"
	"github.com/dmitrijs2005/workshops/internal/server/auth"
	"github.com/dmitrijs2005/workshops/internal/server/forms"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/services"
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, form services.RegistrationForm) (*services.RegistrationResult, error)
}

// Sessions signs users in and resolves their access tokens.
type Sessions interface {
	Login(ctx context.Context, userName, password string) (*services.LoginResult, error)
	VerifyToken(token string) (*auth.Claims, error)
}

type ProfileEditor interface {
	Get(ctx context.Context, accountID string) (*models.Account, *models.Profile, error)
	Form(ctx context.Context, accountID string) (*forms.Form, error)
	Update(ctx context.Context, accountID string, values map[string]string) (*models.Account, *models.Profile, error)
}

type WorkshopEditor interface {
	ListTypes(ctx context.Context) ([]*models.WorkshopType, error)
	CreateWorkshopForm(ctx context.Context, accountID string) (*forms.Form, error)
	CreateWorkshop(ctx context.Context, accountID string, values map[string]string) (*models.Workshop, error)
	ListWorkshops(ctx context.Context, accountID string) ([]*models.Workshop, error)
	ProposeDateForm(ctx context.Context, accountID string) (*forms.Form, error)
	ProposeDate(ctx context.Context, accountID string, values map[string]string) (*models.ProposeWorkshopDate, error)
	ListProposals(ctx context.Context, accountID string) ([]*models.ProposeWorkshopDate, error)
}

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, h *Handler, allowedOrigins []string) *HTTPServer {
	return &HTTPServer{
		address: address,
		handler: NewRouter(h, allowedOrigins),
		logger:  l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
