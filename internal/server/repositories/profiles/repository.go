package profiles

import (
	"context"

	"github.com/dmitrijs2005/workshops/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByAccountID(ctx context.Context, accountID string) (*models.Profile, error)
	UpdateDetails(ctx context.Context, accountID, institute, department string) error
}
