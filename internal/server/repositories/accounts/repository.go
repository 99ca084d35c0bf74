package accounts

import (
	"context"

	"github.com/dmitrijs2005/workshops/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUserName(ctx context.Context, userName string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateNames(ctx context.Context, id, firstName, lastName string) error
}
