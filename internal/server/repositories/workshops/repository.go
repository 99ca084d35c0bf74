package workshops

import (
	"context"

	"github.com/dmitrijs2005/workshops/internal/server/models"
)

type Repository interface {
	ListTypes(ctx context.Context) ([]*models.WorkshopType, error)
	GetType(ctx context.Context, id string) (*models.WorkshopType, error)
	CreateWorkshop(ctx context.Context, w *models.Workshop) (*models.Workshop, error)
	ListWorkshopsByInstructor(ctx context.Context, instructorID string) ([]*models.Workshop, error)
	CreateProposal(ctx context.Context, p *models.ProposeWorkshopDate) (*models.ProposeWorkshopDate, error)
	ListProposalsByCoordinator(ctx context.Context, coordinatorID string) ([]*models.ProposeWorkshopDate, error)
}
