package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/server/forms"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// WorkshopService backs the instructor and coordinator editors. Only
// instructors create workshops and only coordinators propose dates.
type WorkshopService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWorkshopService(db *sql.DB, m repomanager.RepositoryManager) *WorkshopService {
	return &WorkshopService{db: db, repomanager: m}
}

func (s *WorkshopService) ListTypes(ctx context.Context) ([]*models.WorkshopType, error) {
	types, err := s.repomanager.Workshops(s.db).ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing workshop types: %w", err)
	}
	return types, nil
}

func (s *WorkshopService) CreateWorkshopForm(ctx context.Context, accountID string) (*forms.Form, error) {
	if err := s.requirePosition(ctx, accountID, models.PositionInstructor); err != nil {
		return nil, err
	}
	types, err := s.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	return forms.NewCreateWorkshopForm(types), nil
}

func (s *WorkshopService) CreateWorkshop(ctx context.Context, accountID string, values map[string]string) (*models.Workshop, error) {
	form, err := s.CreateWorkshopForm(ctx, accountID)
	if err != nil {
		return nil, err
	}
	cleaned, err := form.Bind(values)
	if err != nil {
		return nil, err
	}

	w := &models.Workshop{
		ID:             uuid.NewString(),
		InstructorID:   accountID,
		WorkshopTypeID: cleaned[forms.FieldWorkshopTitle],
		Recurrences:    cleaned[forms.FieldRecurrences],
	}
	if _, err := s.repomanager.Workshops(s.db).CreateWorkshop(ctx, w); err != nil {
		return nil, fmt.Errorf("error creating workshop: %w", err)
	}
	return w, nil
}

func (s *WorkshopService) ListWorkshops(ctx context.Context, accountID string) ([]*models.Workshop, error) {
	if err := s.requirePosition(ctx, accountID, models.PositionInstructor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Workshops(s.db).ListWorkshopsByInstructor(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing workshops: %w", err)
	}
	return list, nil
}

func (s *WorkshopService) ProposeDateForm(ctx context.Context, accountID string) (*forms.Form, error) {
	if err := s.requirePosition(ctx, accountID, models.PositionCoordinator); err != nil {
		return nil, err
	}
	types, err := s.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	return forms.NewProposeWorkshopDateForm(types), nil
}

func (s *WorkshopService) ProposeDate(ctx context.Context, accountID string, values map[string]string) (*models.ProposeWorkshopDate, error) {
	form, err := s.ProposeDateForm(ctx, accountID)
	if err != nil {
		return nil, err
	}
	cleaned, err := form.Bind(values)
	if err != nil {
		return nil, err
	}

	// Bind already checked the layout
	date, _ := time.Parse(forms.DateLayout, cleaned[forms.FieldProposedWorkshopDate])

	p := &models.ProposeWorkshopDate{
		ID:                   uuid.NewString(),
		CoordinatorID:        accountID,
		ConditionOne:         true,
		ConditionTwo:         true,
		ConditionThree:       true,
		WorkshopTypeID:       cleaned[forms.FieldProposedWorkshopTitle],
		ProposedWorkshopDate: date,
		Status:               models.ProposalPending,
	}
	if _, err := s.repomanager.Workshops(s.db).CreateProposal(ctx, p); err != nil {
		return nil, fmt.Errorf("error creating proposal: %w", err)
	}
	return p, nil
}

func (s *WorkshopService) ListProposals(ctx context.Context, accountID string) ([]*models.ProposeWorkshopDate, error) {
	if err := s.requirePosition(ctx, accountID, models.PositionCoordinator); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Workshops(s.db).ListProposalsByCoordinator(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing proposals: %w", err)
	}
	return list, nil
}

func (s *WorkshopService) requirePosition(ctx context.Context, accountID string, want models.Position) error {
	profile, err := s.repomanager.Profiles(s.db).GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorForbidden
		}
		return fmt.Errorf("error loading profile: %w", err)
	}
	if profile.Position != want {
		return common.ErrorForbidden
	}
	return nil
}
