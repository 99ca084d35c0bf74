// Package workshops stores the workshop catalogue, instructors' workshops and
// coordinators' date proposals in PostgreSQL.
package workshops

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

func (r *PostgresRepository) ListTypes(ctx context.Context) ([]*models.WorkshopType, error) {
	query :=
		`SELECT id, name, description, duration_days FROM workshop_types
		 ORDER BY name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var types []*models.WorkshopType
	for rows.Next() {
		wt := &models.WorkshopType{}
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Description, &wt.DurationDays); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		types = append(types, wt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return types, nil
}

func (r *PostgresRepository) GetType(ctx context.Context, id string) (*models.WorkshopType, error) {
	query :=
		`SELECT id, name, description, duration_days FROM workshop_types
		 WHERE id = $1
		 `

	wt := &models.WorkshopType{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&wt.ID, &wt.Name, &wt.Description, &wt.DurationDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return wt, nil
}

func (r *PostgresRepository) CreateWorkshop(ctx context.Context, w *models.Workshop) (*models.Workshop, error) {
	query :=
		`INSERT INTO workshops (id, instructor_id, workshop_type_id, recurrences)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, w.ID, w.InstructorID, w.WorkshopTypeID, w.Recurrences).Scan(&w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return w, nil
}

func (r *PostgresRepository) ListWorkshopsByInstructor(ctx context.Context, instructorID string) ([]*models.Workshop, error) {
	query :=
		`SELECT id, instructor_id, workshop_type_id, recurrences, created_at FROM workshops
		 WHERE instructor_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Workshop
	for rows.Next() {
		w := &models.Workshop{}
		if err := rows.Scan(&w.ID, &w.InstructorID, &w.WorkshopTypeID, &w.Recurrences, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CreateProposal(ctx context.Context, p *models.ProposeWorkshopDate) (*models.ProposeWorkshopDate, error) {
	query :=
		`INSERT INTO proposed_workshop_dates (id, coordinator_id, condition_one, condition_two, condition_three,
		     workshop_type_id, proposed_workshop_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.ID, p.CoordinatorID, p.ConditionOne, p.ConditionTwo, p.ConditionThree,
		p.WorkshopTypeID, p.ProposedWorkshopDate, string(p.Status)).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListProposalsByCoordinator(ctx context.Context, coordinatorID string) ([]*models.ProposeWorkshopDate, error) {
	query :=
		`SELECT id, coordinator_id, condition_one, condition_two, condition_three,
		     workshop_type_id, proposed_workshop_date, status, created_at
		 FROM proposed_workshop_dates
		 WHERE coordinator_id = $1
		 ORDER BY proposed_workshop_date
		 `

	rows, err := r.db.QueryContext(ctx, query, coordinatorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ProposeWorkshopDate
	for rows.Next() {
		p := &models.ProposeWorkshopDate{}
		var status string
		if err := rows.Scan(&p.ID, &p.CoordinatorID, &p.ConditionOne, &p.ConditionTwo, &p.ConditionThree,
			&p.WorkshopTypeID, &p.ProposedWorkshopDate, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Status = models.ProposalStatus(status)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
