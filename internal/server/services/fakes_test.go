package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/dmitrijs2005/workshops/internal/dbx"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/notify"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/workshops"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// store is an in-memory stand-in for the three repositories.
type store struct {
	mu        sync.Mutex
	accounts  map[string]*models.Account // by username
	profiles  map[string]*models.Profile // by account id
	types     []*models.WorkshopType
	workshops []*models.Workshop
	proposals []*models.ProposeWorkshopDate

	getErr         error
	createErr      error
	profileErr     error
	emailExistsErr error
	updateErr      error
	listTypesErr   error

	// raceOnCreate simulates another registration winning between the
	// check and the insert.
	raceOnCreate bool
}

func newStore() *store {
	return &store{
		accounts: map[string]*models.Account{},
		profiles: map[string]*models.Profile{},
		types: []*models.WorkshopType{
			{ID: "t-1", Name: "Python Workshop", DurationDays: 2},
			{ID: "t-2", Name: "Scilab Workshop", DurationDays: 1},
		},
	}
}

func (s *store) addAccount(a *models.Account, p *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.UserName] = a
	if p != nil {
		p.AccountID = a.ID
		s.profiles[a.ID] = p
	}
}

type fakeAccounts struct{ s *store }

func (f *fakeAccounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.createErr != nil {
		return nil, f.s.createErr
	}
	if _, ok := f.s.accounts[a.UserName]; ok || f.s.raceOnCreate {
		return nil, common.ErrDuplicateUsername
	}
	a.CreatedAt = time.Now()
	f.s.accounts[a.UserName] = a
	return a, nil
}

func (f *fakeAccounts) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.getErr != nil {
		return nil, f.s.getErr
	}
	a, ok := f.s.accounts[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAccounts) GetByID(ctx context.Context, id string) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, a := range f.s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccounts) EmailExists(ctx context.Context, email string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.emailExistsErr != nil {
		return false, f.s.emailExistsErr
	}
	for _, a := range f.s.accounts {
		if strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccounts) UpdateNames(ctx context.Context, id, firstName, lastName string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.updateErr != nil {
		return f.s.updateErr
	}
	for _, a := range f.s.accounts {
		if a.ID == id {
			a.FirstName, a.LastName = firstName, lastName
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeProfiles struct{ s *store }

func (f *fakeProfiles) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.profileErr != nil {
		return nil, f.s.profileErr
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	f.s.profiles[p.AccountID] = p
	return p, nil
}

func (f *fakeProfiles) GetByAccountID(ctx context.Context, accountID string) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.profiles[accountID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfiles) UpdateDetails(ctx context.Context, accountID, institute, department string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.profiles[accountID]
	if !ok {
		return common.ErrorNotFound
	}
	p.Institute, p.Department = institute, department
	return nil
}

type fakeWorkshops struct{ s *store }

func (f *fakeWorkshops) ListTypes(ctx context.Context) ([]*models.WorkshopType, error) {
	if f.s.listTypesErr != nil {
		return nil, f.s.listTypesErr
	}
	return f.s.types, nil
}

func (f *fakeWorkshops) GetType(ctx context.Context, id string) (*models.WorkshopType, error) {
	for _, t := range f.s.types {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeWorkshops) CreateWorkshop(ctx context.Context, w *models.Workshop) (*models.Workshop, error) {
	f.s.workshops = append(f.s.workshops, w)
	return w, nil
}

func (f *fakeWorkshops) ListWorkshopsByInstructor(ctx context.Context, instructorID string) ([]*models.Workshop, error) {
	var out []*models.Workshop
	for _, w := range f.s.workshops {
		if w.InstructorID == instructorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkshops) CreateProposal(ctx context.Context, p *models.ProposeWorkshopDate) (*models.ProposeWorkshopDate, error) {
	f.s.proposals = append(f.s.proposals, p)
	return p, nil
}

func (f *fakeWorkshops) ListProposalsByCoordinator(ctx context.Context, coordinatorID string) ([]*models.ProposeWorkshopDate, error) {
	var out []*models.ProposeWorkshopDate
	for _, p := range f.s.proposals {
		if p.CoordinatorID == coordinatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeRepoManager struct{ s *store }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository    { return &fakeAccounts{m.s} }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository    { return &fakeProfiles{m.s} }
func (m *fakeRepoManager) Workshops(db dbx.DBTX) workshops.Repository  { return &fakeWorkshops{m.s} }

type recordingNotifier struct {
	notices []*notify.ActivationNotice
	err     error
}

func (n *recordingNotifier) NotifyActivation(ctx context.Context, notice *notify.ActivationNotice) error {
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *recordingNotifier) Close() error { return nil }
