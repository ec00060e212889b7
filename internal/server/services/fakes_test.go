package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/aegislabs/aegis-backend/internal/dbx"
	"github.com/aegislabs/aegis-backend/internal/server/models"
	observationsrepo "github.com/aegislabs/aegis-backend/internal/server/repositories/observations"
	risksrepo "github.com/aegislabs/aegis-backend/internal/server/repositories/risks"
	symptomsrepo "github.com/aegislabs/aegis-backend/internal/server/repositories/symptoms"
	usersrepo "github.com/aegislabs/aegis-backend/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- fake repositories ---

type fakeUsersRepo struct {
	users     map[string]*models.User // keyed by external id
	createErr error
	getErr    error
	created   []*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-" + u.ExternalID
	u.CreatedAt = time.Now()
	if f.users == nil {
		f.users = map[string]*models.User{}
	}
	f.users[u.ExternalID] = u
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.users[externalID]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeObservationsRepo struct {
	seeded    []*models.Observation
	created   []*models.Observation
	createErr error
	selectErr error
	lastSince time.Time
}

func (f *fakeObservationsRepo) Create(ctx context.Context, obs *models.Observation) (*models.Observation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	obs.ID = "o-1"
	obs.CreatedAt = time.Now()
	f.created = append(f.created, obs)
	return obs, nil
}

func (f *fakeObservationsRepo) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.Observation, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	f.lastSince = since
	var out []*models.Observation
	for _, o := range f.seeded {
		if o.UserID == userID && !o.CreatedAt.Before(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeObservationsRepo) SelectRecent(ctx context.Context, userID string, limit int) ([]*models.Observation, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	if len(f.seeded) > limit {
		return f.seeded[:limit], nil
	}
	return f.seeded, nil
}

type fakeSymptomsRepo struct {
	seeded    []*models.SymptomLog
	created   []*models.SymptomLog
	createErr error
	selectErr error
}

func (f *fakeSymptomsRepo) Create(ctx context.Context, log *models.SymptomLog) (*models.SymptomLog, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	log.ID = "s-1"
	log.CreatedAt = time.Now()
	f.created = append(f.created, log)
	return log, nil
}

func (f *fakeSymptomsRepo) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.SymptomLog, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var out []*models.SymptomLog
	for _, s := range f.seeded {
		if s.UserID == userID && !s.CreatedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRisksRepo struct {
	created   []*models.RiskScore
	createErr error
}

func (f *fakeRisksRepo) Create(ctx context.Context, score *models.RiskScore) (*models.RiskScore, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	score.ID = "r-1"
	score.CreatedAt = time.Now()
	f.created = append(f.created, score)
	return score, nil
}

func (f *fakeRisksRepo) SelectRecent(ctx context.Context, userID string, limit int) ([]*models.RiskScore, error) {
	if len(f.created) > limit {
		return f.created[:limit], nil
	}
	return f.created, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	o *fakeObservationsRepo
	s *fakeSymptomsRepo
	r *fakeRisksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{users: map[string]*models.User{}},
		o: &fakeObservationsRepo{},
		s: &fakeSymptomsRepo{},
		r: &fakeRisksRepo{},
	}
}

func (m *fakeRepoManager) seedUser(externalID string) *models.User {
	u := &models.User{ID: "u-" + externalID, ExternalID: externalID, DisplayName: externalID}
	m.u.users[externalID] = u
	return u
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Observations(db dbx.DBTX) observationsrepo.Repository {
	return m.o
}
func (m *fakeRepoManager) Symptoms(db dbx.DBTX) symptomsrepo.Repository { return m.s }
func (m *fakeRepoManager) Risks(db dbx.DBTX) risksrepo.Repository       { return m.r }
