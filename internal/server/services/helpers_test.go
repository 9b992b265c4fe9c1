package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/aycode/internal/dbx"
	"github.com/dmitrijs2005/aycode/internal/logging"
	"github.com/dmitrijs2005/aycode/internal/server/auth"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/problems"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func newTokens(t *testing.T, clock abtime.AbstractTime) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager([]byte("test-signing-key"), time.Hour, clock)
	require.NoError(t, err)
	return tm
}

func newHasher(t *testing.T) *auth.PasswordHasher {
	t.Helper()
	h, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

// newSQLiteUserService wires a UserService to a fresh migrated database.
func newSQLiteUserService(t *testing.T) (*UserService, *sql.DB) {
	t.Helper()
	db := repotest.OpenSQLite(t)
	s := NewUserService(db, repomanager.NewSQLiteRepositoryManager(), newTokens(t, nil), newHasher(t), time.Second, logging.Nop())
	return s, db
}

func newFakeUserService(t *testing.T, u users.Repository) *UserService {
	t.Helper()
	return NewUserService(nil, &fakeRepoManager{u: u}, newTokens(t, nil), newHasher(t), time.Second, logging.Nop())
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:             "Alice",
		Email:            "alice@example.com",
		Phone:            "+1-555-0100",
		DateOfBirth:      "1990-01-01",
		Password:         "s3cret!",
		Gender:           "female",
		SubscriptionPlan: "free",
	}
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	updateErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	return f.updateErr
}

type fakeProblemsRepo struct {
	err error

	calls     int
	deadlines []time.Time
}

func (f *fakeProblemsRepo) record(ctx context.Context) {
	f.calls++
	if d, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, d)
	}
}

func (f *fakeProblemsRepo) Create(ctx context.Context, p *models.Problem) (*models.Problem, error) {
	f.record(ctx)
	return nil, f.err
}

func (f *fakeProblemsRepo) List(ctx context.Context) ([]models.Problem, error) {
	f.record(ctx)
	return nil, f.err
}

func (f *fakeProblemsRepo) Get(ctx context.Context, id string) (*models.Problem, error) {
	f.record(ctx)
	return nil, f.err
}

type fakeRepoManager struct {
	u users.Repository
	p problems.Repository
}

func (m *fakeRepoManager) Dialect() dbx.Dialect                         { return dbx.SQLite }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Problems(dbx.DBTX) problems.Repository        { return m.p }
