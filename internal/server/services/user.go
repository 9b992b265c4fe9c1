// Package services contains server-side business logic. This file implements
// UserService: registration, login, token validation and the fresh-lookup
// authorization decision used by the access gate.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/dmitrijs2005/aycode/internal/dbx"
	"github.com/dmitrijs2005/aycode/internal/logging"
	"github.com/dmitrijs2005/aycode/internal/server/auth"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultRequestTimeout bounds a single store lookup or hashing step when no
// timeout is configured.
const DefaultRequestTimeout = 5 * time.Second

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name             string
	Email            string
	Phone            string
	DateOfBirth      string
	Password         string
	Gender           string
	SubscriptionPlan string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Validity  time.Duration
	UserID    string
	Name      string
}

// UserService verifies credentials, issues session tokens and answers
// authorization questions. Every decision about roles reads the store.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	timeout     time.Duration
	log         logging.Logger
}

// NewUserService constructs a UserService. A non-positive timeout falls back
// to DefaultRequestTimeout.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenManager,
	hasher *auth.PasswordHasher, timeout time.Duration, log logging.Logger) *UserService {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		timeout:     timeout,
		log:         log.With("module", "users"),
	}
}

// Register validates in, hashes the password and stores a new user with the
// "user" role. No token is issued.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if missing := in.missingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", common.ErrorValidation, strings.Join(missing, ", "))
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, auth.MaxPasswordBytes)
	}

	hctx, cancel := context.WithTimeout(ctx, s.timeout)
	hash, err := s.hasher.Hash(hctx, in.Password)
	cancel()
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password too long", common.ErrorValidation)
		}
		s.log.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:            in.Email,
		Name:             in.Name,
		Phone:            strings.TrimSpace(in.Phone),
		DateOfBirth:      strings.TrimSpace(in.DateOfBirth),
		Gender:           strings.TrimSpace(in.Gender),
		SubscriptionPlan: strings.TrimSpace(in.SubscriptionPlan),
		PasswordHash:     hash,
		Role:             models.RoleUser,
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.repomanager.Users(s.db).Create(sctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.log.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks email and password and, on success, issues a session token.
// An unknown email and a wrong password return the same ErrorUnauthorized
// after the same amount of hashing work.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	user, err := s.lookupByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.log.Error(ctx, "error searching user", "error", err)
		return nil, common.ErrorInternal
	}

	var hash []byte
	if user != nil {
		hash = user.PasswordHash
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	ok, err := s.hasher.Compare(cctx, hash, password)
	cancel()
	if err != nil {
		s.log.Error(ctx, "password comparison failed", "error", err)
		return nil, common.ErrorInternal
	}
	if !ok || user == nil {
		s.log.Info(ctx, "login rejected")
		return nil, common.ErrorUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error(ctx, "error issuing token", "error", err)
		return nil, common.ErrorInternal
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Validity:  s.tokens.Validity(),
		UserID:    user.ID,
		Name:      user.Name,
	}, nil
}

// Authenticate validates a presented token and returns its claims.
func (s *UserService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	return s.tokens.Validate(token)
}

// Profile reads the current user record for userID.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByID(sctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSubjectNotFound
		}
		s.log.Error(ctx, "error loading user", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Authorize loads userID and checks that its stored role satisfies required.
// The lookup happens on every call, so a role change takes effect on the
// next request.
func (s *UserService) Authorize(ctx context.Context, userID string, required models.Role) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Role.Satisfies(required) {
		return nil, common.ErrorForbidden
	}
	return user, nil
}

// ChangeRole sets the stored role of userID.
func (s *UserService) ChangeRole(ctx context.Context, userID string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}
	if !validID(userID) {
		return fmt.Errorf("%w: invalid user id", common.ErrorValidation)
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repomanager.Users(s.db).UpdateRole(sctx, userID, role); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrSubjectNotFound
		}
		s.log.Error(ctx, "error updating role", "user_id", userID, "error", err)
		return common.ErrorInternal
	}

	s.log.Info(ctx, "role changed", "user_id", userID, "role", string(role))
	return nil
}

// PromoteByEmail grants the admin role to the user registered under email.
// It is used to bootstrap the first administrator at startup. Lookup and
// update share one transaction.
func (s *UserService) PromoteByEmail(ctx context.Context, email string) error {
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := dbx.WithTx(sctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetUserByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return err
		}
		if user.IsAdmin() {
			return nil
		}
		return repo.UpdateRole(ctx, user.ID, models.RoleAdmin)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrSubjectNotFound
	default:
		s.log.Error(ctx, "error promoting user", "error", err)
		return common.ErrorInternal
	}
}

// --- helpers below ---

func (s *UserService) lookupByEmail(ctx context.Context, email string) (*models.User, error) {
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repomanager.Users(s.db).GetUserByEmail(sctx, email)
}

// validID reports whether id can be a stored key. Postgres rejects
// non-UUID text in a UUID column, so malformed ids never reach the store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in RegisterInput) missingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"phonenumber", in.Phone},
		{"dateofbirth", in.DateOfBirth},
		{"password", in.Password},
		{"gender", in.Gender},
		{"subscription", in.SubscriptionPlan},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
