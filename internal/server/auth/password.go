package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/aycode/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts. Hash rejects
// anything longer with bcrypt.ErrPasswordTooLong.
const MaxPasswordBytes = 72

// PasswordHasher wraps bcrypt. Both operations honour ctx cancellation: the
// bcrypt call runs on its own goroutine and the caller stops waiting when
// ctx is done.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher builds a hasher with the given bcrypt cost; a cost
// outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// Compared against when the email is unknown, so a miss costs as much
	// as a wrong password.
	secret, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, err
	}

	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

type hashResult struct {
	hash []byte
	err  error
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(ctx context.Context, password string) ([]byte, error) {
	done := make(chan hashResult, 1)
	go func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		done <- hashResult{hash: hash, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.hash, r.err
	}
}

// Compare reports whether password matches hash. A nil hash is compared
// against the dummy hash and always reports false.
func (h *PasswordHasher) Compare(ctx context.Context, hash []byte, password string) (bool, error) {
	target := hash
	if len(target) == 0 {
		target = h.dummyHash
	}

	done := make(chan error, 1)
	go func() {
		done <- bcrypt.CompareHashAndPassword(target, []byte(password))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-done:
		if err == nil {
			return len(hash) > 0, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
}
