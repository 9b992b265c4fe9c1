// Package users stores credential records.
package users

import (
	"context"

	"github.com/dmitrijs2005/aycode/internal/server/models"
)

// Repository is the user-store collaborator of the auth core.
//
// Lookups return common.ErrorNotFound when no row matches; Create returns
// common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error
}
