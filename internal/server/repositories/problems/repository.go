// Package problems stores the problem catalog.
package problems

import (
	"context"

	"github.com/dmitrijs2005/aycode/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Problem) (*models.Problem, error)
	List(ctx context.Context) ([]models.Problem, error)
	Get(ctx context.Context, id string) (*models.Problem, error)
}
