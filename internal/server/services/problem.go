package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/dmitrijs2005/aycode/internal/logging"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/repomanager"
)

// CreateProblemInput carries the fields of a new catalog entry.
type CreateProblemInput struct {
	Title       string
	Description string
	Difficulty  string
}

// ProblemService serves the problem catalog.
type ProblemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	timeout     time.Duration
	log         logging.Logger
}

// NewProblemService bounds every store call by timeout; zero or less means
// DefaultRequestTimeout.
func NewProblemService(db *sql.DB, m repomanager.RepositoryManager, timeout time.Duration, log logging.Logger) *ProblemService {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &ProblemService{db: db, repomanager: m, timeout: timeout, log: log.With("module", "problems")}
}

// List returns catalog summaries in creation order.
func (s *ProblemService) List(ctx context.Context) ([]models.Problem, error) {
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items, err := s.repomanager.Problems(s.db).List(sctx)
	if err != nil {
		s.log.Error(ctx, "error listing problems", "error", err)
		return nil, common.ErrorInternal
	}
	return items, nil
}

// Get returns one problem or common.ErrorNotFound. A malformed id is a
// validation error.
func (s *ProblemService) Get(ctx context.Context, id string) (*models.Problem, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: invalid problem id", common.ErrorValidation)
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.repomanager.Problems(s.db).Get(sctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "error loading problem", "problem_id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return p, nil
}

// Create validates in and stores a new problem.
func (s *ProblemService) Create(ctx context.Context, in CreateProblemInput) (*models.Problem, error) {
	p := &models.Problem{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Difficulty:  strings.ToLower(strings.TrimSpace(in.Difficulty)),
	}

	if p.Title == "" || p.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", common.ErrorValidation)
	}
	switch p.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return nil, fmt.Errorf("%w: difficulty must be easy, medium or hard", common.ErrorValidation)
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.repomanager.Problems(s.db).Create(sctx, p)
	if err != nil {
		s.log.Error(ctx, "error creating problem", "error", err)
		return nil, common.ErrorInternal
	}
	return created, nil
}
