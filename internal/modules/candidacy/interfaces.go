package candidacy

import (
	"context"

	"freelahub/internal/domain"
)

type CandidacyStore interface {
	Create(ctx context.Context, c *domain.Candidacy) error
	Reapply(ctx context.Context, c *domain.Candidacy) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Candidacy, error)
	ListByFreelancer(ctx context.Context, freelancerID int64) ([]domain.Candidacy, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Candidacy, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.CandidacyStatus) (bool, error)
}

// Projects is the slice of the project service candidacies depend on.
type Projects interface {
	Get(ctx context.Context, id int64) (*domain.Project, error)
	GetOwned(ctx context.Context, companyID, id int64) (*domain.Project, error)
}
