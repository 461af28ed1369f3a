package candidacy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"freelahub/internal/database"
	"freelahub/internal/domain"
	"freelahub/internal/pkg/logger"
	"freelahub/internal/repository"
)

type Service struct {
	candidacies CandidacyStore
	projects    Projects
}

func NewService(candidacies CandidacyStore, projects Projects) *Service {
	return &Service{candidacies: candidacies, projects: projects}
}

func (s *Service) Apply(ctx context.Context, freelancerID, projectID int64, req ApplyRequest) (*domain.Candidacy, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProjectOpen {
		return nil, ErrProjectClosed
	}

	c := &domain.Candidacy{
		ProjectID:     projectID,
		FreelancerID:  freelancerID,
		Message:       strings.TrimSpace(req.Message),
		ProposedValue: req.ProposedValue,
		Status:        domain.CandidacyPending,
	}
	if err := s.candidacies.Create(ctx, c); err != nil {
		if !errors.Is(err, repository.ErrDuplicateCandidacy) {
			return nil, fmt.Errorf("create candidacy: %w", err)
		}
		// A withdrawn candidacy can be resubmitted; any other one stands.
		ok, err := s.candidacies.Reapply(ctx, c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAlreadyApplied
		}
	}

	logger.Info(ctx, "candidacy submitted",
		zap.Int64("candidacy_id", c.ID),
		zap.Int64("project_id", projectID),
		zap.Int64("freelancer_id", freelancerID),
	)
	return c, nil
}

func (s *Service) ListMine(ctx context.Context, freelancerID int64) ([]domain.Candidacy, error) {
	out, err := s.candidacies.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("list freelancer candidacies: %w", err)
	}
	if out == nil {
		out = []domain.Candidacy{}
	}
	return out, nil
}

// ListForProject returns the candidacies of a project posted by companyID.
func (s *Service) ListForProject(ctx context.Context, companyID, projectID int64) ([]domain.Candidacy, error) {
	if _, err := s.projects.GetOwned(ctx, companyID, projectID); err != nil {
		return nil, err
	}
	out, err := s.candidacies.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project candidacies: %w", err)
	}
	if out == nil {
		out = []domain.Candidacy{}
	}
	return out, nil
}

// Decide accepts or rejects a pending candidacy on one of companyID's projects.
func (s *Service) Decide(ctx context.Context, companyID, candidacyID int64, status domain.CandidacyStatus) (*domain.Candidacy, error) {
	if status != domain.CandidacyAccepted && status != domain.CandidacyRejected {
		return nil, ErrInvalidStatusTransition
	}

	c, err := s.get(ctx, candidacyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetOwned(ctx, companyID, c.ProjectID); err != nil {
		return nil, err
	}

	if err := s.transition(ctx, c, status); err != nil {
		return nil, err
	}
	logger.Info(ctx, "candidacy decided", zap.Int64("candidacy_id", c.ID), zap.String("status", string(status)))
	return c, nil
}

// Withdraw lets a freelancer pull back their own pending candidacy.
func (s *Service) Withdraw(ctx context.Context, freelancerID, candidacyID int64) (*domain.Candidacy, error) {
	c, err := s.get(ctx, candidacyID)
	if err != nil {
		return nil, err
	}
	if c.FreelancerID != freelancerID {
		return nil, ErrNotCandidacyOwner
	}

	if err := s.transition(ctx, c, domain.CandidacyWithdrawn); err != nil {
		return nil, err
	}
	logger.Info(ctx, "candidacy withdrawn", zap.Int64("candidacy_id", c.ID))
	return c, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Candidacy, error) {
	c, err := s.candidacies.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrCandidacyNotFound
		}
		return nil, fmt.Errorf("get candidacy: %w", err)
	}
	return c, nil
}

// transition only moves candidacies out of pendente; the conditional update
// makes a concurrent decision and withdrawal race to a single winner.
func (s *Service) transition(ctx context.Context, c *domain.Candidacy, to domain.CandidacyStatus) error {
	if c.Status != domain.CandidacyPending {
		return ErrInvalidStatusTransition
	}
	ok, err := s.candidacies.TransitionStatus(ctx, c.ID, domain.CandidacyPending, to)
	if err != nil {
		return fmt.Errorf("update candidacy status: %w", err)
	}
	if !ok {
		return ErrInvalidStatusTransition
	}
	c.Status = to
	return nil
}
