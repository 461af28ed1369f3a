package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"freelahub/internal/database"
	"freelahub/internal/domain"
	"freelahub/internal/pkg/logger"
	"freelahub/internal/pkg/utils"
	"freelahub/internal/repository"
)

type Service struct {
	projects ProjectStore
	now      func() time.Time
}

func NewService(projects ProjectStore) *Service {
	return &Service{projects: projects, now: time.Now}
}

func (s *Service) Create(ctx context.Context, companyID int64, req CreateProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		CompanyID:   companyID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Budget:      req.Budget,
		City:        strings.TrimSpace(req.City),
		Skills:      domain.NewSkillList(req.Skills),
		Status:      domain.ProjectOpen,
	}

	if req.Deadline != "" {
		d, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			return nil, ErrInvalidDeadline
		}
		today := s.now().UTC().Truncate(24 * time.Hour)
		if d.Before(today) {
			return nil, ErrInvalidDeadline
		}
		p.Deadline = &d
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	logger.Info(ctx, "project created", zap.Int64("project_id", p.ID), zap.Int64("company_id", companyID))
	return p, nil
}

// List browses projects. Status defaults to open; "todos" disables the
// status filter.
func (s *Service) List(ctx context.Context, q ListProjectsQuery) (*ProjectPage, error) {
	if q.MaxBudget > 0 && q.MinBudget > q.MaxBudget {
		return nil, ErrInvalidBudgetRange
	}

	limit, offset, page := utils.Paginate(q.Page, q.Limit)
	f := repository.ProjectFilters{
		Category:  strings.TrimSpace(q.Category),
		City:      strings.TrimSpace(q.City),
		Query:     strings.TrimSpace(q.Query),
		Skill:     strings.TrimSpace(q.Skill),
		MinBudget: q.MinBudget,
		MaxBudget: q.MaxBudget,
		Limit:     limit,
		Offset:    offset,
	}
	switch q.Status {
	case "":
		f.Status = domain.ProjectOpen
	case "todos":
	default:
		f.Status = domain.ProjectStatus(q.Status)
	}

	items, total, err := s.projects.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if items == nil {
		items = []domain.Project{}
	}
	return &ProjectPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// GetOwned loads a project and checks that companyID posted it.
func (s *Service) GetOwned(ctx context.Context, companyID, id int64) (*domain.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CompanyID != companyID {
		return nil, ErrNotProjectOwner
	}
	return p, nil
}

// Close stops a project from receiving candidacies. Closing twice is a no-op.
func (s *Service) Close(ctx context.Context, companyID, id int64) (*domain.Project, error) {
	p, err := s.GetOwned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.ProjectClosed {
		return p, nil
	}

	if err := s.projects.UpdateStatus(ctx, id, domain.ProjectClosed); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("close project: %w", err)
	}
	p.Status = domain.ProjectClosed

	logger.Info(ctx, "project closed", zap.Int64("project_id", id))
	return p, nil
}

func (s *Service) ListMine(ctx context.Context, companyID int64) ([]domain.Project, error) {
	items, err := s.projects.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company projects: %w", err)
	}
	if items == nil {
		items = []domain.Project{}
	}
	return items, nil
}
