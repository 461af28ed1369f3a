package project

import (
	"context"

	"freelahub/internal/domain"
	"freelahub/internal/repository"
)

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, f repository.ProjectFilters) ([]domain.Project, int64, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Project, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ProjectStatus) error
}
