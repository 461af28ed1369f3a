package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"freelahub/internal/domain"
)

type ProjectFilters struct {
	Category  string
	City      string
	Status    domain.ProjectStatus
	Query     string
	Skill     string
	MinBudget float64
	MaxBudget float64
	Limit     int
	Offset    int
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of projects matching f, newest first, and the
// total number of matches.
func (r *ProjectRepository) List(ctx context.Context, f ProjectFilters) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Project{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("LOWER(categoria) = ?", strings.ToLower(f.Category))
	}
	if f.City != "" {
		q = q.Where("LOWER(cidade) = ?", strings.ToLower(f.City))
	}
	if f.MinBudget > 0 {
		q = q.Where("orcamento >= ?", f.MinBudget)
	}
	if f.MaxBudget > 0 {
		q = q.Where("orcamento <= ?", f.MaxBudget)
	}
	if f.Query != "" {
		like := "%" + escapeLike(strings.ToLower(f.Query)) + "%"
		q = q.Where(`(LOWER(titulo) LIKE ? ESCAPE '\' OR LOWER(descricao) LIKE ? ESCAPE '\')`, like, like)
	}
	if f.Skill != "" {
		// habilidades is a JSON array of strings; match the encoded, quoted element.
		like := "%" + escapeLike(domain.EncodeSkill(strings.ToLower(f.Skill))) + "%"
		q = q.Where(`LOWER(habilidades) LIKE ? ESCAPE '\'`, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&projects).Error

	return projects, total, err
}

func (r *ProjectRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC, id DESC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, status domain.ProjectStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
