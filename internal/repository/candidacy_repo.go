package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"freelahub/internal/database"
	"freelahub/internal/domain"
)

type CandidacyRepository struct {
	db *gorm.DB
}

func NewCandidacyRepository(db *gorm.DB) *CandidacyRepository {
	return &CandidacyRepository{db: db}
}

// Create relies on the (project_id, freelancer_id) unique index, so two
// concurrent applications from the same freelancer cannot both succeed.
func (r *CandidacyRepository) Create(ctx context.Context, c *domain.Candidacy) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateCandidacy
		}
		return fmt.Errorf("insert candidacy: %w", err)
	}
	return nil
}

// Reapply turns the freelancer's withdrawn candidacy on the project back
// into a pending one carrying c's proposal, and loads it into c. It reports
// false when no withdrawn row exists.
func (r *CandidacyRepository) Reapply(ctx context.Context, c *domain.Candidacy) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Candidacy{}).
		Where("project_id = ? AND freelancer_id = ? AND status = ?", c.ProjectID, c.FreelancerID, domain.CandidacyWithdrawn).
		Updates(map[string]any{
			"status":         domain.CandidacyPending,
			"mensagem":       c.Message,
			"valor_proposto": c.ProposedValue,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("reapply candidacy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if err := db.Where("project_id = ? AND freelancer_id = ?", c.ProjectID, c.FreelancerID).First(c).Error; err != nil {
		return false, fmt.Errorf("load reapplied candidacy: %w", err)
	}
	return true, nil
}

func (r *CandidacyRepository) GetByID(ctx context.Context, id int64) (*domain.Candidacy, error) {
	var c domain.Candidacy
	err := r.db.WithContext(ctx).
		Preload("Project").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidacyRepository) ListByFreelancer(ctx context.Context, freelancerID int64) ([]domain.Candidacy, error) {
	var out []domain.Candidacy
	err := r.db.WithContext(ctx).
		Where("freelancer_id = ?", freelancerID).
		Preload("Project").
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *CandidacyRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Candidacy, error) {
	var out []domain.Candidacy
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Preload("Freelancer").
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// TransitionStatus moves a candidacy from one status to another. It
// reports false when the row was no longer in the expected status.
func (r *CandidacyRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.CandidacyStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Candidacy{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
