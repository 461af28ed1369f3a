package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"freelahub/internal/domain"
)

// ProfileRepository reads and writes the role-specific profile tables.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetCompany(ctx context.Context, userID int64) (*domain.CompanyProfile, error) {
	var p domain.CompanyProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetFreelancer(ctx context.Context, userID int64) (*domain.FreelancerProfile, error) {
	var p domain.FreelancerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetForRole loads the profile table that belongs to role.
func (r *ProfileRepository) GetForRole(ctx context.Context, userID int64, role domain.Role) (domain.RoleProfile, error) {
	switch role {
	case domain.RoleCompany:
		return r.GetCompany(ctx, userID)
	case domain.RoleFreelancer:
		return r.GetFreelancer(ctx, userID)
	}
	return nil, domain.ErrUnknownRole
}

// SaveCompletion stores the completed profile and the user's location
// atomically. The profile row must already exist.
func (r *ProfileRepository) SaveCompletion(ctx context.Context, userID int64, city, neighborhood string, profile domain.RoleProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ?", userID).Updates(map[string]any{
			"cidade": city,
			"bairro": neighborhood,
		})
		if res.Error != nil {
			return fmt.Errorf("update user location: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var updates map[string]any
		switch p := profile.(type) {
		case *domain.CompanyProfile:
			updates = map[string]any{
				"cnpj":         p.CNPJ,
				"razao_social": p.LegalName,
				"setor":        p.Sector,
				"descricao":    p.Description,
			}
		case *domain.FreelancerProfile:
			updates = map[string]any{
				"cpf":         p.CPF,
				"profissao":   p.Profession,
				"experiencia": p.Experience,
				"valor_hora":  p.HourlyRate,
				"habilidades": p.Skills,
				"bio":         p.Bio,
			}
		default:
			return domain.ErrUnknownRole
		}

		res = tx.Model(profile).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update %s profile: %w", profile.ProfileRole(), res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
