package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"freelahub/internal/database"
	"freelahub/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB {
	return r.db
}

// CreateWithProfile inserts the user and its role profile in one
// transaction; either both rows exist afterwards or neither does.
// A duplicate email surfaces as ErrDuplicateEmail.
func (r *UserRepository) CreateWithProfile(ctx context.Context, u *domain.User, profile domain.RoleProfile) error {
	if profile.ProfileRole() != u.Role {
		return fmt.Errorf("profile role %q does not match user role %q", profile.ProfileRole(), u.Role)
	}
	u.Email = domain.NormalizeEmail(u.Email)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("insert user: %w", err)
		}
		profile.AttachTo(u.ID)
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("insert %s profile: %w", u.Role, err)
		}
		return nil
	})
	if err != nil {
		u.ID = 0
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", domain.NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByEmail counts every row, active or not, since the email index is global.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		Count(&n).Error
	return n > 0, err
}

// FindActiveByEmail returns nil, nil when there is no active account for email.
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", domain.NormalizeEmail(email), true).
		First(&u).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindOrphans returns users that have no profile row for their role.
func (r *UserRepository) FindOrphans(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("(tipo = ? AND id NOT IN (?)) OR (tipo = ? AND id NOT IN (?)) OR tipo NOT IN ?",
			domain.RoleCompany, r.db.Model(&domain.CompanyProfile{}).Select("user_id"),
			domain.RoleFreelancer, r.db.Model(&domain.FreelancerProfile{}).Select("user_id"),
			domain.Roles(),
		).
		Order("id").
		Find(&users).Error
	return users, err
}

// DeleteOrphans removes the given users only if they still lack a profile.
func (r *UserRepository) DeleteOrphans(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("id NOT IN (?)", r.db.Model(&domain.CompanyProfile{}).Select("user_id")).
		Where("id NOT IN (?)", r.db.Model(&domain.FreelancerProfile{}).Select("user_id")).
		Delete(&domain.User{})
	return res.RowsAffected, res.Error
}
