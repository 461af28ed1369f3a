package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"freelahub/internal/database"
	"freelahub/internal/domain"
	"freelahub/internal/pkg/brdoc"
	"freelahub/internal/pkg/logger"
)

// Service owns profile completion, the gate between signup and the rest of
// the marketplace.
type Service struct {
	users    UserReader
	profiles ProfileStore
}

func NewService(users UserReader, profiles ProfileStore) *Service {
	return &Service{users: users, profiles: profiles}
}

func (s *Service) CompleteCompany(ctx context.Context, userID int64, role domain.Role, req CompleteCompanyRequest) error {
	if role != domain.RoleCompany {
		return ErrRoleMismatch
	}
	cnpj := brdoc.OnlyDigits(req.CNPJ)
	if !brdoc.ValidCNPJ(cnpj) {
		return ErrInvalidIdentifier
	}

	p := &domain.CompanyProfile{
		CNPJ:        cnpj,
		LegalName:   strings.TrimSpace(req.LegalName),
		Sector:      strings.TrimSpace(req.Sector),
		Description: strings.TrimSpace(req.Description),
	}
	return s.complete(ctx, userID, role, req.City, req.Neighborhood, p)
}

func (s *Service) CompleteFreelancer(ctx context.Context, userID int64, role domain.Role, req CompleteFreelancerRequest) error {
	if role != domain.RoleFreelancer {
		return ErrRoleMismatch
	}
	cpf := brdoc.OnlyDigits(req.CPF)
	if !brdoc.ValidCPF(cpf) {
		return ErrInvalidIdentifier
	}
	skills := domain.NewSkillList(req.Skills)
	if len(skills) == 0 {
		return ErrNoSkills
	}

	p := &domain.FreelancerProfile{
		CPF:        cpf,
		Profession: strings.TrimSpace(req.Profession),
		Experience: strings.TrimSpace(req.Experience),
		HourlyRate: req.HourlyRate,
		Skills:     skills,
		Bio:        strings.TrimSpace(req.Bio),
	}
	return s.complete(ctx, userID, role, req.City, req.Neighborhood, p)
}

// complete re-checks the stored role, since the token's claim may predate a
// change, then writes location and profile together.
func (s *Service) complete(ctx context.Context, userID int64, role domain.Role, city, neighborhood string, p domain.RoleProfile) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	if user.Role != role {
		return ErrRoleMismatch
	}

	err = s.profiles.SaveCompletion(ctx, userID, strings.TrimSpace(city), strings.TrimSpace(neighborhood), p)
	if database.IsNotFound(err) {
		return ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("save %s profile: %w", role, err)
	}

	logger.Info(ctx, "profile completed", zap.Int64("user_id", userID), zap.String("tipo", string(role)))
	return nil
}

// IsComplete is true when the role profile holds an identifier that passes
// its checksum now. A user without a profile row is incomplete.
func (s *Service) IsComplete(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("load user: %w", err)
	}

	p, err := s.profileFor(ctx, user)
	if errors.Is(err, ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.HasValidIdentifier(), nil
}

func (s *Service) GetMine(ctx context.Context, userID int64) (*MyProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	p, err := s.profileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &MyProfile{User: user, Profile: p, IsComplete: p.HasValidIdentifier()}, nil
}

func (s *Service) profileFor(ctx context.Context, user *domain.User) (domain.RoleProfile, error) {
	switch user.Role {
	case domain.RoleCompany, domain.RoleFreelancer:
	default:
		return nil, domain.ErrUnknownRole
	}

	p, err := s.profiles.GetForRole(ctx, user.ID, user.Role)
	if database.IsNotFound(err) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s profile: %w", user.Role, err)
	}
	return p, nil
}
