package profile

import (
	"context"

	"freelahub/internal/domain"
)

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ProfileStore interface {
	GetForRole(ctx context.Context, userID int64, role domain.Role) (domain.RoleProfile, error)
	SaveCompletion(ctx context.Context, userID int64, city, neighborhood string, profile domain.RoleProfile) error
}
