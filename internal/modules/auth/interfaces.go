package auth

import (
	"context"
	"time"

	"freelahub/internal/domain"
)

// UserRepository is the slice of the user store the auth service needs.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, u *domain.User, profile domain.RoleProfile) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// CompletionChecker reports whether a user's role profile is complete.
type CompletionChecker interface {
	IsComplete(ctx context.Context, userID int64) (bool, error)
}

// ResetTokenStore keeps hashed password-reset tokens until they expire or
// are consumed.
type ResetTokenStore interface {
	Save(ctx context.Context, tokenHash string, userID int64, ttl time.Duration) error
	// Consume returns the owner of tokenHash and removes it in one step.
	Consume(ctx context.Context, tokenHash string) (int64, error)
}

// Recorder receives business counters.
type Recorder interface {
	SignupCreated(role string)
	EmailFailed(kind string)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
