package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"freelahub/internal/database"
	"freelahub/internal/domain"
	"freelahub/internal/pkg/brdoc"
	"freelahub/internal/pkg/logger"
	"freelahub/internal/pkg/mailer"
	"freelahub/internal/repository"
)

// ForgotPasswordMessage is returned whether or not the email belongs to an
// account.
const ForgotPasswordMessage = "Se o email estiver cadastrado, você receberá um link para redefinir sua senha."

const resetTokenBytes = 32

type Config struct {
	BcryptCost        int
	DefaultHourlyRate float64
	ResetTokenTTL     time.Duration
	ResetLinkBase     string
}

// Service contains the signup, login and password recovery logic.
type Service struct {
	users      UserRepository
	completion CompletionChecker
	jwt        tokenIssuer
	resets     ResetTokenStore
	mailer     mailer.Mailer
	events     Recorder
	cfg        Config

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(
	users UserRepository,
	completion CompletionChecker,
	jwt tokenIssuer,
	resets ResetTokenStore,
	m mailer.Mailer,
	events Recorder,
	cfg Config,
) *Service {
	return &Service{
		users:      users,
		completion: completion,
		jwt:        jwt,
		resets:     resets,
		mailer:     m,
		events:     events,
		cfg:        cfg,
	}
}

// CheckEmail reports whether an active account uses email, and its role.
func (s *Service) CheckEmail(ctx context.Context, email string) (*CheckEmailResult, error) {
	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	res := &CheckEmailResult{Exists: user != nil, NextStep: NextStep(user != nil)}
	if user != nil {
		role := user.Role
		res.Role = &role
	}
	return res, nil
}

// QuickRegister creates the account and an empty role profile. The
// identifier is collected later by profile completion.
func (s *Service) QuickRegister(ctx context.Context, req QuickRegisterRequest) (*AuthResult, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	profile, err := domain.NewRoleProfile(role, s.cfg.DefaultHourlyRate)
	if err != nil {
		return nil, err
	}
	return s.register(ctx, req, role, profile)
}

// Register is the full signup: role-specific fields sent up front are
// stored on the profile created with the account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if fields := req.otherRoleFields(role); fields != nil {
		return nil, &FieldsError{Fields: fields}
	}
	profile, err := domain.NewRoleProfile(role, s.cfg.DefaultHourlyRate)
	if err != nil {
		return nil, err
	}

	switch p := profile.(type) {
	case *domain.CompanyProfile:
		p.CNPJ = brdoc.OnlyDigits(req.CNPJ)
		p.LegalName = strings.TrimSpace(req.LegalName)
		if sector := strings.TrimSpace(req.Sector); sector != "" {
			p.Sector = sector
		}
	case *domain.FreelancerProfile:
		p.CPF = brdoc.OnlyDigits(req.CPF)
		p.Profession = strings.TrimSpace(req.Profession)
		p.Experience = strings.TrimSpace(req.Experience)
		if req.HourlyRate > 0 {
			p.HourlyRate = req.HourlyRate
		}
		p.Skills = domain.NewSkillList(req.Skills)
	default:
		return nil, domain.ErrUnknownRole
	}

	return s.register(ctx, req.QuickRegisterRequest, role, profile)
}

func (s *Service) register(ctx context.Context, req QuickRegisterRequest, role domain.Role, profile domain.RoleProfile) (*AuthResult, error) {
	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        domain.NormalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	// concurrent signups that both passed the check above are settled by the
	// unique index on users.email
	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.events.SignupCreated(string(role))
	logger.Info(ctx, "account created", zap.Int64("user_id", user.ID), zap.String("tipo", string(role)))

	if err := s.mailer.SendWelcome(ctx, user.Email, user.Name, string(role)); err != nil {
		s.events.EmailFailed("welcome")
		logger.Warn(ctx, "welcome email failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	dest, err := Destination(role, profile.HasValidIdentifier())
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResult{User: user, Token: token, Destination: dest}, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.FindActiveByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		// burn the same bcrypt time as a real comparison
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	complete, err := s.completion.IsComplete(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("check profile completion: %w", err)
	}
	dest, err := Destination(user.Role, complete)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResult{User: user, Token: token, Destination: dest}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ForgotPassword emails a single-use reset link when an active account
// exists. Its outcome is never reported to the caller.
func (s *Service) ForgotPassword(ctx context.Context, email string) {
	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		logger.Error(ctx, "forgot password lookup failed", zap.Error(err))
		return
	}
	if user == nil {
		return
	}

	raw, hash, err := newResetToken()
	if err != nil {
		logger.Error(ctx, "reset token generation failed", zap.Error(err))
		return
	}
	if err := s.resets.Save(ctx, hash, user.ID, s.cfg.ResetTokenTTL); err != nil {
		logger.Error(ctx, "reset token store failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, s.resetLink(raw)); err != nil {
		s.events.EmailFailed("password_reset")
		logger.Warn(ctx, "password reset email failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.resets.Consume(ctx, hashResetToken(token))
	if errors.Is(err, ErrResetTokenNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if database.IsNotFound(err) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("update password: %w", err)
	}

	logger.Info(ctx, "password reset", zap.Int64("user_id", userID))
	return nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("freelahub-dummy-password"), s.cfg.BcryptCost)
	})
	return s.dummyHash
}

func (s *Service) resetLink(raw string) string {
	sep := "?"
	if strings.Contains(s.cfg.ResetLinkBase, "?") {
		sep = "&"
	}
	return s.cfg.ResetLinkBase + sep + "token=" + raw
}

func newResetToken() (raw, hash string, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(raw)))
	return hex.EncodeToString(sum[:])
}
