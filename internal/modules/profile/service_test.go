package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freelahub/internal/domain"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetForRole(ctx context.Context, userID int64, role domain.Role) (domain.RoleProfile, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RoleProfile), args.Error(1)
}

func (m *mockProfiles) SaveCompletion(ctx context.Context, userID int64, city, neighborhood string, p domain.RoleProfile) error {
	args := m.Called(ctx, userID, city, neighborhood, p)
	return args.Error(0)
}

func validCompany() CompleteCompanyRequest {
	return CompleteCompanyRequest{
		CNPJ:         "11.222.333/0001-81",
		LegalName:    "ACME",
		Sector:       "TI",
		City:         " Recife ",
		Neighborhood: "Derby",
	}
}

func TestService_CompleteCompany_TokenRoleMismatch(t *testing.T) {
	users, profiles := new(mockUsers), new(mockProfiles)
	svc := NewService(users, profiles)

	err := svc.CompleteCompany(context.Background(), 1, domain.RoleFreelancer, validCompany())

	assert.ErrorIs(t, err, ErrRoleMismatch)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_CompleteCompany_StoredRoleMismatch(t *testing.T) {
	users, profiles := new(mockUsers), new(mockProfiles)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleFreelancer}, nil)
	svc := NewService(users, profiles)

	err := svc.CompleteCompany(context.Background(), 1, domain.RoleCompany, validCompany())

	assert.ErrorIs(t, err, ErrRoleMismatch)
	profiles.AssertNotCalled(t, "SaveCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CompleteCompany_Saves(t *testing.T) {
	users, profiles := new(mockUsers), new(mockProfiles)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.RoleCompany}, nil)
	profiles.On("SaveCompletion", mock.Anything, int64(1), "Recife", "Derby",
		mock.MatchedBy(func(p *domain.CompanyProfile) bool { return p.CNPJ == "11222333000181" }),
	).Return(nil)

	require.NoError(t, NewService(users, profiles).CompleteCompany(context.Background(), 1, domain.RoleCompany, validCompany()))
	profiles.AssertExpectations(t)
}

func TestService_CompleteFreelancer_Guards(t *testing.T) {
	svc := NewService(new(mockUsers), new(mockProfiles))

	err := svc.CompleteFreelancer(context.Background(), 1, domain.RoleFreelancer, CompleteFreelancerRequest{CPF: "12345678900", Skills: []string{"Go"}})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	err = svc.CompleteFreelancer(context.Background(), 1, domain.RoleFreelancer, CompleteFreelancerRequest{CPF: "52998224725", Skills: []string{" ", ""}})
	assert.ErrorIs(t, err, ErrNoSkills)
}

func TestService_CompleteFreelancer_PersistenceErrors(t *testing.T) {
	users, profiles := new(mockUsers), new(mockProfiles)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleFreelancer}, nil)
	profiles.On("SaveCompletion", mock.Anything, int64(2), mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Once()
	profiles.On("SaveCompletion", mock.Anything, int64(2), mock.Anything, mock.Anything, mock.Anything).
		Return(gorm.ErrRecordNotFound).Once()
	svc := NewService(users, profiles)

	req := CompleteFreelancerRequest{CPF: "52998224725", Skills: []string{"Go"}, HourlyRate: 80}

	err := svc.CompleteFreelancer(context.Background(), 2, domain.RoleFreelancer, req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)

	err = svc.CompleteFreelancer(context.Background(), 2, domain.RoleFreelancer, req)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestService_IsComplete(t *testing.T) {
	tests := []struct {
		name    string
		user    *domain.User
		profile domain.RoleProfile
		want    bool
	}{
		{"company without cnpj", &domain.User{ID: 1, Role: domain.RoleCompany}, &domain.CompanyProfile{}, false},
		{"company with cnpj", &domain.User{ID: 1, Role: domain.RoleCompany}, &domain.CompanyProfile{CNPJ: "11222333000181"}, true},
		{"freelancer without cpf", &domain.User{ID: 1, Role: domain.RoleFreelancer}, &domain.FreelancerProfile{}, false},
		{"freelancer with cpf", &domain.User{ID: 1, Role: domain.RoleFreelancer}, &domain.FreelancerProfile{CPF: "52998224725"}, true},
		{"freelancer with corrupt cpf", &domain.User{ID: 1, Role: domain.RoleFreelancer}, &domain.FreelancerProfile{CPF: "52998224726"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, profiles := new(mockUsers), new(mockProfiles)
			users.On("GetByID", mock.Anything, int64(1)).Return(tt.user, nil)
			profiles.On("GetForRole", mock.Anything, int64(1), tt.user.Role).Return(tt.profile, nil)

			got, err := NewService(users, profiles).IsComplete(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_IsComplete_UnknownRole(t *testing.T) {
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Role: domain.Role("admin")}, nil)

	_, err := NewService(users, new(mockProfiles)).IsComplete(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestService_IsComplete_UnknownUser(t *testing.T) {
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(users, new(mockProfiles)).IsComplete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
