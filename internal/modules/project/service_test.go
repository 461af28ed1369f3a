package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freelahub/internal/domain"
	"freelahub/internal/repository"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *mockStore) List(ctx context.Context, f repository.ProjectFilters) ([]domain.Project, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]domain.Project)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockStore) ListByCompany(ctx context.Context, companyID int64) ([]domain.Project, error) {
	args := m.Called(ctx, companyID)
	items, _ := args.Get(0).([]domain.Project)
	return items, args.Error(1)
}

func (m *mockStore) UpdateStatus(ctx context.Context, id int64, status domain.ProjectStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func TestService_Create_Deadline(t *testing.T) {
	store := new(mockStore)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) }

	req := CreateProjectRequest{Title: "API", Description: "descrição longa", Category: "TI", Budget: 10}

	req.Deadline = "2026-03-10"
	p, err := svc.Create(context.Background(), 1, req)
	require.NoError(t, err)
	require.NotNil(t, p.Deadline)
	assert.Equal(t, domain.ProjectOpen, p.Status)

	req.Deadline = "2026-03-09"
	_, err = svc.Create(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidDeadline)
}

func TestService_List_DefaultsAndStatus(t *testing.T) {
	store := new(mockStore)
	store.On("List", mock.Anything, repository.ProjectFilters{Status: domain.ProjectOpen, Limit: 20, Offset: 0}).
		Return(nil, int64(0), nil).Once()
	store.On("List", mock.Anything, repository.ProjectFilters{Limit: 10, Offset: 20}).
		Return([]domain.Project{{ID: 1}}, int64(21), nil).Once()
	svc := NewService(store)

	page, err := svc.List(context.Background(), ListProjectsQuery{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Page)

	page, err = svc.List(context.Background(), ListProjectsQuery{Status: "todos", Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(21), page.Total)
	assert.Equal(t, 3, page.Page)
	store.AssertExpectations(t)
}

func TestService_Close(t *testing.T) {
	store := new(mockStore)
	store.On("GetByID", mock.Anything, int64(5)).Return(&domain.Project{ID: 5, CompanyID: 1, Status: domain.ProjectOpen}, nil)
	store.On("GetByID", mock.Anything, int64(6)).Return(nil, gorm.ErrRecordNotFound)
	store.On("UpdateStatus", mock.Anything, int64(5), domain.ProjectClosed).Return(nil)
	svc := NewService(store)

	_, err := svc.Close(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrNotProjectOwner)

	_, err = svc.Close(context.Background(), 1, 6)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	p, err := svc.Close(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectClosed, p.Status)
	store.AssertNumberOfCalls(t, "UpdateStatus", 1)
}
