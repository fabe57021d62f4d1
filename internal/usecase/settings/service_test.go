package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/igwlord/nebula/internal/domain"
)

// MockSettingsRepository is a mock implementation of SettingsRepository for testing
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context, owner string) (*domain.Settings, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, owner string, s *domain.Settings) error {
	args := m.Called(ctx, owner, s)
	return args.Error(0)
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSettingsRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	mockRepo.On("Load", ctx, domain.GuestOwner).Return(nil, domain.ErrNotFound)

	s, err := service.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, "ARS", s.Currency)
	assert.True(t, s.ExchangeRate.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, []string{"netTotal", "monthlyFlow", "monthExpenses", "goals"}, s.DashboardLayout)
}

func TestUpdate_MergesOntoStored(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSettingsRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	stored := domain.DefaultSettings()
	stored.Theme = "light"
	mockRepo.On("Load", ctx, domain.GuestOwner).Return(stored, nil)
	mockRepo.On("Save", ctx, domain.GuestOwner, mock.MatchedBy(func(s *domain.Settings) bool {
		// Currency changes, the stored theme survives the merge.
		return s.Currency == "USD" && s.Theme == "light"
	})).Return(nil)

	s, err := service.Update(ctx, &domain.Settings{Currency: "USD"})

	require.NoError(t, err)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, "light", s.Theme)
	mockRepo.AssertExpectations(t)
}

func TestMoveWidget(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSettingsRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	mockRepo.On("Load", ctx, domain.GuestOwner).Return(nil, domain.ErrNotFound)
	mockRepo.On("Save", ctx, domain.GuestOwner, mock.MatchedBy(func(s *domain.Settings) bool {
		want := []string{"monthlyFlow", "netTotal", "monthExpenses", "goals"}
		return assert.ObjectsAreEqual(want, s.DashboardLayout)
	})).Return(nil)

	s, err := service.MoveWidget(ctx, "monthlyFlow", 0)

	require.NoError(t, err)
	assert.Equal(t, "monthlyFlow", s.DashboardLayout[0])
	mockRepo.AssertExpectations(t)
}

func TestMoveWidget_UnknownWidget(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSettingsRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	mockRepo.On("Load", ctx, domain.GuestOwner).Return(nil, domain.ErrNotFound)

	_, err := service.MoveWidget(ctx, "nope", 0)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save")
}
