package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/igwlord/nebula/internal/domain"
)

// MockRecordRepository is a mock implementation of RecordRepository for testing
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) List(ctx context.Context, owner string, kind domain.Kind, window *domain.MonthWindow) ([]*domain.Record, error) {
	args := m.Called(ctx, owner, kind, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Record), args.Error(1)
}

func (m *MockRecordRepository) Watch(ctx context.Context, owner string, kind domain.Kind, window *domain.MonthWindow) (<-chan []*domain.Record, error) {
	args := m.Called(ctx, owner, kind, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan []*domain.Record), args.Error(1)
}

func (m *MockRecordRepository) Create(ctx context.Context, owner string, kind domain.Kind, rec *domain.Record) (string, error) {
	args := m.Called(ctx, owner, kind, rec)
	return args.String(0), args.Error(1)
}

func (m *MockRecordRepository) CreateBatch(ctx context.Context, owner string, kind domain.Kind, recs []*domain.Record) error {
	args := m.Called(ctx, owner, kind, recs)
	return args.Error(0)
}

func (m *MockRecordRepository) Update(ctx context.Context, owner string, kind domain.Kind, id string, rec *domain.Record) error {
	args := m.Called(ctx, owner, kind, id, rec)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, owner string, kind domain.Kind, id string) error {
	args := m.Called(ctx, owner, kind, id)
	return args.Error(0)
}

func (m *MockRecordRepository) BatchReorder(ctx context.Context, owner string, kind domain.Kind, orderedIDs []string) error {
	args := m.Called(ctx, owner, kind, orderedIDs)
	return args.Error(0)
}

func TestCreate_BucketsDateIntoSelectedMonth(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)

	service := NewService(mockRepo, domain.GuestOwner)
	// Today is January 31st; the user is browsing February 2024.
	service.Now = func() time.Time {
		return time.Date(2024, time.January, 31, 15, 4, 5, 0, time.Local)
	}
	sel := domain.MonthSelection{Year: 2024, Month: time.February}

	mockRepo.On("Create", ctx, domain.GuestOwner, domain.KindExpense, mock.MatchedBy(func(rec *domain.Record) bool {
		// Day 31 clamps to February 29th (leap year) inside the
		// selected month, not March.
		want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local)
		return rec.Date.Equal(want) && rec.Amount == 80000 && rec.Description == "Supermercado"
	})).Return("rec-1", nil)

	rec, err := service.Create(ctx, domain.KindExpense, sel, Input{
		Description: "  Supermercado  ",
		Amount:      "80.000",
		Category:    "Alimentación",
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, "Supermercado", rec.Description)
	mockRepo.AssertExpectations(t)
}

func TestCreate_ValidationFailureIsVisible(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	rec, err := service.Create(ctx, domain.KindExpense, domain.CurrentMonth(), Input{
		Description: "Sin monto",
		Amount:      "no es un número",
	})

	require.Error(t, err)
	assert.Nil(t, rec)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	// Nothing is silently dropped and nothing is persisted.
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreate_GoalAllowsZeroCurrentAmount(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	mockRepo.On("Create", ctx, domain.GuestOwner, domain.KindGoal, mock.MatchedBy(func(rec *domain.Record) bool {
		return rec.TargetAmount == 1000000 && rec.CurrentAmount == 0
	})).Return("goal-1", nil)

	rec, err := service.Create(ctx, domain.KindGoal, domain.CurrentMonth(), Input{
		Description:  "Vacaciones",
		TargetAmount: "1.000.000",
	})

	require.NoError(t, err)
	assert.Equal(t, "goal-1", rec.ID)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_PreservesIdentityDateAndOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	date := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.Local)
	existing := &domain.Record{ID: "rec-9", Description: "Luz", Amount: 12000, Date: date, Order: 3}

	mockRepo.On("Update", ctx, domain.GuestOwner, domain.KindExpense, "rec-9", mock.MatchedBy(func(rec *domain.Record) bool {
		return rec.ID == "rec-9" && rec.Order == 3 && rec.Date.Equal(date) && rec.Amount == 15000
	})).Return(nil)

	rec, err := service.Update(ctx, domain.KindExpense, existing, Input{
		Description: "Luz",
		Amount:      "15.000",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15000), rec.Amount)
	mockRepo.AssertExpectations(t)
}

func TestList_DegradesToEmptyOnReadFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	mockRepo.On("List", ctx, domain.GuestOwner, domain.KindIncome, mock.Anything).
		Return(nil, errors.New("connection refused"))

	recs := service.List(ctx, domain.KindIncome, domain.CurrentMonth())
	assert.Empty(t, recs)
	mockRepo.AssertExpectations(t)
}

func TestList_NonTimeScopedKindIgnoresMonth(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo, domain.GuestOwner)

	mockRepo.On("List", ctx, domain.GuestOwner, domain.KindDebt, (*domain.MonthWindow)(nil)).
		Return([]*domain.Record{{ID: "d-1", Description: "Tarjeta"}}, nil)

	recs := service.List(ctx, domain.KindDebt, domain.MonthSelection{Year: 2024, Month: time.March})
	require.Len(t, recs, 1)
	mockRepo.AssertExpectations(t)
}

func TestMoveItem_DragPersistsNewSequence(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	reconciler := NewReconciler(mockRepo, domain.GuestOwner)

	records := []*domain.Record{
		{ID: "a", Description: "Alquiler", Amount: 100, Order: 0},
		{ID: "b", Description: "Super", Amount: 300, Order: 1},
		{ID: "c", Description: "Nafta", Amount: 200, Order: 2},
	}

	// Drag the third record to the front.
	mockRepo.On("BatchReorder", ctx, domain.GuestOwner, domain.KindExpense, []string{"c", "a", "b"}).Return(nil)

	moved, err := reconciler.MoveItem(ctx, domain.KindExpense, records, 2, 0)

	require.NoError(t, err)
	require.Len(t, moved, 3)
	assert.Equal(t, int64(200), moved[0].Amount)
	assert.Equal(t, int64(100), moved[1].Amount)
	assert.Equal(t, int64(300), moved[2].Amount)
	for i, rec := range moved {
		assert.Equal(t, i, rec.Order)
	}
	mockRepo.AssertExpectations(t)
}

func TestMoveItem_RollbackOnPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	reconciler := NewReconciler(mockRepo, domain.GuestOwner)

	records := []*domain.Record{
		{ID: "a", Order: 0},
		{ID: "b", Order: 1},
		{ID: "c", Order: 2},
	}

	mockRepo.On("BatchReorder", ctx, domain.GuestOwner, domain.KindGoal, []string{"b", "a", "c"}).
		Return(errors.New("write timeout"))

	moved, err := reconciler.MoveItem(ctx, domain.KindGoal, records, 1, 0)

	require.Error(t, err)
	var rerr *domain.ReorderError
	require.ErrorAs(t, err, &rerr)

	// The caller gets the pre-move snapshot back, untouched.
	require.Len(t, moved, 3)
	assert.Equal(t, "a", moved[0].ID)
	assert.Equal(t, "b", moved[1].ID)
	assert.Equal(t, "c", moved[2].ID)
	for i, rec := range moved {
		assert.Equal(t, i, rec.Order)
	}
	mockRepo.AssertExpectations(t)
}

func TestMoveItem_NoopMoves(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	reconciler := NewReconciler(mockRepo, domain.GuestOwner)

	records := []*domain.Record{{ID: "a", Order: 0}, {ID: "b", Order: 1}}

	for _, move := range []struct{ from, to int }{
		{0, 0},
		{-1, 1},
		{0, 2},
		{5, 0},
	} {
		moved, err := reconciler.MoveItem(ctx, domain.KindIncome, records, move.from, move.to)
		assert.NoError(t, err)
		assert.Equal(t, records, moved)
	}
	mockRepo.AssertNotCalled(t, "BatchReorder")
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"80000", 80000},
		{"80.000", 80000},
		{"1.234,56", 1235},
		{"1.234.567", 1234567},
		{"$ 12.500", 12500},
		{"12,5", 13},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"12.34", 12},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAmount(tc.in), "input %q", tc.in)
	}
}
