package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igwlord/nebula/internal/domain"
)

func newTestRepo(t *testing.T) domain.RecordRepository {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nebula.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewRecordRepository(store)
}

func TestRoundTrip_PreservesFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	date := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.Local)
	src := []*domain.Record{
		{Description: "Supermercado", Amount: 80000, Category: "Alimentación", Date: date},
		{Description: "Tarjeta de Crédito", Amount: 300000, MonthlyPayment: 50000, PaidAmount: 150000, Date: date},
	}
	for _, rec := range src {
		_, err := repo.Create(ctx, domain.GuestOwner, domain.KindExpense, rec.Clone())
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, domain.GuestOwner, domain.KindExpense, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i, rec := range got {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, i, rec.Order)
		assert.Equal(t, src[i].Description, rec.Description)
		assert.Equal(t, src[i].Amount, rec.Amount)
		assert.Equal(t, src[i].Category, rec.Category)
		assert.Equal(t, src[i].MonthlyPayment, rec.MonthlyPayment)
		assert.Equal(t, src[i].PaidAmount, rec.PaidAmount)
		assert.True(t, src[i].Date.Equal(rec.Date), "date should round-trip")
	}
}

func TestOrderStaysDense(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	var ids []string
	for _, desc := range []string{"a", "b", "c", "d"} {
		id, err := repo.Create(ctx, domain.GuestOwner, domain.KindGoal, &domain.Record{
			Description: desc, TargetAmount: 1000,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Delete from the middle, then reorder what's left.
	require.NoError(t, repo.Delete(ctx, domain.GuestOwner, domain.KindGoal, ids[1]))
	require.NoError(t, repo.BatchReorder(ctx, domain.GuestOwner, domain.KindGoal, []string{ids[3], ids[0], ids[2]}))

	got, err := repo.List(ctx, domain.GuestOwner, domain.KindGoal, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equal(t, i, rec.Order)
	}
	assert.Equal(t, "d", got[0].Description)
	assert.Equal(t, "a", got[1].Description)
	assert.Equal(t, "c", got[2].Description)
}

func TestMonthWindowFiltering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	mayDate := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.Local)
	juneDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)

	for _, rec := range []*domain.Record{
		{Description: "mayo", Amount: 100, Date: mayDate},
		{Description: "junio", Amount: 200, Date: juneDate},
		{Description: "sin fecha", Amount: 300},
	} {
		_, err := repo.Create(ctx, domain.GuestOwner, domain.KindExpense, rec)
		require.NoError(t, err)
	}

	window := domain.WindowFor(2024, time.June)
	got, err := repo.List(ctx, domain.GuestOwner, domain.KindExpense, &window)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "junio", got[0].Description)
}

func TestUpdateAndDelete_MissingID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	err := repo.Update(ctx, domain.GuestOwner, domain.KindIncome, "nope", &domain.Record{Description: "x", Amount: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, domain.GuestOwner, domain.KindIncome, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.BatchReorder(ctx, domain.GuestOwner, domain.KindIncome, []string{"nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_PreservesIdentityAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id, err := repo.Create(ctx, domain.GuestOwner, domain.KindInvestment, &domain.Record{
		Description: "Plazo Fijo", Type: "Renta Fija", Amount: 500000,
	})
	require.NoError(t, err)

	err = repo.Update(ctx, domain.GuestOwner, domain.KindInvestment, id, &domain.Record{
		Description: "Plazo Fijo UVA", Type: "Renta Fija", Amount: 650000,
	})
	require.NoError(t, err)

	got, err := repo.List(ctx, domain.GuestOwner, domain.KindInvestment, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, 0, got[0].Order)
	assert.Equal(t, "Plazo Fijo UVA", got[0].Description)
	assert.Equal(t, int64(650000), got[0].Amount)
}

func TestWatch_RefreshesAfterMutation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := newTestRepo(t)

	ch, err := repo.Watch(ctx, domain.GuestOwner, domain.KindGoal, nil)
	require.NoError(t, err)

	snap := <-ch
	assert.Empty(t, snap)

	_, err = repo.Create(ctx, domain.GuestOwner, domain.KindGoal, &domain.Record{
		Description: "Vacaciones", TargetAmount: 1000000, CurrentAmount: 350000,
	})
	require.NoError(t, err)

	select {
	case snap = <-ch:
		require.Len(t, snap, 1)
		assert.Equal(t, "Vacaciones", snap[0].Description)
	case <-ctx.Done():
		t.Fatal("no refreshed snapshot after create")
	}
}
