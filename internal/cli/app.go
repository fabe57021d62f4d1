package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/igwlord/nebula/internal/adapter/repository/localstore"
	"github.com/igwlord/nebula/internal/adapter/repository/postgres"
	"github.com/igwlord/nebula/internal/config"
	"github.com/igwlord/nebula/internal/domain"
	"github.com/igwlord/nebula/internal/usecase/records"
	"github.com/igwlord/nebula/internal/usecase/seeder"
	"github.com/igwlord/nebula/internal/usecase/settings"
)

// app holds the configured backend and the owner scope every command
// operates under.
type app struct {
	cfg          *config.Config
	owner        string
	repo         domain.RecordRepository
	settingsRepo domain.SettingsRepository
	close        func() error
}

// newApp loads config and opens the selected backend. Local mode seeds
// sample data into empty collections on first use.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.ModeRemote:
		db, err := postgres.NewDB(cfg.Remote.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
		}
		return &app{
			cfg:          cfg,
			owner:        cfg.Remote.Owner,
			repo:         postgres.NewRecordRepository(db, cfg.Remote.Project),
			settingsRepo: postgres.NewSettingsRepository(db, cfg.Remote.Project),
			close:        db.Close,
		}, nil

	case config.ModeLocal:
		store, err := localstore.Open(cfg.Local.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
		}
		repo := localstore.NewRecordRepository(store)
		if err := seeder.NewSeeder(repo).Seed(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return &app{
			cfg:          cfg,
			owner:        domain.GuestOwner,
			repo:         repo,
			settingsRepo: localstore.NewSettingsRepository(store),
			close:        store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown backend mode %q", cfg.Backend)
}

func (a *app) records() *records.Service {
	return records.NewService(a.repo, a.owner)
}

func (a *app) settings() *settings.Service {
	return settings.NewService(a.settingsRepo, a.owner)
}

// selection resolves the --month flag, defaulting to the current month.
func selection() (domain.MonthSelection, error) {
	if flagMonth == "" {
		return domain.CurrentMonth(), nil
	}
	t, err := time.Parse("2006-01", flagMonth)
	if err != nil {
		return domain.MonthSelection{}, fmt.Errorf("invalid month %q, expected YYYY-MM", flagMonth)
	}
	return domain.MonthSelection{Year: t.Year(), Month: t.Month()}, nil
}

// parseKindArg maps the collection argument, accepting both the stored
// names and their Spanish aliases.
func parseKindArg(arg string) (domain.Kind, error) {
	aliases := map[string]domain.Kind{
		"ingresos":    domain.KindIncome,
		"gastos":      domain.KindExpense,
		"deudas":      domain.KindDebt,
		"inversiones": domain.KindInvestment,
		"metas":       domain.KindGoal,
	}
	if k, ok := aliases[arg]; ok {
		return k, nil
	}
	if k, ok := domain.ParseKind(arg); ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown collection %q", arg)
}
