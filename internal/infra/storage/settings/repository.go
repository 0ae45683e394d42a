package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GeoBookingService/pkg/psqlbuilder"
)

// Настройки хранятся одной строкой с фиксированным id
const settingsRowID = 1

// Repository репозиторий настроек вместимости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущие лимиты вместимости
func (r *Repository) Get(ctx context.Context) (*domain.CapacitySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"max_per_slot",
		"max_per_day",
	).
		From("booking_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.CapacitySettings

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.MaxPerSlot,
		&settings.MaxPerDay,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	return &settings, nil
}

// Update сохраняет лимиты вместимости (upsert единственной строки)
func (r *Repository) Update(ctx context.Context, settings *domain.CapacitySettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns("id", "max_per_slot", "max_per_day").
		Values(settingsRowID, settings.MaxPerSlot, settings.MaxPerDay).
		Suffix("ON CONFLICT (id) DO UPDATE SET max_per_slot = EXCLUDED.max_per_slot, max_per_day = EXCLUDED.max_per_day, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Update - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
