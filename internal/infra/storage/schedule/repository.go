package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GeoBookingService/pkg/psqlbuilder"
)

// Repository репозиторий недельного шаблона и дат-исключений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListTemplates возвращает строки недельного шаблона (по одной на день недели)
func (r *Repository) ListTemplates(ctx context.Context) ([]*domain.WeekdayTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"is_active",
		"start_1",
		"end_1",
		"start_2",
		"end_2",
		"start_3",
		"end_3",
	).
		From("weekly_templates").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.WeekdayTemplate, 0, 7)

	for rows.Next() {
		var tpl domain.WeekdayTemplate

		err := rows.Scan(
			&tpl.ID,
			&tpl.Weekday,
			&tpl.IsActive,
			&tpl.Start1,
			&tpl.End1,
			&tpl.Start2,
			&tpl.End2,
			&tpl.Start3,
			&tpl.End3,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTemplates - scan template: %v", ErrScanRow, err)
		}

		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// ListNonWorkingDays возвращает даты-исключения в интервале [from, to]
func (r *Repository) ListNonWorkingDays(ctx context.Context, from, to time.Time) ([]domain.NonWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day",
		"reason",
	).
		From("non_working_days").
		Where(squirrel.GtOrEq{"day": from}).
		Where(squirrel.LtOrEq{"day": to}).
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListNonWorkingDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNonWorkingDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.NonWorkingDay, 0)

	for rows.Next() {
		var day domain.NonWorkingDay

		if err := rows.Scan(&day.ID, &day.Date, &day.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListNonWorkingDays - scan day: %v", ErrScanRow, err)
		}

		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListNonWorkingDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}
