package zone

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GeoBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения геозон
type Repository struct {
	db     DBExecutor
	logger Logger
}

// NewRepository создает новый экземпляр репозитория зон
func NewRepository(db DBExecutor, logger Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ListActive возвращает все активные зоны с разобранной геометрией
//
// Зона с некорректной геометрией логируется и пропускается: одна
// сломанная запись не должна блокировать геопривязку остальных зон
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"zone_type",
		"geometry",
		"pricing_type",
		"multiplier",
		"fixed_price",
		"priority",
		"is_active",
	).
		From("zones").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("priority ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	zones := make([]*domain.Zone, 0)

	for rows.Next() {
		var (
			zone     domain.Zone
			zoneType string
			rawGeom  []byte
		)

		err := rows.Scan(
			&zone.ID,
			&zone.Name,
			&zoneType,
			&rawGeom,
			&zone.PricingType,
			&zone.Multiplier,
			&zone.FixedPrice,
			&zone.Priority,
			&zone.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan zone: %v", ErrScanRow, err)
		}

		geometry, err := parseGeometry(domain.ZoneType(zoneType), rawGeom)
		if err != nil {
			r.logger.Warn("ListActive: zone id=%d has invalid geometry, skipping: %v", zone.ID, err)
			continue
		}

		zone.Geometry = geometry
		zones = append(zones, &zone)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return zones, nil
}

// GetByID возвращает зону по ID (включая неактивные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"zone_type",
		"geometry",
		"pricing_type",
		"multiplier",
		"fixed_price",
		"priority",
		"is_active",
	).
		From("zones").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		zone     domain.Zone
		zoneType string
		rawGeom  []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&zone.ID,
		&zone.Name,
		&zoneType,
		&rawGeom,
		&zone.PricingType,
		&zone.Multiplier,
		&zone.FixedPrice,
		&zone.Priority,
		&zone.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan zone: %v", ErrScanRow, err)
	}

	geometry, err := parseGeometry(domain.ZoneType(zoneType), rawGeom)
	if err != nil {
		return nil, err
	}

	zone.Geometry = geometry
	return &zone, nil
}
