package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GeoBookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг и переопределений цен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService возвращает активную услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"base_price",
		"reservation_price",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.BasePrice,
		&service.ReservationPrice,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetZonePrice возвращает активное переопределение цены для пары (услуга, зона)
func (r *Repository) GetZonePrice(ctx context.Context, serviceID, zoneID int64) (*domain.ServiceZonePrice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"zone_id",
		"custom_price",
		"is_active",
	).
		From("service_zone_prices").
		Where(squirrel.Eq{
			"service_id": serviceID,
			"zone_id":    zoneID,
			"is_active":  true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetZonePrice - build select query: %v", ErrBuildQuery, err)
	}

	var override domain.ServiceZonePrice

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&override.ServiceID,
		&override.ZoneID,
		&override.CustomPrice,
		&override.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetZonePrice - scan override: %v", ErrScanRow, err)
	}

	return &override, nil
}
