package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GeoBookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"service_id",
	"zone_id",
	"scheduled_date",
	"slot_start",
	"slot_end",
	"status",
	"lat",
	"lng",
	"service_name",
	"base_price",
	"adjustment",
	"total_amount",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value),
// использует её - путь создания бронирования всегда идет через
// сериализуемую транзакцию с повторной проверкой вместимости
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"service_id",
			"zone_id",
			"scheduled_date",
			"slot_start",
			"slot_end",
			"status",
			"lat",
			"lng",
			"service_name",
			"base_price",
			"adjustment",
			"total_amount",
			"notes",
		).
		Values(
			booking.UserID,
			booking.ServiceID,
			booking.ZoneID,
			booking.ScheduledDate,
			booking.SlotStart,
			booking.SlotEnd,
			booking.Status,
			booking.Lat,
			booking.Lng,
			booking.ServiceName,
			booking.BasePrice,
			booking.Adjustment,
			booking.TotalAmount,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		// Ошибка драйвера оборачивается через %w: на пути сериализуемой
		// транзакции код SQLSTATE должен оставаться доступным для errors.As
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetByUserWithFilter получает бронирования пользователя
// По умолчанию отмененные бронирования исключаются
func (r *Repository) GetByUserWithFilter(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("scheduled_date DESC, slot_start DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		cancelled := make([]string, len(domain.CancelledStatuses))
		for i, s := range domain.CancelledStatuses {
			cancelled[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": cancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByDate получает все неотмененные бронирования на дату,
// отсортированные по времени начала слота
//
// Внутри транзакции добавляется FOR UPDATE: путь создания бронирования
// блокирует строки даты, чтобы параллельные попытки на тот же слот
// сериализовались и не прошли обе через проверку вместимости
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancelled := make([]string, len(domain.CancelledStatuses))
	for i, s := range domain.CancelledStatuses {
		cancelled[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"scheduled_date": date}).
		Where(squirrel.NotEq{"status": cancelled}).
		OrderBy("slot_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// Проигравший гонку SELECT FOR UPDATE получает 40001 на этом
		// запросе, код SQLSTATE должен оставаться доступным для errors.As
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetSlotUsage возвращает счетчики неотмененных бронирований,
// сгруппированные по (дата, время начала), в интервале [from, to]
// Используется для расчета остаточной вместимости месяца
func (r *Repository) GetSlotUsage(ctx context.Context, from, to time.Time) ([]domain.SlotUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancelled := make([]string, len(domain.CancelledStatuses))
	for i, s := range domain.CancelledStatuses {
		cancelled[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"scheduled_date",
		"slot_start",
		"COUNT(*) AS cnt",
	).
		From("bookings").
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		Where(squirrel.LtOrEq{"scheduled_date": to}).
		Where(squirrel.NotEq{"status": cancelled}).
		GroupBy("scheduled_date", "slot_start").
		OrderBy("scheduled_date ASC, slot_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotUsage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotUsage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	usage := make([]domain.SlotUsage, 0)

	for rows.Next() {
		var u domain.SlotUsage

		if err := rows.Scan(&u.Date, &u.StartTime, &u.Count); err != nil {
			return nil, fmt.Errorf("%w: GetSlotUsage - scan usage row: %v", ErrScanRow, err)
		}

		usage = append(usage, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlotUsage - rows error: %v", ErrScanRow, err)
	}

	return usage, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ServiceID,
			&booking.ZoneID,
			&booking.ScheduledDate,
			&booking.SlotStart,
			&booking.SlotEnd,
			&booking.Status,
			&booking.Lat,
			&booking.Lng,
			&booking.ServiceName,
			&booking.BasePrice,
			&booking.Adjustment,
			&booking.TotalAmount,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
