package domain

import (
	"time"

	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
)

// Booking represents a committed booking attempt.
// Создается ядром в статусе pending; дальнейшие переходы статуса
// принадлежат контуру управления бронированиями
type Booking struct {
	ID        int64
	UserID    int64
	ServiceID int64
	ZoneID    *int64 // nil = точка вне всех зон, базовое ценообразование

	ScheduledDate time.Time
	SlotStart     types.TimeString
	SlotEnd       types.TimeString
	Status        BookingStatus

	// Координаты запроса и зафиксированный расчет цены
	Lat         float64
	Lng         float64
	ServiceName string
	BasePrice   float64
	Adjustment  float64
	TotalAmount float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByCompany
}

// CountsAgainstCapacity returns true if the booking consumes slot capacity.
// Отмененные бронирования никогда не учитываются в лимитах
func (b *Booking) CountsAgainstCapacity() bool {
	return !b.IsCancelled()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID          int64
	Status          *BookingStatus // опционально
	IncludeInactive bool           // включать ли отмененные бронирования
}
