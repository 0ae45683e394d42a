package get_month_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetSlotUsage(ctx context.Context, from, to time.Time) ([]domain.SlotUsage, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListTemplates(ctx context.Context) ([]*domain.WeekdayTemplate, error)
	ListNonWorkingDays(ctx context.Context, from, to time.Time) ([]domain.NonWorkingDay, error)
}

// SettingsRepository интерфейс репозитория настроек вместимости
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.CapacitySettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
