package config

import (
	"context"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек вместимости
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.CapacitySettings, error)
	Update(ctx context.Context, settings *domain.CapacitySettings) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListTemplates(ctx context.Context) ([]*domain.WeekdayTemplate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
