package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс каталога услуг и зональных цен
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetZonePrice(ctx context.Context, serviceID, zoneID int64) (*domain.ServiceZonePrice, error)
}

// ZoneRepository интерфейс репозитория геозон
type ZoneRepository interface {
	ListActive(ctx context.Context) ([]*domain.Zone, error)
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

// ZoneResolver интерфейс резолвера геозон
type ZoneResolver interface {
	Resolve(point geomath.Point, zones []*domain.Zone) *domain.Zone
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	NotifyBookingCreatedWithGracefulDegradation(ctx context.Context, event notifyservice.BookingCreatedEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
