package get_price_quote

import (
	"context"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
)

// CatalogRepository интерфейс каталога услуг и зональных цен
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetZonePrice(ctx context.Context, serviceID, zoneID int64) (*domain.ServiceZonePrice, error)
}

// ZoneRepository интерфейс репозитория геозон
type ZoneRepository interface {
	ListActive(ctx context.Context) ([]*domain.Zone, error)
}

// ZoneResolver интерфейс резолвера геозон
type ZoneResolver interface {
	Resolve(point geomath.Point, zones []*domain.Zone) *domain.Zone
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
