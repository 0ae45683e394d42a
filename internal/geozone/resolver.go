// Package geozone сопоставляет географическую точку с активной зоной.
// Единственный источник истины для геопривязки: решение принимается
// только по реальному попаданию точки в геометрию зоны, а не по
// порядку зон в списке
package geozone

import (
	"sort"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
)

// Resolver резолвер зоны по точке
type Resolver struct {
	logger Logger
}

// NewResolver создает новый резолвер зон
func NewResolver(logger Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve возвращает зону, содержащую точку, или nil, если точка
// не попадает ни в одну активную зону. Отсутствие зоны - не ошибка:
// вызывающий код трактует его как "базовое ценообразование".
//
// При пересечении зон побеждает меньшее значение Priority
// (назначается администратором), при равенстве - меньший ID.
// Результат детерминирован для одного и того же набора зон.
//
// Зона с некорректной геометрией или несогласованным ценообразованием
// логируется и пропускается: одна сломанная зона не должна делать
// сервис недоступным для бронирования
func (r *Resolver) Resolve(point geomath.Point, zones []*domain.Zone) *domain.Zone {
	candidates := make([]*domain.Zone, 0, len(zones))
	for _, zone := range zones {
		if !zone.IsActive {
			continue
		}
		candidates = append(candidates, zone)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}
		return candidates[i].ID < candidates[j].ID
	})

	for _, zone := range candidates {
		if zone.Geometry.Type() != domain.ZoneTypeCircle && zone.Geometry.Type() != domain.ZoneTypePolygon {
			r.logger.Warn("geozone: zone id=%d has invalid geometry, skipping", zone.ID)
			continue
		}

		if err := zone.ValidatePricing(); err != nil {
			r.logger.Warn("geozone: zone id=%d has invalid pricing config, skipping: %v", zone.ID, err)
			continue
		}

		if zone.Geometry.Contains(point) {
			return zone
		}
	}

	return nil
}
