package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
)

// ErrInvalidGeometry возвращается при некорректной геометрии зоны
// (неизвестный тип, отсутствие центра/радиуса, кольцо < 3 вершин)
var ErrInvalidGeometry = errors.New("domain: invalid zone geometry")

// ErrInvalidPricing возвращается, когда pricing_type зоны не согласован
// с полями multiplier / fixed_price
var ErrInvalidPricing = errors.New("domain: invalid zone pricing configuration")

// ZoneType тип геометрии зоны
type ZoneType string

const (
	ZoneTypeCircle  ZoneType = "circle"
	ZoneTypePolygon ZoneType = "polygon"
)

// PricingType тип ценообразования зоны
type PricingType string

const (
	PricingTypePercentage PricingType = "percentage"
	PricingTypeFixed      PricingType = "fixed"
)

// ZoneGeometry tagged-вариант геометрии зоны: либо Circle, либо Polygon.
// Конструируется один раз при чтении из хранилища, дальше используется
// только через Contains.
type ZoneGeometry struct {
	zoneType ZoneType
	circle   CircleGeometry
	polygon  []geomath.Point
}

// CircleGeometry окружность: центр + радиус в метрах
type CircleGeometry struct {
	Center       geomath.Point
	RadiusMeters float64
}

// NewCircleGeometry создает геометрию-окружность
func NewCircleGeometry(center geomath.Point, radiusMeters float64) (ZoneGeometry, error) {
	if radiusMeters <= 0 {
		return ZoneGeometry{}, fmt.Errorf("%w: circle radius must be positive, got %f", ErrInvalidGeometry, radiusMeters)
	}

	return ZoneGeometry{
		zoneType: ZoneTypeCircle,
		circle:   CircleGeometry{Center: center, RadiusMeters: radiusMeters},
	}, nil
}

// NewPolygonGeometry создает геометрию-полигон
// Кольцо замкнуто неявно; требуется минимум 3 вершины
func NewPolygonGeometry(ring []geomath.Point) (ZoneGeometry, error) {
	if len(ring) < 3 {
		return ZoneGeometry{}, fmt.Errorf("%w: polygon ring must have at least 3 vertices, got %d", ErrInvalidGeometry, len(ring))
	}

	return ZoneGeometry{
		zoneType: ZoneTypePolygon,
		polygon:  ring,
	}, nil
}

// Type возвращает тип геометрии
func (g ZoneGeometry) Type() ZoneType {
	return g.zoneType
}

// Contains возвращает true, если точка принадлежит зоне
// Точка ровно на границе окружности считается внутри
func (g ZoneGeometry) Contains(point geomath.Point) bool {
	switch g.zoneType {
	case ZoneTypeCircle:
		return geomath.PointInCircle(point, g.circle.Center, g.circle.RadiusMeters)
	case ZoneTypePolygon:
		return geomath.PointInPolygon(point, g.polygon)
	default:
		return false
	}
}

// Zone географическая зона с правилом ценообразования
type Zone struct {
	ID          int64
	Name        string
	Geometry    ZoneGeometry
	PricingType PricingType
	Multiplier  *float64 // для PricingTypePercentage
	FixedPrice  *float64 // для PricingTypeFixed
	Priority    int      // меньше = выше приоритет при пересечении зон
	IsActive    bool
}

// ValidatePricing проверяет согласованность pricing_type и полей цены
// Несогласованная конфигурация должна всплывать как ошибка, а не
// молча превращаться в базовую цену
func (z *Zone) ValidatePricing() error {
	switch z.PricingType {
	case PricingTypePercentage:
		if z.Multiplier == nil {
			return fmt.Errorf("%w: zone id=%d has pricing_type=percentage without multiplier", ErrInvalidPricing, z.ID)
		}
	case PricingTypeFixed:
		if z.FixedPrice == nil {
			return fmt.Errorf("%w: zone id=%d has pricing_type=fixed without fixed_price", ErrInvalidPricing, z.ID)
		}
	default:
		return fmt.Errorf("%w: zone id=%d has unknown pricing_type %q", ErrInvalidPricing, z.ID, z.PricingType)
	}
	return nil
}
