// Package pricing вычисляет итоговую цену услуги с учетом зоны
// и переопределений цены для пары (услуга, зона)
package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
)

// Resolve вычисляет разбивку цены для услуги
//
// Приоритет правил (от высшего к низшему):
//  1. Активное переопределение цены для пары (услуга, зона) - total = custom_price
//  2. Зона с pricing_type=fixed - total = base_price + fixed_price
//  3. Зона с pricing_type=percentage - total = base_price * multiplier
//  4. Без зоны - total = base_price
//
// Adjustment = Total - Base во всех случаях; отрицательная корректировка
// допустима (зона может давать скидку).
// zone и override могут быть nil; неактивное переопределение игнорируется
func Resolve(service *domain.Service, zone *domain.Zone, override *domain.ServiceZonePrice) (domain.PriceBreakdown, error) {
	base := service.BasePrice

	if zone != nil && override != nil && override.IsActive {
		return breakdown(base, override.CustomPrice), nil
	}

	if zone == nil {
		return breakdown(base, base), nil
	}

	switch zone.PricingType {
	case domain.PricingTypeFixed:
		if zone.FixedPrice == nil {
			return domain.PriceBreakdown{}, fmt.Errorf("%w: zone id=%d has pricing_type=fixed without fixed_price", ErrInvalidConfig, zone.ID)
		}
		return breakdown(base, base+*zone.FixedPrice), nil

	case domain.PricingTypePercentage:
		if zone.Multiplier == nil {
			return domain.PriceBreakdown{}, fmt.Errorf("%w: zone id=%d has pricing_type=percentage without multiplier", ErrInvalidConfig, zone.ID)
		}
		return breakdown(base, base**zone.Multiplier), nil

	default:
		return domain.PriceBreakdown{}, fmt.Errorf("%w: zone id=%d has unknown pricing_type %q", ErrInvalidConfig, zone.ID, zone.PricingType)
	}
}

func breakdown(base, total float64) domain.PriceBreakdown {
	return domain.PriceBreakdown{
		Base:       base,
		Adjustment: total - base,
		Total:      total,
	}
}
