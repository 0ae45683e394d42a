package get_price_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-GeoBookingService/internal/pricing"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
)

// UseCase use case расчета котировки цены по координатам
type UseCase struct {
	catalogRepo  CatalogRepository
	zoneRepo     ZoneRepository
	zoneResolver ZoneResolver
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	zoneRepo ZoneRepository,
	zoneResolver ZoneResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		zoneRepo:     zoneRepo,
		zoneResolver: zoneResolver,
		logger:       logger,
	}
}

// Execute резолвит зону по координатам и считает цену услуги в этой точке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetPriceQuote: service=%d, lat=%f, lng=%f", req.ServiceID, req.Lat, req.Lng)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetPriceQuote: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetPriceQuote: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetPriceQuote: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}

	// 3. Резолвим зону по координатам
	zones, err := uc.zoneRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetPriceQuote: failed to list zones: %v", err)
		return nil, fmt.Errorf("%w: failed to list zones: %v", ErrStoreUnavailable, err)
	}

	zone := uc.zoneResolver.Resolve(geomath.Point{Lat: req.Lat, Lng: req.Lng}, zones)

	// 4. Ищем зональное переопределение цены услуги
	var override *domain.ServiceZonePrice
	if zone != nil {
		override, err = uc.catalogRepo.GetZonePrice(ctx, req.ServiceID, zone.ID)
		if err != nil && !errors.Is(err, catalogRepo.ErrOverrideNotFound) {
			uc.logger.Error("GetPriceQuote: failed to get zone price: %v", err)
			return nil, fmt.Errorf("%w: failed to get zone price: %v", ErrStoreUnavailable, err)
		}
	}

	// 5. Считаем цену по цепочке приоритетов
	price, err := pricing.Resolve(service, zone, override)
	if err != nil {
		uc.logger.Error("GetPriceQuote: invalid pricing config for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPricingConfig, err)
	}

	resp := &Response{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		BasePrice:   price.Base,
		Adjustment:  price.Adjustment,
		TotalAmount: price.Total,
	}

	if zone != nil {
		id := zone.ID
		name := zone.Name
		resp.ZoneID = &id
		resp.ZoneName = &name
		uc.logger.Info("GetPriceQuote: resolved zone id=%d (%s), total=%.2f", zone.ID, zone.Name, price.Total)
	} else {
		uc.logger.Info("GetPriceQuote: point outside all zones, base price %.2f", price.Total)
	}

	return resp, nil
}

func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Lat < -90 || req.Lat > 90 {
		return fmt.Errorf("%w: lat must be in range [-90, 90]", ErrInvalidInput)
	}
	if req.Lng < -180 || req.Lng > 180 {
		return fmt.Errorf("%w: lng must be in range [-180, 180]", ErrInvalidInput)
	}
	return nil
}
