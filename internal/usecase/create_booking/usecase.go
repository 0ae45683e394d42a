package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-GeoBookingService/internal/capacity"
	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-GeoBookingService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-GeoBookingService/internal/pricing"
	"github.com/m04kA/SMC-GeoBookingService/internal/schedule"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	zoneRepo     ZoneRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	zoneResolver ZoneResolver
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// notifyClient может быть nil, если уведомления отключены конфигурацией
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	zoneRepo ZoneRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	zoneResolver ZoneResolver,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		zoneRepo:     zoneRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		zoneResolver: zoneResolver,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка вместимости и вставка выполняются в сериализуемой транзакции
// с блокировкой строк даты, поэтому два конкурентных запроса на последний
// слот не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, date=%s, slot=%s, lat=%f, lng=%f",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.SlotStart, req.Lat, req.Lng)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}

	// 4. Проверяем, что слот существует в расписании на эту дату
	templates, err := uc.scheduleRepo.ListTemplates(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list templates: %v", err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrStoreUnavailable, err)
	}

	nonWorkingDays, err := uc.scheduleRepo.ListNonWorkingDays(ctx, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list non-working days: %v", err)
		return nil, fmt.Errorf("%w: failed to list non-working days: %v", ErrStoreUnavailable, err)
	}

	windows := schedule.WindowsForDate(req.Date, templates, nonWorkingDays)

	var window *domain.TimeWindow
	for i := range windows {
		if windows[i].Start == req.SlotStart {
			window = &windows[i]
			break
		}
	}

	if window == nil {
		uc.logger.Warn("CreateBooking: slot %s is not offered on %s",
			req.SlotStart, req.Date.Format(domain.DateFormat))
		return nil, ErrSlotNotOffered
	}

	// 5. Резолвим зону по координатам и фиксируем расчет цены
	zones, err := uc.zoneRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list zones: %v", err)
		return nil, fmt.Errorf("%w: failed to list zones: %v", ErrStoreUnavailable, err)
	}

	zone := uc.zoneResolver.Resolve(geomath.Point{Lat: req.Lat, Lng: req.Lng}, zones)

	var override *domain.ServiceZonePrice
	if zone != nil {
		override, err = uc.catalogRepo.GetZonePrice(ctx, req.ServiceID, zone.ID)
		if err != nil && !errors.Is(err, catalogRepo.ErrOverrideNotFound) {
			uc.logger.Error("CreateBooking: failed to get zone price: %v", err)
			return nil, fmt.Errorf("%w: failed to get zone price: %v", ErrStoreUnavailable, err)
		}
	}

	price, err := pricing.Resolve(service, zone, override)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidConfig) {
			uc.logger.Error("CreateBooking: invalid pricing config for service=%d zone=%v: %v",
				req.ServiceID, zoneIDForLog(zone), err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidPricingConfig, err)
		}
		uc.logger.Error("CreateBooking: pricing error: %v", err)
		return nil, fmt.Errorf("%w: pricing error: %v", ErrInternal, err)
	}

	// 6. Получаем лимиты вместимости
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			settings = &domain.CapacitySettings{
				MaxPerSlot: domain.DefaultMaxPerSlot,
				MaxPerDay:  domain.DefaultMaxPerDay,
			}
			uc.logger.Info("CreateBooking: capacity settings not found, using defaults")
		} else {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrStoreUnavailable, err)
		}
	}

	// 7. Проверка вместимости и вставка в сериализуемой транзакции
	// Проигравший гонку получает от Postgres ошибку сериализации (40001)
	// на SELECT FOR UPDATE или на COMMIT. Транзакция повторяется один раз:
	// свежий снимок видит зафиксированное бронирование победителя, и
	// повторная проверка вместимости возвращает ErrSlotFull/ErrDayFull
	result, err := uc.reserve(ctx, req, window, service, zone, price, settings)
	if err != nil && isSerializationFailure(err) {
		uc.logger.Warn("CreateBooking: serialization failure, retrying: %v", err)
		result, err = uc.reserve(ctx, req, window, service, zone, price, settings)
	}

	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		// Ошибка начала или фиксации транзакции
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalAmount)

	// 8. Уведомляем о созданном бронировании
	// Бронирование уже зафиксировано, поэтому сбой уведомления не откатывает его
	if uc.notifyClient != nil {
		event := notifyservice.BookingCreatedEvent{
			BookingID:     result.ID,
			UserID:        result.UserID,
			ServiceName:   result.ServiceName,
			ScheduledDate: result.ScheduledDate.Format(domain.DateFormat),
			SlotStart:     result.SlotStart.String(),
			SlotEnd:       result.SlotEnd.String(),
			TotalAmount:   result.TotalAmount,
		}
		if err := uc.notifyClient.NotifyBookingCreatedWithGracefulDegradation(ctx, event); err != nil {
			uc.logger.Warn("CreateBooking: notification failed for booking id=%d: %v", result.ID, err)
		}
	}

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		ServiceID:   result.ServiceID,
		ZoneID:      result.ZoneID,
		Date:        result.ScheduledDate,
		SlotStart:   result.SlotStart,
		SlotEnd:     result.SlotEnd,
		Status:      string(result.Status),
		ServiceName: result.ServiceName,
		BasePrice:   result.BasePrice,
		Adjustment:  result.Adjustment,
		TotalAmount: result.TotalAmount,
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// reserve выполняет проверку вместимости и вставку бронирования
// в одной сериализуемой транзакции
func (uc *UseCase) reserve(
	ctx context.Context,
	req *Request,
	window *domain.TimeWindow,
	service *domain.Service,
	zone *domain.Zone,
	price domain.PriceBreakdown,
	settings *domain.CapacitySettings,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем бронирования даты с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for date: %v", err)
			return fmt.Errorf("%w: failed to get bookings for date: %w", ErrStoreUnavailable, err)
		}

		// 7.2. Проверяем лимиты по актуальному состоянию
		usage := usageFromBookings(bookings)

		if err := capacity.Check(req.Date, req.SlotStart, usage, *settings); err != nil {
			if errors.Is(err, capacity.ErrSlotFull) {
				uc.logger.Warn("CreateBooking: slot %s on %s is full",
					req.SlotStart, req.Date.Format(domain.DateFormat))
				return ErrSlotFull
			}
			if errors.Is(err, capacity.ErrDayFull) {
				uc.logger.Warn("CreateBooking: day %s is full", req.Date.Format(domain.DateFormat))
				return ErrDayFull
			}
			return fmt.Errorf("%w: capacity check: %v", ErrInternal, err)
		}

		// 7.3. Создаем бронирование с зафиксированной ценой
		booking := &domain.Booking{
			UserID:        req.UserID,
			ServiceID:     req.ServiceID,
			ZoneID:        zoneIDOrNil(zone),
			ScheduledDate: req.Date,
			SlotStart:     window.Start,
			SlotEnd:       window.End,
			Status:        domain.StatusPending,
			Lat:           req.Lat,
			Lng:           req.Lng,
			ServiceName:   service.Name,
			BasePrice:     price.Base,
			Adjustment:    price.Adjustment,
			TotalAmount:   price.Total,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// usageFromBookings агрегирует бронирования даты в счетчики по времени начала
func usageFromBookings(bookings []*domain.Booking) []domain.SlotUsage {
	usage := make([]domain.SlotUsage, 0)

	for _, b := range bookings {
		if !b.CountsAgainstCapacity() {
			continue
		}

		found := false
		for i := range usage {
			if usage[i].StartTime == b.SlotStart {
				usage[i].Count++
				found = true
				break
			}
		}

		if !found {
			usage = append(usage, domain.SlotUsage{
				Date:      b.ScheduledDate,
				StartTime: b.SlotStart,
				Count:     1,
			})
		}
	}

	return usage
}

// isSerializationFailure возвращает true для ошибок Postgres класса 40
// (transaction_rollback): 40001 serialization_failure и 40P01 deadlock_detected
// Такие транзакции безопасно повторить
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code.Class() == "40"
}

// isBusinessError возвращает true для ошибок, которые должны дойти
// до клиента без дополнительной обертки
func isBusinessError(err error) bool {
	return errors.Is(err, ErrSlotFull) ||
		errors.Is(err, ErrDayFull) ||
		errors.Is(err, ErrSlotNotOffered) ||
		errors.Is(err, ErrInvalidPricingConfig) ||
		errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrInternal)
}

func zoneIDOrNil(zone *domain.Zone) *int64 {
	if zone == nil {
		return nil
	}
	id := zone.ID
	return &id
}

func zoneIDForLog(zone *domain.Zone) interface{} {
	if zone == nil {
		return "none"
	}
	return zone.ID
}
