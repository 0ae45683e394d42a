package get_month_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GeoBookingService/internal/capacity"
	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-GeoBookingService/internal/schedule"
)

// UseCase use case расчета доступности на месяц
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute разворачивает шаблоны недели в календарь месяца и накладывает
// остаточную вместимость по фактическим бронированиям
// Ответ содержит каждую дату месяца, включая закрытые дни с пустым
// списком слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthAvailability: year=%d, month=%d", req.Year, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	month := time.Month(req.Month)
	from := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	// 2. Загружаем расписание и исключения месяца
	templates, err := uc.scheduleRepo.ListTemplates(ctx)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to list templates: %v", err)
		return nil, fmt.Errorf("%w: failed to list templates: %v", ErrStoreUnavailable, err)
	}

	nonWorkingDays, err := uc.scheduleRepo.ListNonWorkingDays(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to list non-working days: %v", err)
		return nil, fmt.Errorf("%w: failed to list non-working days: %v", ErrStoreUnavailable, err)
	}

	// 3. Загружаем фактическую занятость слотов
	usage, err := uc.bookingRepo.GetSlotUsage(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetMonthAvailability: failed to get slot usage: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot usage: %v", ErrStoreUnavailable, err)
	}

	// 4. Лимиты вместимости, при отсутствии строки - дефолты
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			settings = &domain.CapacitySettings{
				MaxPerSlot: domain.DefaultMaxPerSlot,
				MaxPerDay:  domain.DefaultMaxPerDay,
			}
		} else {
			uc.logger.Error("GetMonthAvailability: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrStoreUnavailable, err)
		}
	}

	// 5. Разворачиваем месяц и считаем остатки
	calendar := schedule.ExpandMonth(req.Year, month, templates, nonWorkingDays)

	daysInMonth := to.Day()
	days := make([]Day, 0, daysInMonth)

	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		date := time.Date(req.Year, month, dayNum, 0, 0, 0, 0, time.UTC)
		windows := calendar[date.Format(domain.DateFormat)]

		slots := make([]Slot, 0, len(windows))
		for _, w := range windows {
			slots = append(slots, Slot{
				Start:     w.Start.String(),
				End:       w.End.String(),
				Remaining: capacity.Remaining(date, w.Start, usage, *settings),
			})
		}

		days = append(days, Day{
			Date:  date.Format(domain.DateFormat),
			Slots: slots,
		})
	}

	uc.logger.Info("GetMonthAvailability: built calendar for %d-%02d, days=%d", req.Year, req.Month, len(days))

	return &Response{
		Year:  req.Year,
		Month: req.Month,
		Days:  days,
	}, nil
}

func validateRequest(req *Request) error {
	if req.Year < 2000 || req.Year > 2100 {
		return fmt.Errorf("%w: year must be between 2000 and 2100", ErrInvalidInput)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	return nil
}
