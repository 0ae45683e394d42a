// Package capacity применяет лимиты вместимости к слотам и дням.
// Все проверки считают только неотмененные бронирования
package capacity

import (
	"time"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// Check проверяет, допускает ли вместимость новое бронирование на
// (date, slotStart) при существующих счетчиках usage.
//
// Слот доступен, когда выполняются оба условия (строгое "меньше"):
//   - count(date, slotStart) < settings.MaxPerSlot
//   - sum(count(date, *)) < settings.MaxPerDay
//
// Возвращает nil, ErrSlotFull или ErrDayFull. Проверка слота идет первой:
// при одновременном исчерпании слота и дня вызывающий получает ErrSlotFull
func Check(date time.Time, slotStart types.TimeString, usage []domain.SlotUsage, settings domain.CapacitySettings) error {
	slotCount := 0
	dayTotal := 0

	dateKey := date.Format(domain.DateFormat)
	for _, u := range usage {
		if u.Date.Format(domain.DateFormat) != dateKey {
			continue
		}

		dayTotal += u.Count
		if u.StartTime == slotStart {
			slotCount += u.Count
		}
	}

	if slotCount >= settings.MaxPerSlot {
		return ErrSlotFull
	}

	if dayTotal >= settings.MaxPerDay {
		return ErrDayFull
	}

	return nil
}

// Remaining возвращает число свободных мест слота с учетом обоих лимитов
// Отрицательные значения обрезаются до нуля
func Remaining(date time.Time, slotStart types.TimeString, usage []domain.SlotUsage, settings domain.CapacitySettings) int {
	slotCount := 0
	dayTotal := 0

	dateKey := date.Format(domain.DateFormat)
	for _, u := range usage {
		if u.Date.Format(domain.DateFormat) != dateKey {
			continue
		}

		dayTotal += u.Count
		if u.StartTime == slotStart {
			slotCount += u.Count
		}
	}

	bySlot := settings.MaxPerSlot - slotCount
	byDay := settings.MaxPerDay - dayTotal

	remaining := bySlot
	if byDay < remaining {
		remaining = byDay
	}
	if remaining < 0 {
		remaining = 0
	}

	return remaining
}
