package domain

import (
	"time"

	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// CapacitySettings лимиты вместимости
// Хранятся как одна строка настроек; при отсутствии строки применяются дефолты
type CapacitySettings struct {
	MaxPerSlot int // максимум неотмененных бронирований на один слот
	MaxPerDay  int // максимум неотмененных бронирований на календарный день
}

// SlotUsage количество неотмененных бронирований на пару (дата, время начала)
// Производные данные: считаются по таблице бронирований, не хранятся отдельно
type SlotUsage struct {
	Date      time.Time
	StartTime types.TimeString
	Count     int
}
