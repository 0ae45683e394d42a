package domain

import (
	"time"

	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// MaxWindowsPerDay максимальное число временных окон в шаблоне на один день недели
const MaxWindowsPerDay = 3

// WeekdayTemplate строка недельного шаблона доступности для одного дня недели
// Weekday: 0-6, начиная с воскресенья (совпадает с time.Weekday)
// Окно считается незаданным, если хотя бы одна из границ отсутствует
type WeekdayTemplate struct {
	ID       int64
	Weekday  int
	IsActive bool
	Start1   *types.TimeString
	End1     *types.TimeString
	Start2   *types.TimeString
	End2     *types.TimeString
	Start3   *types.TimeString
	End3     *types.TimeString
}

// Windows возвращает заданные пары (start, end) шаблона в порядке объявления
// Пары с отсутствующей границей пропускаются
func (t *WeekdayTemplate) Windows() [][2]types.TimeString {
	pairs := [][2]*types.TimeString{
		{t.Start1, t.End1},
		{t.Start2, t.End2},
		{t.Start3, t.End3},
	}

	windows := make([][2]types.TimeString, 0, MaxWindowsPerDay)
	for _, p := range pairs {
		if p[0] == nil || p[1] == nil {
			continue
		}
		windows = append(windows, [2]types.TimeString{*p[0], *p[1]})
	}

	return windows
}

// NonWorkingDay конкретная календарная дата-исключение
// Перекрывает шаблон: в этот день слотов нет независимо от дня недели
type NonWorkingDay struct {
	ID     int64
	Date   time.Time
	Reason *string
}

// TimeWindow конкретное бронируемое окно: дата + начало + конец
// Идентичность слота определяется парой (Date, Start) - система бронирует
// по времени начала, длительность информационна
type TimeWindow struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString
}

// SlotID возвращает стабильный идентификатор слота вида "2026-03-10T14:00"
func (w TimeWindow) SlotID() string {
	return w.Date.Format(DateFormat) + "T" + w.Start.String()
}
