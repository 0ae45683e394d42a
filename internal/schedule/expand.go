// Package schedule разворачивает недельный шаблон доступности
// в конкретные бронируемые окна календарного месяца
package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// MonthAvailability результат разворачивания месяца: дата (YYYY-MM-DD) ->
// упорядоченный по времени начала список окон. Даты без окон присутствуют
// в map с пустым списком, чтобы вызывающему коду не требовалось отличать
// "нет ключа" от "нет окон"
type MonthAvailability map[string][]domain.TimeWindow

// ExpandMonth разворачивает месяц в конкретные окна.
//
// Функция чистая и детерминированная: повторный вызов с теми же
// (templates, nonWorkingDays) дает идентичный результат - UI
// перезапрашивает расписание при каждой навигации по календарю.
//
// Правила по каждой дате месяца:
//   - дата входит в nonWorkingDays -> ноль окон независимо от дня недели
//   - строка шаблона для дня недели отсутствует или неактивна -> ноль окон
//   - иначе берутся все заданные пары (start, end), сортировка по start
//
// Пересечения окон, введенные администратором, движок не валидирует
// и пропускает как есть
func ExpandMonth(year int, month time.Month, templates []*domain.WeekdayTemplate, nonWorkingDays []domain.NonWorkingDay) MonthAvailability {
	byWeekday := make(map[int]*domain.WeekdayTemplate, len(templates))
	for _, tpl := range templates {
		byWeekday[tpl.Weekday] = tpl
	}

	exceptions := make(map[string]struct{}, len(nonWorkingDays))
	for _, day := range nonWorkingDays {
		exceptions[day.Date.Format(domain.DateFormat)] = struct{}{}
	}

	result := make(MonthAvailability)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for date := first; date.Month() == month; date = date.AddDate(0, 0, 1) {
		key := date.Format(domain.DateFormat)
		result[key] = expandDate(date, byWeekday[int(date.Weekday())], exceptions)
	}

	return result
}

// WindowsForDate возвращает окна одной даты по тем же правилам, что ExpandMonth
func WindowsForDate(date time.Time, templates []*domain.WeekdayTemplate, nonWorkingDays []domain.NonWorkingDay) []domain.TimeWindow {
	var tpl *domain.WeekdayTemplate
	for _, t := range templates {
		if t.Weekday == int(date.Weekday()) {
			tpl = t
			break
		}
	}

	exceptions := make(map[string]struct{}, len(nonWorkingDays))
	for _, day := range nonWorkingDays {
		exceptions[day.Date.Format(domain.DateFormat)] = struct{}{}
	}

	return expandDate(date, tpl, exceptions)
}

// HasSlot возвращает true, если среди окон даты есть слот с данным началом.
// Два окна с одинаковым началом на одну дату - один и тот же слот,
// даже если времена окончания различаются
func (m MonthAvailability) HasSlot(date time.Time, start types.TimeString) bool {
	windows, ok := m[date.Format(domain.DateFormat)]
	if !ok {
		return false
	}

	for _, w := range windows {
		if w.Start == start {
			return true
		}
	}

	return false
}

// WindowAt возвращает окно с данным началом или nil
func (m MonthAvailability) WindowAt(date time.Time, start types.TimeString) *domain.TimeWindow {
	windows, ok := m[date.Format(domain.DateFormat)]
	if !ok {
		return nil
	}

	for i := range windows {
		if windows[i].Start == start {
			return &windows[i]
		}
	}

	return nil
}

func expandDate(date time.Time, tpl *domain.WeekdayTemplate, exceptions map[string]struct{}) []domain.TimeWindow {
	windows := make([]domain.TimeWindow, 0, domain.MaxWindowsPerDay)

	if _, excluded := exceptions[date.Format(domain.DateFormat)]; excluded {
		return windows
	}

	if tpl == nil || !tpl.IsActive {
		return windows
	}

	for _, pair := range tpl.Windows() {
		windows = append(windows, domain.TimeWindow{
			Date:  date,
			Start: pair[0],
			End:   pair[1],
		})
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Start.IsBefore(windows[j].Start)
	})

	return windows
}
