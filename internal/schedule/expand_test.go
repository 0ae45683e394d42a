package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/ptr"
	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return ptr.Ptr(v)
}

// fullWeekTemplates расписание: будни 09:00-12:00 и 14:00-17:00, суббота 10:00-14:00
func fullWeekTemplates() []*domain.WeekdayTemplate {
	templates := make([]*domain.WeekdayTemplate, 0, 7)

	for weekday := 0; weekday <= 6; weekday++ {
		tpl := &domain.WeekdayTemplate{Weekday: weekday}

		switch weekday {
		case 0: // воскресенье - выходной
			tpl.IsActive = false
		case 6: // суббота - короткий день
			tpl.IsActive = true
			tpl.Start1, tpl.End1 = ts("10:00"), ts("14:00")
		default:
			tpl.IsActive = true
			tpl.Start1, tpl.End1 = ts("09:00"), ts("12:00")
			tpl.Start2, tpl.End2 = ts("14:00"), ts("17:00")
		}

		templates = append(templates, tpl)
	}

	return templates
}

func TestExpandMonth(t *testing.T) {
	t.Run("weekday gets template windows sorted by start", func(t *testing.T) {
		got := ExpandMonth(2026, time.March, fullWeekTemplates(), nil)

		// Март 2026: 31 день, все даты присутствуют в map
		assert.Len(t, got, 31)

		// 10 марта 2026 - вторник
		windows := got["2026-03-10"]
		require.Len(t, windows, 2)
		assert.Equal(t, types.TimeString("09:00"), windows[0].Start)
		assert.Equal(t, types.TimeString("12:00"), windows[0].End)
		assert.Equal(t, types.TimeString("14:00"), windows[1].Start)
	})

	t.Run("inactive weekday has zero windows", func(t *testing.T) {
		got := ExpandMonth(2026, time.March, fullWeekTemplates(), nil)

		// 8 марта 2026 - воскресенье
		assert.Empty(t, got["2026-03-08"])
	})

	t.Run("non-working day suppresses an active weekday", func(t *testing.T) {
		holiday := domain.NonWorkingDay{
			Date:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			Reason: ptr.Ptr("maintenance"),
		}

		got := ExpandMonth(2026, time.March, fullWeekTemplates(), []domain.NonWorkingDay{holiday})

		assert.Empty(t, got["2026-03-10"])
		// Соседние даты не затронуты
		assert.Len(t, got["2026-03-11"], 2)
	})

	t.Run("windows out of declaration order are sorted by start", func(t *testing.T) {
		tpl := &domain.WeekdayTemplate{
			Weekday:  2,
			IsActive: true,
		}
		tpl.Start1, tpl.End1 = ts("14:00"), ts("17:00")
		tpl.Start2, tpl.End2 = ts("09:00"), ts("12:00")

		got := ExpandMonth(2026, time.March, []*domain.WeekdayTemplate{tpl}, nil)

		windows := got["2026-03-10"]
		require.Len(t, windows, 2)
		assert.Equal(t, types.TimeString("09:00"), windows[0].Start)
		assert.Equal(t, types.TimeString("14:00"), windows[1].Start)
	})

	t.Run("half-set window pair is skipped", func(t *testing.T) {
		tpl := &domain.WeekdayTemplate{Weekday: 2, IsActive: true}
		tpl.Start1, tpl.End1 = ts("09:00"), ts("12:00")
		tpl.Start2 = ts("14:00") // End2 отсутствует

		got := ExpandMonth(2026, time.March, []*domain.WeekdayTemplate{tpl}, nil)

		require.Len(t, got["2026-03-10"], 1)
		assert.Equal(t, types.TimeString("09:00"), got["2026-03-10"][0].Start)
	})

	t.Run("overlapping admin windows pass through as-is", func(t *testing.T) {
		tpl := &domain.WeekdayTemplate{Weekday: 2, IsActive: true}
		tpl.Start1, tpl.End1 = ts("09:00"), ts("13:00")
		tpl.Start2, tpl.End2 = ts("12:00"), ts("15:00")

		got := ExpandMonth(2026, time.March, []*domain.WeekdayTemplate{tpl}, nil)

		assert.Len(t, got["2026-03-10"], 2)
	})

	t.Run("idempotent expansion", func(t *testing.T) {
		templates := fullWeekTemplates()
		holidays := []domain.NonWorkingDay{{
			Date: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		}}

		first := ExpandMonth(2026, time.March, templates, holidays)
		second := ExpandMonth(2026, time.March, templates, holidays)

		assert.Equal(t, first, second)
	})
}

func TestMonthAvailability_HasSlot(t *testing.T) {
	got := ExpandMonth(2026, time.March, fullWeekTemplates(), nil)
	tuesday := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, got.HasSlot(tuesday, "14:00"))
	assert.False(t, got.HasSlot(tuesday, "13:00"))

	sunday := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
	assert.False(t, got.HasSlot(sunday, "09:00"))

	window := got.WindowAt(tuesday, "14:00")
	require.NotNil(t, window)
	assert.Equal(t, types.TimeString("17:00"), window.End)
}

func TestWindowsForDate(t *testing.T) {
	tuesday := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	windows := WindowsForDate(tuesday, fullWeekTemplates(), nil)
	assert.Len(t, windows, 2)

	holidays := []domain.NonWorkingDay{{Date: tuesday}}
	assert.Empty(t, WindowsForDate(tuesday, fullWeekTemplates(), holidays))
}
