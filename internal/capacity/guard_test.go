package capacity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

var testDate = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func usageFor(count int) []domain.SlotUsage {
	return []domain.SlotUsage{
		{Date: testDate, StartTime: "14:00", Count: count},
	}
}

func TestCheck(t *testing.T) {
	settings := domain.CapacitySettings{MaxPerSlot: 5, MaxPerDay: 20}

	t.Run("empty usage is available", func(t *testing.T) {
		assert.NoError(t, Check(testDate, "14:00", nil, settings))
	})

	t.Run("slot below limit is available", func(t *testing.T) {
		assert.NoError(t, Check(testDate, "14:00", usageFor(4), settings))
	})

	t.Run("slot at limit is full strict less-than", func(t *testing.T) {
		assert.ErrorIs(t, Check(testDate, "14:00", usageFor(5), settings), ErrSlotFull)
	})

	t.Run("day limit applies across slots", func(t *testing.T) {
		usage := []domain.SlotUsage{
			{Date: testDate, StartTime: "09:00", Count: 5},
			{Date: testDate, StartTime: "10:00", Count: 5},
			{Date: testDate, StartTime: "11:00", Count: 5},
			{Date: testDate, StartTime: "12:00", Count: 4},
		}

		// 19 из 20 за день - любой открытый слот еще доступен
		assert.NoError(t, Check(testDate, "14:00", usage, settings))

		usage = append(usage, domain.SlotUsage{Date: testDate, StartTime: "13:00", Count: 1})

		// 20 из 20 - день заполнен, хотя слот 14:00 пуст
		assert.ErrorIs(t, Check(testDate, "14:00", usage, settings), ErrDayFull)
	})

	t.Run("other dates do not affect the day total", func(t *testing.T) {
		otherDate := testDate.AddDate(0, 0, 1)
		usage := []domain.SlotUsage{
			{Date: otherDate, StartTime: "14:00", Count: 100},
		}

		assert.NoError(t, Check(testDate, "14:00", usage, settings))
	})

	t.Run("slot full reported before day full", func(t *testing.T) {
		tight := domain.CapacitySettings{MaxPerSlot: 1, MaxPerDay: 1}

		assert.ErrorIs(t, Check(testDate, "14:00", usageFor(1), tight), ErrSlotFull)
	})
}

func TestRemaining(t *testing.T) {
	settings := domain.CapacitySettings{MaxPerSlot: 5, MaxPerDay: 6}

	t.Run("limited by slot capacity", func(t *testing.T) {
		assert.Equal(t, 2, Remaining(testDate, "14:00", usageFor(3), settings))
	})

	t.Run("limited by day capacity", func(t *testing.T) {
		usage := []domain.SlotUsage{
			{Date: testDate, StartTime: "09:00", Count: 5},
		}

		// По слоту свободно 5, но по дню остался 1
		assert.Equal(t, 1, Remaining(testDate, "14:00", usage, settings))
	})

	t.Run("never negative", func(t *testing.T) {
		assert.Equal(t, 0, Remaining(testDate, "14:00", usageFor(7), settings))
	})
}

func TestRemainingMatchesCheck(t *testing.T) {
	settings := domain.CapacitySettings{MaxPerSlot: 3, MaxPerDay: 4}

	for count := 0; count <= 5; count++ {
		usage := usageFor(count)
		err := Check(testDate, types.TimeString("14:00"), usage, settings)
		remaining := Remaining(testDate, "14:00", usage, settings)

		if err == nil {
			assert.Greater(t, remaining, 0, "count=%d", count)
		} else {
			assert.Equal(t, 0, remaining, "count=%d", count)
		}
	}
}
