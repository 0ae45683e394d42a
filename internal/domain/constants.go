package domain

// Default capacity values
// Применяются, когда строка настроек отсутствует в хранилище
const (
	DefaultMaxPerSlot = 1
	DefaultMaxPerDay  = 10
)

// Business validation constants
const (
	MinMaxPerSlot  = 1
	MaxMaxPerSlot  = 100
	MinMaxPerDay   = 1
	MaxMaxPerDay   = 1000
	MaxNotesLength = 500

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses список статусов, не занимающих вместимость слота
var CancelledStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
}
