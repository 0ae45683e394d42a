package capacity

import "errors"

var (
	// ErrSlotFull возвращается, когда слот уже набрал maxPerSlot бронирований
	ErrSlotFull = errors.New("capacity: slot is full")

	// ErrDayFull возвращается, когда день уже набрал maxPerDay бронирований,
	// даже если отдельные слоты дня еще не заполнены
	ErrDayFull = errors.New("capacity: day is full")
)
