package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotOffered возвращается, когда запрошенный слот не существует
	// в расписании на эту дату (выходной, нерабочий день или чужое время начала)
	ErrSlotNotOffered = errors.New("create_booking: slot is not offered on this date")

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrDayFull возвращается, когда достигнут дневной лимит бронирований
	ErrDayFull = errors.New("create_booking: day is full")

	// ErrInvalidPricingConfig возвращается при противоречивой конфигурации
	// ценообразования зоны - бронирование по сломанной цене не создается
	ErrInvalidPricingConfig = errors.New("create_booking: invalid pricing configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	// Клиенту следует повторить попытку позже
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
