package get_price_quote

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("get_price_quote: service not found")

	// ErrInvalidPricingConfig возвращается при противоречивой конфигурации
	// ценообразования - котировка по сломанной цене не выдается
	ErrInvalidPricingConfig = errors.New("get_price_quote: invalid pricing configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_price_quote: invalid input data")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("get_price_quote: store unavailable")
)
