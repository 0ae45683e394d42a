package pricing

import "errors"

// ErrInvalidConfig возвращается при несогласованной конфигурации
// ценообразования зоны (pricing_type без соответствующего поля цены).
// Такая ошибка всплывает наружу, а не подменяется базовой ценой
var ErrInvalidConfig = errors.New("pricing: invalid zone pricing configuration")
