package get_price_quote

// Request модель запроса котировки цены
type Request struct {
	ServiceID int64   // ID услуги
	Lat       float64 // Широта точки обслуживания
	Lng       float64 // Долгота точки обслуживания
}

// Response котировка цены для точки обслуживания
// Котировка ни к чему не обязывает: цена фиксируется только
// в момент создания бронирования
type Response struct {
	ServiceID   int64   // ID услуги
	ServiceName string  // Название услуги
	ZoneID      *int64  // ID зоны (nil = вне всех зон)
	ZoneName    *string // Название зоны
	BasePrice   float64 // Базовая цена услуги
	Adjustment  float64 // Зональная корректировка (может быть отрицательной)
	TotalAmount float64 // Итоговая сумма
}
