package create_booking

import (
	"time"

	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	SlotStart types.TimeString // Время начала слота (например, "09:00")
	Lat       float64          // Широта точки обслуживания
	Lng       float64          // Долгота точки обслуживания
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	UserID    int64            // ID пользователя
	ServiceID int64            // ID услуги
	ZoneID    *int64           // ID зоны (nil = вне всех зон)
	Date      time.Time        // Дата бронирования
	SlotStart types.TimeString // Время начала
	SlotEnd   types.TimeString // Время окончания
	Status    string           // Статус бронирования

	// Зафиксированный расчет цены
	ServiceName string  // Название услуги
	BasePrice   float64 // Базовая цена услуги
	Adjustment  float64 // Зональная корректировка
	TotalAmount float64 // Итоговая сумма
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
