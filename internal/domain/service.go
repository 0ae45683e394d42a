package domain

import "time"

// Service услуга каталога с базовой ценой
// Справочные данные, принадлежат административному контуру и
// читаются сервисом только на время расчета цены
type Service struct {
	ID               int64
	Name             string
	BasePrice        float64
	ReservationPrice *float64 // опциональный депозит при бронировании
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ServiceZonePrice переопределение цены услуги в конкретной зоне
// Активное переопределение имеет приоритет над правилом самой зоны
type ServiceZonePrice struct {
	ID          int64
	ServiceID   int64
	ZoneID      int64
	CustomPrice float64
	IsActive    bool
}

// PriceBreakdown результат расчета цены
type PriceBreakdown struct {
	Base       float64 // базовая цена услуги
	Adjustment float64 // Total - Base, может быть отрицательной (зона-скидка)
	Total      float64
}
