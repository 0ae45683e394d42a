package notifyservice

// BookingCreatedEvent событие о созданном бронировании для NotifyService
type BookingCreatedEvent struct {
	BookingID     int64   `json:"booking_id"`
	UserID        int64   `json:"user_id"`
	ServiceName   string  `json:"service_name"`
	ScheduledDate string  `json:"scheduled_date"` // YYYY-MM-DD
	SlotStart     string  `json:"slot_start"`     // HH:MM
	SlotEnd       string  `json:"slot_end"`       // HH:MM
	TotalAmount   float64 `json:"total_amount"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
