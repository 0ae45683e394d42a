package get_month_availability

import (
	getMonthAvailability "github.com/m04kA/SMC-GeoBookingService/internal/usecase/get_month_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Remaining int    `json:"remaining"`
}

// DayResponse HTTP модель дня месяца
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// MonthAvailabilityResponse HTTP модель календаря месяца
type MonthAvailabilityResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthAvailability.Response) *MonthAvailabilityResponse {
	days := make([]DayResponse, 0, len(resp.Days))

	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{
				Start:     slot.Start,
				End:       slot.End,
				Remaining: slot.Remaining,
			})
		}
		days = append(days, DayResponse{Date: day.Date, Slots: slots})
	}

	return &MonthAvailabilityResponse{
		Year:  resp.Year,
		Month: resp.Month,
		Days:  days,
	}
}
