package create_booking

import (
	"time"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-GeoBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-GeoBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2026-03-10"
	SlotStart string  `json:"slotStart"` // "09:00"
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Notes     *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	ServiceID   int64   `json:"serviceId"`
	ZoneID      *int64  `json:"zoneId,omitempty"`
	Date        string  `json:"date"`
	SlotStart   string  `json:"slotStart"`
	SlotEnd     string  `json:"slotEnd"`
	Status      string  `json:"status"`
	ServiceName string  `json:"serviceName"`
	BasePrice   float64 `json:"basePrice"`
	Adjustment  float64 `json:"adjustment"`
	TotalAmount float64 `json:"totalAmount"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slotStart, err := types.NewTimeStringFromString(r.SlotStart)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
		Date:      date,
		SlotStart: slotStart,
		Lat:       r.Lat,
		Lng:       r.Lng,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		ServiceID:   resp.ServiceID,
		ZoneID:      resp.ZoneID,
		Date:        resp.Date.Format(domain.DateFormat),
		SlotStart:   resp.SlotStart.String(),
		SlotEnd:     resp.SlotEnd.String(),
		Status:      resp.Status,
		ServiceName: resp.ServiceName,
		BasePrice:   resp.BasePrice,
		Adjustment:  resp.Adjustment,
		TotalAmount: resp.TotalAmount,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
