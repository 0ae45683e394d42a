package get_price_quote

import (
	getPriceQuote "github.com/m04kA/SMC-GeoBookingService/internal/usecase/get_price_quote"
)

// PriceQuoteResponse HTTP модель котировки цены
type PriceQuoteResponse struct {
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	ZoneID      *int64  `json:"zoneId,omitempty"`
	ZoneName    *string `json:"zoneName,omitempty"`
	BasePrice   float64 `json:"basePrice"`
	Adjustment  float64 `json:"adjustment"`
	TotalAmount float64 `json:"totalAmount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPriceQuote.Response) *PriceQuoteResponse {
	return &PriceQuoteResponse{
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		ZoneID:      resp.ZoneID,
		ZoneName:    resp.ZoneName,
		BasePrice:   resp.BasePrice,
		Adjustment:  resp.Adjustment,
		TotalAmount: resp.TotalAmount,
	}
}
