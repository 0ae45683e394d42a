package get_price_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-GeoBookingService/internal/api/handlers"
	getPriceQuote "github.com/m04kA/SMC-GeoBookingService/internal/usecase/get_price_quote"
)

const (
	msgMissingServiceID     = "параметр serviceId обязателен"
	msgInvalidServiceID     = "некорректный ID услуги"
	msgMissingCoordinates   = "параметры lat и lng обязательны"
	msgInvalidCoordinates   = "некорректные координаты"
	msgServiceNotFound      = "услуга не найдена"
	msgInvalidPricingConfig = "некорректная конфигурация ценообразования зоны"
	msgStoreUnavailable     = "сервис временно недоступен, повторите попытку позже"
)

type Handler struct {
	useCase GetPriceQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetPriceQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/price-quote
// Query params: serviceId (required), lat (required), lng (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /price-quote - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /price-quote - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		h.logger.Warn("GET /price-quote - Missing coordinates")
		handlers.RespondBadRequest(w, msgMissingCoordinates)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		h.logger.Warn("GET /price-quote - Invalid lat: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		h.logger.Warn("GET /price-quote - Invalid lng: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getPriceQuote.Request{
		ServiceID: serviceID,
		Lat:       lat,
		Lng:       lng,
	})
	if err != nil {
		switch {
		case errors.Is(err, getPriceQuote.ErrServiceNotFound):
			h.logger.Warn("GET /price-quote - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getPriceQuote.ErrInvalidInput):
			h.logger.Warn("GET /price-quote - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidCoordinates)

		case errors.Is(err, getPriceQuote.ErrInvalidPricingConfig):
			h.logger.Error("GET /price-quote - Invalid pricing config: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidPricingConfig)

		case errors.Is(err, getPriceQuote.ErrStoreUnavailable):
			h.logger.Error("GET /price-quote - Store unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /price-quote - Failed to get quote: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /price-quote - Quote calculated: service_id=%d, total=%.2f", serviceID, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
