package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-GeoBookingService/internal/api/handlers"
	getMonthAvailability "github.com/m04kA/SMC-GeoBookingService/internal/usecase/get_month_availability"
)

const (
	msgMissingYear      = "параметр year обязателен"
	msgMissingMonth     = "параметр month обязателен"
	msgInvalidYear      = "некорректный год"
	msgInvalidMonth     = "некорректный месяц, ожидается число от 1 до 12"
	msgStoreUnavailable = "сервис временно недоступен, повторите попытку позже"
)

type Handler struct {
	useCase GetMonthAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: year (required), month (required, 1-12)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		h.logger.Warn("GET /availability - Missing year")
		handlers.RespondBadRequest(w, msgMissingYear)
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /availability - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getMonthAvailability.Request{
		Year:  year,
		Month: month,
	})
	if err != nil {
		switch {
		case errors.Is(err, getMonthAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: year=%d, month=%d", year, month)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getMonthAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to build calendar: year=%d, month=%d, error=%v",
				year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Calendar built successfully: year=%d, month=%d, days=%d",
		year, month, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
