package update_capacity_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GeoBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GeoBookingService/internal/service/config"
	"github.com/m04kA/SMC-GeoBookingService/internal/service/config/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные лимиты вместимости"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCapacityConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Update(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /config - Invalid capacity limits: maxPerSlot=%d, maxPerDay=%d",
				req.MaxPerSlot, req.MaxPerDay)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /config - Failed to update config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /config - Config updated successfully: maxPerSlot=%d, maxPerDay=%d",
		req.MaxPerSlot, req.MaxPerDay)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
