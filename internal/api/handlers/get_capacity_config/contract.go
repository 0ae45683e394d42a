package get_capacity_config

import (
	"context"

	"github.com/m04kA/SMC-GeoBookingService/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context) (*models.CapacityConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
