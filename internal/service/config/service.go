package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-GeoBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-GeoBookingService/internal/service/config/models"
)

// Service сервис конфигурации вместимости и расписания
type Service struct {
	settingsRepo SettingsRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(settingsRepo SettingsRepository, scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Get возвращает текущие лимиты вместимости и шаблоны недели
// При отсутствии строки настроек применяются дефолтные лимиты
func (s *Service) Get(ctx context.Context) (*models.CapacityConfigResponse, error) {
	s.logger.Info("Get: fetching capacity config")

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: capacity settings not found, applying defaults")
			settings = &domain.CapacitySettings{
				MaxPerSlot: domain.DefaultMaxPerSlot,
				MaxPerDay:  domain.DefaultMaxPerDay,
			}
		} else {
			s.logger.Error("Get: settings repository error: %v", err)
			return nil, fmt.Errorf("%w: Get - settings repository error: %v", ErrInternal, err)
		}
	}

	templates, err := s.scheduleRepo.ListTemplates(ctx)
	if err != nil {
		s.logger.Error("Get: schedule repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - schedule repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched capacity config, templates=%d", len(templates))
	return &models.CapacityConfigResponse{
		MaxPerSlot: settings.MaxPerSlot,
		MaxPerDay:  settings.MaxPerDay,
		Templates:  models.FromDomainTemplates(templates),
	}, nil
}

// Update обновляет лимиты вместимости
// Новые лимиты применяются только к будущим попыткам бронирования,
// уже созданные бронирования не пересматриваются
func (s *Service) Update(ctx context.Context, req *models.UpdateCapacityConfigRequest) error {
	s.logger.Info("Update: updating capacity config maxPerSlot=%d maxPerDay=%d", req.MaxPerSlot, req.MaxPerDay)

	if err := s.validate(req); err != nil {
		s.logger.Warn("Update: invalid capacity config: %v", err)
		return err
	}

	if err := s.settingsRepo.Update(ctx, req.ToDomain()); err != nil {
		s.logger.Error("Update: settings repository error: %v", err)
		return fmt.Errorf("%w: Update - settings repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated capacity config")
	return nil
}

func (s *Service) validate(req *models.UpdateCapacityConfigRequest) error {
	if req.MaxPerSlot < domain.MinMaxPerSlot || req.MaxPerSlot > domain.MaxMaxPerSlot {
		return fmt.Errorf("%w: maxPerSlot must be between %d and %d", ErrInvalidInput, domain.MinMaxPerSlot, domain.MaxMaxPerSlot)
	}
	if req.MaxPerDay < domain.MinMaxPerDay || req.MaxPerDay > domain.MaxMaxPerDay {
		return fmt.Errorf("%w: maxPerDay must be between %d and %d", ErrInvalidInput, domain.MinMaxPerDay, domain.MaxMaxPerDay)
	}
	if req.MaxPerSlot > req.MaxPerDay {
		return fmt.Errorf("%w: maxPerSlot cannot exceed maxPerDay", ErrInvalidInput)
	}
	return nil
}
