package models

import (
	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
)

// Request модели

// UpdateCapacityConfigRequest запрос на обновление лимитов вместимости
type UpdateCapacityConfigRequest struct {
	MaxPerSlot int `json:"maxPerSlot"`
	MaxPerDay  int `json:"maxPerDay"`
}

// ToDomain конвертирует request в domain модель
func (r *UpdateCapacityConfigRequest) ToDomain() *domain.CapacitySettings {
	return &domain.CapacitySettings{
		MaxPerSlot: r.MaxPerSlot,
		MaxPerDay:  r.MaxPerDay,
	}
}

// Response модели

// WindowResponse одно рабочее окно дня
type WindowResponse struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "12:00"
}

// WeekdayTemplateResponse шаблон рабочего дня недели
type WeekdayTemplateResponse struct {
	Weekday  int              `json:"weekday"` // 0 = воскресенье
	IsActive bool             `json:"isActive"`
	Windows  []WindowResponse `json:"windows"`
}

// CapacityConfigResponse текущая конфигурация вместимости и расписания
type CapacityConfigResponse struct {
	MaxPerSlot int                       `json:"maxPerSlot"`
	MaxPerDay  int                       `json:"maxPerDay"`
	Templates  []WeekdayTemplateResponse `json:"templates"`
}

// Методы конвертации

// FromDomainTemplates конвертирует шаблоны недели в DTO
func FromDomainTemplates(templates []*domain.WeekdayTemplate) []WeekdayTemplateResponse {
	resp := make([]WeekdayTemplateResponse, 0, len(templates))

	for _, tpl := range templates {
		if tpl == nil {
			continue
		}

		windows := tpl.Windows()
		windowResp := make([]WindowResponse, 0, len(windows))
		for _, w := range windows {
			windowResp = append(windowResp, WindowResponse{
				Start: w[0].String(),
				End:   w[1].String(),
			})
		}

		resp = append(resp, WeekdayTemplateResponse{
			Weekday:  tpl.Weekday,
			IsActive: tpl.IsActive,
			Windows:  windowResp,
		})
	}

	return resp
}
