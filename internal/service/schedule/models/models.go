package models

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// Request модели

// WindowPayload одно рабочее окно в запросе или ответе
type WindowPayload struct {
	Start types.TimeString `json:"start"` // "09:00"
	End   types.TimeString `json:"end"`   // "13:00"
}

// SetWorkingHoursRequest запрос на установку рабочих часов на дату
// Окна заменяются целиком: пустой список закрывает день
type SetWorkingHoursRequest struct {
	BusinessID int64           `json:"businessId"`
	Date       string          `json:"date"` // "2026-03-10"
	Windows    []WindowPayload `json:"windows"`
}

// UpdateConfigRequest запрос на обновление настроек бизнеса
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	GranularityMinutes      *int `json:"granularityMinutes,omitempty"`
	MinBookingNoticeMinutes *int `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int `json:"advanceBookingDays,omitempty"`

	UseDefaultHours *bool           `json:"useDefaultHours,omitempty"`
	DefaultWindows  []WindowPayload `json:"defaultWindows,omitempty"`
}

// Response модели

// WorkingHoursResponse ответ с рабочими часами на дату
type WorkingHoursResponse struct {
	BusinessID int64           `json:"businessId"`
	Date       string          `json:"date"`
	Windows    []WindowPayload `json:"windows"`
}

// ConfigResponse ответ с настройками бизнеса
type ConfigResponse struct {
	ID                      int64 `json:"id"`
	BusinessID              int64 `json:"businessId"`
	GranularityMinutes      int   `json:"granularityMinutes"`
	MinBookingNoticeMinutes int   `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int   `json:"advanceBookingDays"`

	UseDefaultHours bool            `json:"useDefaultHours"`
	DefaultWindows  []WindowPayload `json:"defaultWindows"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// ToDomainWindows конвертирует окна запроса в domain интервалы
func ToDomainWindows(windows []WindowPayload) []domain.Interval {
	out := make([]domain.Interval, len(windows))
	for i, w := range windows {
		out[i] = domain.Interval{Start: w.Start, End: w.End}
	}
	return out
}

// FromDomainWindows конвертирует domain интервалы в окна ответа
func FromDomainWindows(windows []domain.Interval) []WindowPayload {
	out := make([]WindowPayload, len(windows))
	for i, w := range windows {
		out[i] = WindowPayload{Start: w.Start, End: w.End}
	}
	return out
}

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(hours *domain.WorkingHours) *WorkingHoursResponse {
	if hours == nil {
		return nil
	}

	return &WorkingHoursResponse{
		BusinessID: hours.BusinessID,
		Date:       hours.Date.Format(domain.DateFormat),
		Windows:    FromDomainWindows(hours.Windows),
	}
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.BusinessConfig) *ConfigResponse {
	if cfg == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                      cfg.ID,
		BusinessID:              cfg.BusinessID,
		GranularityMinutes:      cfg.GranularityMinutes,
		MinBookingNoticeMinutes: cfg.MinBookingNoticeMinutes,
		AdvanceBookingDays:      cfg.AdvanceBookingDays,
		UseDefaultHours:         cfg.UseDefaultHours,
		DefaultWindows:          FromDomainWindows(cfg.DefaultWindows),
		CreatedAt:               cfg.CreatedAt,
		UpdatedAt:               cfg.UpdatedAt,
	}
}
