package update_business_config

import (
	"github.com/m04kA/SMC-ChatbotService/pkg/types"

	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule/models"
)

// UpdateBusinessConfigRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateBusinessConfigRequest struct {
	GranularityMinutes      *int `json:"granularityMinutes,omitempty"`
	MinBookingNoticeMinutes *int `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int `json:"advanceBookingDays,omitempty"`

	UseDefaultHours *bool    `json:"useDefaultHours,omitempty"`
	DefaultWindows  []Window `json:"defaultWindows,omitempty"`
}

// Window временное окно в HTTP запросе
type Window struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "13:00"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBusinessConfigRequest) ToServiceRequest() *models.UpdateConfigRequest {
	req := &models.UpdateConfigRequest{
		GranularityMinutes:      r.GranularityMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		UseDefaultHours:         r.UseDefaultHours,
	}

	if r.DefaultWindows != nil {
		windows := make([]models.WindowPayload, len(r.DefaultWindows))
		for i, w := range r.DefaultWindows {
			windows[i] = models.WindowPayload{
				Start: types.TimeString(w.Start),
				End:   types.TimeString(w.End),
			}
		}
		req.DefaultWindows = windows
	}

	return req
}
