package set_working_hours

import (
	"github.com/m04kA/SMC-ChatbotService/pkg/types"

	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule/models"
)

// SetWorkingHoursRequest HTTP request model
// Окна заменяются целиком: пустой список закрывает день
type SetWorkingHoursRequest struct {
	Date    string   `json:"date"` // "2026-03-10"
	Windows []Window `json:"windows"`
}

// Window временное окно в HTTP запросе
type Window struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "13:00"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetWorkingHoursRequest) ToServiceRequest(businessID int64) *models.SetWorkingHoursRequest {
	windows := make([]models.WindowPayload, len(r.Windows))
	for i, w := range r.Windows {
		windows[i] = models.WindowPayload{
			Start: types.TimeString(w.Start),
			End:   types.TimeString(w.End),
		}
	}

	return &models.SetWorkingHoursRequest{
		BusinessID: businessID,
		Date:       r.Date,
		Windows:    windows,
	}
}
