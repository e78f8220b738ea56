package cancel_booking

import (
	"github.com/m04kA/SMC-ChatbotService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
// CustomerPhone указывается при отмене от имени клиента: телефон должен
// совпадать с телефоном в записи. Без телефона отмена считается отменой бизнесом.
type CancelBookingRequest struct {
	CustomerPhone      *string `json:"customerPhone,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		CustomerPhone:      r.CustomerPhone,
		CancellationReason: reason,
	}
}
