package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со свободным временем на день
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	BusinessID int64     // ID бизнеса

	// FreeRanges непрерывные свободные диапазоны (для текста клиенту)
	FreeRanges []domain.Interval

	// BookableInstants моменты начала записи с шагом granularity
	BookableInstants []types.TimeString
}

// HasFreeTime сообщает, осталось ли на дату хоть одно свободное окно
func (r *Response) HasFreeTime() bool {
	return len(r.FreeRanges) > 0
}
