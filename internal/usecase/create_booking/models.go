package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// Request модель запроса на создание записи
// EndTime опционально: при отсутствии берется длительность услуги,
// а если услуга не указана - один шаг granularity.
type Request struct {
	BusinessID    int64            // ID бизнеса
	CustomerPhone string           // Номер телефона клиента (WhatsApp)
	ServiceID     *int64           // ID услуги (опционально)
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	EndTime       *types.TimeString // Время конца (опционально)
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64            // ID созданной записи
	Reference     string           // Публичный номер записи (UUID)
	BusinessID    int64            // ID бизнеса
	CustomerPhone string           // Телефон клиента
	ServiceID     *int64           // ID услуги
	Date          time.Time        // Дата записи
	StartTime     types.TimeString // Время начала
	EndTime       types.TimeString // Время конца
	Status        string           // Статус записи

	// Денормализованные данные
	ServiceName *string // Название услуги
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
