package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByBusinessWithFilter получает бронирования бизнеса по фильтру
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	// GetByBusinessAndDate получает рабочие окна бизнеса на конкретную дату
	GetByBusinessAndDate(ctx context.Context, businessID int64, date time.Time) (*domain.WorkingHours, error)
}

// ConfigRepository интерфейс репозитория настроек бизнеса
type ConfigRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessConfig, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
