package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByBusinessAndDate(ctx context.Context, businessID int64, date time.Time) (*domain.WorkingHours, error)
}

// ConfigRepository интерфейс репозитория настроек бизнеса
type ConfigRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessConfig, error)
}

// BusinessRepository интерфейс справочника бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
