package bookings

import (
	"context"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByCustomerPhone(ctx context.Context, phone string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
