package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

type BookingRepository interface {
	ListDueReminders(ctx context.Context, fromDate time.Time, fromTime types.TimeString, toDate time.Time, toTime types.TimeString) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

type MessageSender interface {
	SendWhatsApp(ctx context.Context, toNumber, body string) error
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
