package handle_message

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/internal/integrations/openai"
	"github.com/m04kA/SMC-ChatbotService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ChatbotService/internal/usecase/get_available_slots"
)

// CreateBookingUseCase интерфейс use case создания записи
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// GetAvailableSlotsUseCase интерфейс use case получения свободного времени
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// BusinessRepository интерфейс справочника бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetByWhatsAppNumber(ctx context.Context, number string) (*domain.Business, error)
	Search(ctx context.Context, name, city string) ([]*domain.Business, error)
	ListServices(ctx context.Context, businessID int64) ([]*domain.Service, error)
	ListProducts(ctx context.Context, businessID int64) ([]*domain.Product, error)
	GetProduct(ctx context.Context, businessID, productID int64) (*domain.Product, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// SessionRepository интерфейс хранилища выбранного бизнеса
type SessionRepository interface {
	GetSelectedBusiness(ctx context.Context, customerPhone string) (int64, error)
	SetSelectedBusiness(ctx context.Context, customerPhone string, businessID int64) error
}

// ConversationRepository интерфейс журнала переписки
type ConversationRepository interface {
	Log(ctx context.Context, conv *domain.Conversation) error
}

// AIClient интерфейс клиента языковой модели
type AIClient interface {
	CompleteWithGracefulDegradation(ctx context.Context, messages []openai.Message) (string, error)
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
