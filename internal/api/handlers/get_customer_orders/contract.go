package get_customer_orders

import (
	"context"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

type OrderRepository interface {
	GetByCustomerPhone(ctx context.Context, phone string) ([]*domain.Order, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
