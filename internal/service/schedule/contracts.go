package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByBusinessAndDate(ctx context.Context, businessID int64, date time.Time) (*domain.WorkingHours, error)
	Replace(ctx context.Context, hours *domain.WorkingHours) error
}

// ConfigRepository интерфейс репозитория настроек бизнеса
type ConfigRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessConfig, error)
	Upsert(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error)
}

// BusinessRepository интерфейс справочника бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
