package get_business_config

import (
	"context"

	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetConfig(ctx context.Context, businessID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
