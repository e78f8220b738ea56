package get_working_hours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWorkingHours(ctx context.Context, businessID int64, date time.Time) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
