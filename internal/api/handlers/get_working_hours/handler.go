package get_working_hours

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgHoursNotFound     = "рабочие часы на эту дату не заданы"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/working-hours
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/working-hours - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/working-hours - Missing date: business_id=%d", businessID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/working-hours - Invalid date format: business_id=%d, date=%s",
			businessID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем рабочие часы
	result, err := h.service.GetWorkingHours(r.Context(), businessID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrWorkingHoursNotFound):
			h.logger.Warn("GET /businesses/{id}/working-hours - Hours not found: business_id=%d, date=%s",
				businessID, dateStr)
			handlers.RespondNotFound(w, msgHoursNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/working-hours - Invalid input: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("GET /businesses/{id}/working-hours - Failed to get hours: business_id=%d, date=%s, error=%v",
				businessID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/working-hours - Hours retrieved successfully: business_id=%d, date=%s, windows=%d",
		businessID, dateStr, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
