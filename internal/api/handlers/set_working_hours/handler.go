package set_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBusinessNotFound   = "бизнес не найден"
	msgInvalidWindows     = "некорректные рабочие окна"
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

// Handle PUT /api/v1/businesses/{businessId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/working-hours - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Декодируем body
	var req SetWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сохраняем рабочие часы (окна валидирует сервис)
	result, err := h.service.SetWorkingHours(r.Context(), req.ToServiceRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/working-hours - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/working-hours - Invalid windows: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidWindows)

		default:
			h.logger.Error("PUT /businesses/{id}/working-hours - Failed to set hours: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/working-hours - Hours saved successfully: business_id=%d, date=%s, windows=%d",
		businessID, result.Date, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
