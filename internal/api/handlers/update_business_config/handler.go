package update_business_config

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
	msgInvalidData        = "некорректные данные настроек"
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

// Handle PUT /api/v1/businesses/{businessId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Декодируем body
	var req UpdateBusinessConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем настройки
	result, err := h.service.UpdateConfig(r.Context(), businessID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/config - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/config - Invalid config data: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /businesses/{id}/config - Failed to update config: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/config - Config updated successfully: business_id=%d, granularity=%d",
		businessID, result.GranularityMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
