package get_business_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
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

// Handle GET /api/v1/businesses/{businessId}/config
// Если настройки не сохранялись, сервис вернет дефолтные значения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем настройки бизнеса
	result, err := h.service.GetConfig(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/config - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("GET /businesses/{id}/config - Failed to get config: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/config - Config retrieved successfully: business_id=%d, granularity=%d",
		businessID, result.GranularityMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
