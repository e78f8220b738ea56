package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ChatbotService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNoWorkingHours    = "рабочие часы на эту дату не настроены"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgDateInPast        = "дата уже прошла"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessIDStr := vars["businessId"]
	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/available-slots - Missing date: business_id=%d", businessID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(businessID, dateStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid date format: business_id=%d, date=%s", businessID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrNoWorkingHours):
			h.logger.Warn("GET /businesses/{id}/available-slots - No working hours: business_id=%d, date=%s", businessID, dateStr)
			handlers.RespondNotFound(w, msgNoWorkingHours)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /businesses/{id}/available-slots - Date in the past: business_id=%d, date=%s", businessID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /businesses/{id}/available-slots - Date too far in future: business_id=%d, date=%s", businessID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed to get slots: business_id=%d, date=%s, error=%v",
				businessID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /businesses/{id}/available-slots - Slots retrieved successfully: business_id=%d, date=%s, ranges=%d, instants=%d",
		businessID, dateStr, len(result.FreeRanges), len(result.BookableInstants))
	handlers.RespondJSON(w, http.StatusOK, response)
}
