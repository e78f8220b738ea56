package get_business_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	"github.com/m04kA/SMC-ChatbotService/internal/service/bookings"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/bookings
// Query params: status, date, from, to, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		businessID,
		query.Get("status"),
		query.Get("date"),
		query.Get("from"),
		query.Get("to"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid parameters: business_id=%d, error=%v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем записи бизнеса
	result, err := h.service.GetBusinessBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/bookings - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/bookings - Failed to get bookings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/bookings - Bookings retrieved successfully: business_id=%d, count=%d",
		businessID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
