package get_customer_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	"github.com/m04kA/SMC-ChatbotService/internal/service/bookings/models"
)

const (
	msgMissingPhone = "телефон клиента обязателен"
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

// Handle GET /api/v1/customers/bookings
// Query params: phone (required), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем phone из query параметров
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.logger.Warn("GET /customers/bookings - Missing customer phone")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetCustomerBookingsRequest{
		CustomerPhone: phone,
		Status:        statusPtr,
	}

	// Получаем записи клиента
	result, err := h.service.GetCustomerBookings(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /customers/bookings - Failed to get bookings: phone=%s, error=%v",
			phone, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customers/bookings - Bookings retrieved successfully: phone=%s, count=%d",
		phone, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
