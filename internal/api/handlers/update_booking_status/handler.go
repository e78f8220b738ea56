package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	"github.com/m04kA/SMC-ChatbotService/internal/service/bookings"
	"github.com/m04kA/SMC-ChatbotService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись не найдена"
	msgInvalidStatus      = "некорректный статус записи"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
// Используется владельцем для пометки записей: completed, no_show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем статус
	err = h.service.UpdateStatus(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: booking_id=%d, status=%s",
				bookingID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated successfully: booking_id=%d, status=%s",
		bookingID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
