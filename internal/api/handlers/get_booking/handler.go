package get_booking

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
	msgNotFound = "запись не найдена"
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

// Handle GET /api/v1/bookings/{bookingId}
// В качестве идентификатора принимается либо числовой ID, либо публичный reference записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	// Числовой идентификатор ищем по ID, строковый - по reference
	var (
		booking *models.BookingResponse
		err     error
	)
	if bookingID, parseErr := strconv.ParseInt(bookingIDStr, 10, 64); parseErr == nil {
		booking, err = h.service.GetByID(r.Context(), bookingID)
	} else {
		booking, err = h.service.GetByReference(r.Context(), bookingIDStr)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingIDStr)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingIDStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%d, reference=%s",
		booking.ID, booking.Reference)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
