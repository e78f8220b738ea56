package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ChatbotService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgConflict             = "выбранное время уже занято"
	msgOutsideWorkingHours  = "выбранное время вне рабочих часов"
	msgNoWorkingHours       = "рабочие часы на эту дату не настроены"
	msgBusinessNotFound     = "бизнес не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgInvalidBookingDate   = "некорректная дата записи"
	msgDateTooFar           = "дата записи слишком далеко в будущем"
	msgInvalidTime          = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInterval      = "некорректный интервал записи"
	msgTooLateToBook        = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Conflict: business_id=%d, start=%s", req.BusinessID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: business_id=%d, start=%s", req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrNoWorkingHours):
			h.logger.Warn("POST /bookings - No working hours: business_id=%d, date=%s", req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgNoWorkingHours)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: business_id=%d, date=%s", req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: business_id=%d, date=%s", req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeFormat):
			h.logger.Warn("POST /bookings - Invalid time format: business_id=%d, start=%s", req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: business_id=%d, start=%s", req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: business_id=%d, start=%s", req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: business_id=%d, error=%v", req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, reference=%s, business_id=%d",
		result.ID, result.Reference, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
