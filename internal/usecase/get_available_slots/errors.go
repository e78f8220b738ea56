package get_available_slots

import "errors"

var (
	// ErrNoWorkingHours возвращается, когда у бизнеса нет рабочих часов на дату
	// и дефолтный график не настроен
	ErrNoWorkingHours = errors.New("no working hours configured for this date")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
