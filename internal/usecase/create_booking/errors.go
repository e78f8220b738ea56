package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrNoWorkingHours возвращается, когда у бизнеса нет рабочих часов на дату
	// и дефолтный график не настроен
	ErrNoWorkingHours = errors.New("create_booking: no working hours configured for this date")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается целиком
	// ни в одно рабочее окно
	ErrOutsideWorkingHours = errors.New("create_booking: requested time is outside working hours")

	// ErrConflict возвращается, когда интервал пересекается с существующей записью
	ErrConflict = errors.New("create_booking: time slot is already booked")

	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("create_booking: invalid time format")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("create_booking: invalid time interval")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
