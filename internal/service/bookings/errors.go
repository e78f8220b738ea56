package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у клиента нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
