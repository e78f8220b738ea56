package schedule

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда рабочие часы на дату не заданы
	ErrWorkingHoursNotFound = errors.New("working hours not found")

	// ErrConfigNotFound возвращается, когда настройки бизнеса не найдены
	ErrConfigNotFound = errors.New("config not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
