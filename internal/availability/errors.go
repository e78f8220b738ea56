package availability

import "errors"

var (
	// ErrNoWorkingHours возвращается, когда на дату не задано ни одного рабочего окна
	ErrNoWorkingHours = errors.New("availability: no working hours configured")

	// ErrOutsideWorkingHours возвращается, когда запрошенный интервал
	// не помещается целиком ни в одно рабочее окно
	ErrOutsideWorkingHours = errors.New("availability: requested interval is outside working hours")

	// ErrConflict возвращается, когда запрошенный интервал пересекается
	// с существующим активным бронированием
	ErrConflict = errors.New("availability: requested interval conflicts with an existing booking")

	// ErrInvalidInterval возвращается при некорректном интервале (start >= end)
	ErrInvalidInterval = errors.New("availability: invalid interval")

	// ErrInvalidGranularity возвращается при неположительном шаге слотов
	ErrInvalidGranularity = errors.New("availability: granularity must be positive")
)
