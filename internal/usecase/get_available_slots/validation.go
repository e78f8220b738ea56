package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшней (по дням, без времени)
func isDateInPast(date time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(today)
}

// isToday проверяет, что дата совпадает с сегодняшней
func isToday(date time.Time, now time.Time) bool {
	return date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day()
}
