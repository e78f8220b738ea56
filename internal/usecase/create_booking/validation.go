package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Валидируем формат времени начала
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidTimeFormat, err)
	}

	// Валидируем формат времени конца, если оно передано
	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: endTime: %v", ErrInvalidTimeFormat, err)
		}
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что запись не нарушает minBookingNoticeMinutes
func validateBookingTime(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Если дата записи не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	// Вычисляем минимальное допустимое время
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	// Проверяем, что время начала не раньше минимального
	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
