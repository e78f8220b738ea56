package domain

import "time"

// BusinessConfig represents the booking configuration for a business
// Включает политику дефолтных рабочих часов: движок доступности сам
// никаких часов не придумывает, решение принимает владелец бизнеса.
type BusinessConfig struct {
	ID                      int64
	BusinessID              int64
	GranularityMinutes      int // Шаг дискретных слотов для отображения и записи
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited

	// Политика при отсутствии рабочих часов на дату:
	// если UseDefaultHours = true, применяются DefaultWindows,
	// иначе запись на этот день невозможна
	UseDefaultHours bool
	DefaultWindows  []Interval

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *BusinessConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultBusinessConfig возвращает конфигурацию по умолчанию
// Используется, когда бизнес ещё не настроил свою
func DefaultBusinessConfig(businessID int64) *BusinessConfig {
	return &BusinessConfig{
		BusinessID:              businessID,
		GranularityMinutes:      DefaultGranularityMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		UseDefaultHours:         false,
	}
}
