package domain

// Default configuration values
const (
	DefaultGranularityMinutes      = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultServiceDurationMinutes  = 30
)

// Business validation constants
const (
	MinGranularityMinutes       = 5
	MaxGranularityMinutes       = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinNoticeMinutes            = 0
	MaxNoticeMinutes            = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledByBusiness,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
