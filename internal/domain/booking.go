package domain

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByBusiness BookingStatus = "cancelled_by_business"
	StatusNoShow              BookingStatus = "no_show"
)

// Booking represents a confirmed appointment in the system
type Booking struct {
	ID            int64
	Reference     string // UUID, выдается клиенту как номер подтверждения
	BusinessID    int64
	CustomerPhone string
	ServiceID     *int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        BookingStatus

	// Denormalized data for history
	ServiceName *string
	Notes       *string

	ReminderSent       bool
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал бронирования [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByCustomer &&
		b.Status != StatusCancelledByBusiness &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByBusiness
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}
