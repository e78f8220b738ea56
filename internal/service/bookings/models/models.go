package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену записи
// CustomerPhone указывается, когда запись отменяет клиент: телефон должен
// совпасть с телефоном записи. Отмена без телефона считается отменой бизнесом.
type CancelBookingRequest struct {
	CustomerPhone      *string `json:"customerPhone,omitempty"`
	CancellationReason string  `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetCustomerBookingsRequest запрос на получение записей клиента
type GetCustomerBookingsRequest struct {
	CustomerPhone string  `json:"customerPhone"`
	Status        *string `json:"status,omitempty"`
}

// GetBusinessBookingsRequest запрос на получение записей бизнеса
type GetBusinessBookingsRequest struct {
	BusinessID      int64      `json:"businessId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{
		BusinessID:      r.BusinessID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	BusinessID    int64  `json:"businessId"`
	CustomerPhone string `json:"customerPhone"`
	ServiceID     *int64 `json:"serviceId,omitempty"`
	Date          string `json:"date"`      // "2026-03-10"
	StartTime     string `json:"startTime"` // "10:00"
	EndTime       string `json:"endTime"`   // "11:00"
	Status        string `json:"status"`

	// Денормализованные данные
	ServiceName *string `json:"serviceName,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		BusinessID:         b.BusinessID,
		CustomerPhone:      b.CustomerPhone,
		ServiceID:          b.ServiceID,
		Date:               b.Date.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledByBusiness,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
