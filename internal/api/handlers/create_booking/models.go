package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	createBooking "github.com/m04kA/SMC-ChatbotService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID    int64   `json:"businessId"`
	CustomerPhone string  `json:"customerPhone"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	Date          string  `json:"date"`              // "2026-03-10"
	StartTime     string  `json:"startTime"`         // "10:00"
	EndTime       *string `json:"endTime,omitempty"` // "11:00", опционально
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	BusinessID    int64   `json:"businessId"`
	CustomerPhone string  `json:"customerPhone"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	ServiceName   *string `json:"serviceName,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Формат времени валидируется в use case, здесь парсится только дата
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		BusinessID:    r.BusinessID,
		CustomerPhone: r.CustomerPhone,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     types.TimeString(r.StartTime),
		Notes:         r.Notes,
	}

	if r.EndTime != nil {
		end := types.TimeString(*r.EndTime)
		req.EndTime = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		BusinessID:    resp.BusinessID,
		CustomerPhone: resp.CustomerPhone,
		ServiceID:     resp.ServiceID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		ServiceName:   resp.ServiceName,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
