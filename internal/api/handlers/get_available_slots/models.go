package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ChatbotService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date             string      `json:"date"`
	BusinessID       int64       `json:"businessId"`
	FreeRanges       []FreeRange `json:"freeRanges"`
	BookableInstants []string    `json:"bookableInstants"`
}

// FreeRange непрерывный свободный диапазон времени
type FreeRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	ranges := make([]FreeRange, len(resp.FreeRanges))
	for i, r := range resp.FreeRanges {
		ranges[i] = FreeRange{
			StartTime: r.Start.String(),
			EndTime:   r.End.String(),
		}
	}

	instants := make([]string, len(resp.BookableInstants))
	for i, instant := range resp.BookableInstants {
		instants[i] = instant.String()
	}

	return &AvailableSlotsResponse{
		Date:             resp.Date.Format(domain.DateFormat),
		BusinessID:       resp.BusinessID,
		FreeRanges:       ranges,
		BookableInstants: instants,
	}
}

// ToUseCaseRequest создает запрос use case из параметров HTTP запроса
func ToUseCaseRequest(businessID int64, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		Date:       date,
	}, nil
}
