package availability

import (
	"strings"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// FormatFreeSlots форматирует свободные диапазоны для подстановки в промпт
// и ответы клиенту: "09:00-10:00, 10:30-12:00". Пустой список - "none".
func FormatFreeSlots(freeRanges []domain.Interval) string {
	if len(freeRanges) == 0 {
		return "none"
	}

	parts := make([]string, len(freeRanges))
	for i, r := range freeRanges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

// FormatBookableInstants форматирует моменты записи: "09:00, 09:30, 10:00"
func FormatBookableInstants(instants []types.TimeString) string {
	if len(instants) == 0 {
		return "none"
	}

	parts := make([]string, len(instants))
	for i, t := range instants {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
