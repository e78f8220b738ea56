package availability

import (
	"fmt"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

// ValidateRequest решает, можно ли записать запрошенный интервал
//
// Правила:
//   - интервал корректен (start < end);
//   - рабочие окна на дату существуют;
//   - интервал целиком лежит хотя бы в одном рабочем окне
//     (частичное попадание отклоняется, а не обрезается);
//   - интервал не пересекается ни с одним активным бронированием
//     (полуоткрытые интервалы: граничащие записи совместимы).
//
// Возвращает nil при успехе или одну из sentinel-ошибок пакета.
// Решение принимается по переданному снимку бронирований - при записи
// проверка обязана повториться внутри транзакции (см. usecase create_booking).
func ValidateRequest(requested domain.Interval, windows []domain.Interval, bookings []domain.Interval) error {
	if err := requested.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	if len(windows) == 0 {
		return ErrNoWorkingHours
	}

	contained := false
	for _, window := range windows {
		if window.Contains(requested) {
			contained = true
			break
		}
	}
	if !contained {
		return fmt.Errorf("%w: %s", ErrOutsideWorkingHours, requested)
	}

	for _, booking := range bookings {
		if requested.Overlaps(booking) {
			return fmt.Errorf("%w: %s overlaps %s", ErrConflict, requested, booking)
		}
	}

	return nil
}
