package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// noticeCutoff возвращает самое раннее время начала записи на сегодня
// с учетом минимального уведомления. Для будущих дат ограничения нет.
func noticeCutoff(requestDate time.Time, now time.Time, minBookingNoticeMinutes int) (types.TimeString, bool) {
	if !isToday(requestDate, now) {
		return "", false
	}

	earliest := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)
	if earliest.Day() != now.Day() {
		// Уведомление уходит за полночь - на сегодня записи уже нет
		return types.TimeString("23:59"), true
	}

	return types.NewTimeString(earliest), true
}

// filterByNotice отбрасывает моменты начала раньше cutoff
func filterByNotice(instants []types.TimeString, cutoff types.TimeString) []types.TimeString {
	filtered := make([]types.TimeString, 0, len(instants))
	for _, instant := range instants {
		if instant.IsBefore(cutoff) {
			continue
		}
		filtered = append(filtered, instant)
	}
	return filtered
}

// clipRangesByNotice отбрасывает и усекает свободные диапазоны раньше cutoff
func clipRangesByNotice(ranges []domain.Interval, cutoff types.TimeString) []domain.Interval {
	clipped := make([]domain.Interval, 0, len(ranges))
	for _, r := range ranges {
		if !r.End.IsAfter(cutoff) {
			continue
		}
		if r.Start.IsBefore(cutoff) {
			r.Start = cutoff
		}
		clipped = append(clipped, r)
	}
	return clipped
}
