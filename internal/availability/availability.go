// Package availability единственная реализация расчёта свободных слотов
// и проверки бронирований. Пакет чистый: никакого I/O, никакого состояния
// между вызовами - только рабочие окна и бронирования на входе.
package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// Result результат расчёта доступности на день
// FreeRanges - непрерывные свободные диапазоны (для отображения клиенту),
// BookableInstants - дискретные моменты начала записи с шагом granularity
// (для валидации конкретного времени).
type Result struct {
	FreeRanges       []domain.Interval
	BookableInstants []types.TimeString
}

// ComputeFreeSlots вычисляет свободные диапазоны и моменты записи
// для набора рабочих окон и активных бронирований одного дня.
//
// Чистая функция: одинаковый вход всегда даёт одинаковый выход.
// Бронирования вне рабочих окон игнорируются, пересекающиеся между собой
// бронирования (повреждённые данные) не ломают развёртку - курсор
// только двигается вперёд.
func ComputeFreeSlots(windows []domain.Interval, bookings []domain.Interval, granularityMinutes int) (*Result, error) {
	if len(windows) == 0 {
		return nil, ErrNoWorkingHours
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGranularity, granularityMinutes)
	}
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%w: window %s: %v", ErrInvalidInterval, w, err)
		}
	}

	sortedWindows := sortIntervals(windows)
	sortedBookings := sortIntervals(bookings)

	return &Result{
		FreeRanges:       subtractBookings(sortedWindows, sortedBookings),
		BookableInstants: bookableInstants(sortedWindows, sortedBookings, granularityMinutes),
	}, nil
}

// subtractBookings вычитает бронирования из рабочих окон развёрткой
// Для каждого окна: курсор стартует в начале окна; каждое пересекающее окно
// бронирование либо оставляет свободный диапазон до своего начала, либо нет;
// курсор сдвигается к максимуму из текущей позиции и конца бронирования.
func subtractBookings(windows, bookings []domain.Interval) []domain.Interval {
	free := make([]domain.Interval, 0, len(windows))

	for _, window := range windows {
		cursor := window.Start

		for _, booking := range bookings {
			if !booking.Overlaps(window) {
				continue
			}
			if cursor.IsBefore(booking.Start) {
				free = append(free, domain.Interval{Start: cursor, End: booking.Start})
			}
			// max(cursor, booking.End): курсор никогда не откатывается назад,
			// даже если бронирования пересекаются между собой
			if cursor.IsBefore(booking.End) {
				cursor = booking.End
			}
		}

		if cursor.IsBefore(window.End) {
			free = append(free, domain.Interval{Start: cursor, End: window.End})
		}
	}

	return free
}

// bookableInstants генерирует дискретные моменты начала записи
// Шагаем от начала каждого окна с шагом granularity, пока момент строго
// раньше конца окна; момент свободен, если не покрыт ни одним бронированием.
// Момент эмитится, даже если до конца окна остаётся меньше полного шага:
// короткая услуга может начаться и в неполном хвосте окна.
func bookableInstants(windows, bookings []domain.Interval, granularityMinutes int) []types.TimeString {
	instants := make([]types.TimeString, 0)

	for _, window := range windows {
		for minute := window.Start.Minutes(); minute < window.End.Minutes(); minute += granularityMinutes {
			instant, err := types.NewTimeStringFromMinutes(minute)
			if err != nil {
				break
			}
			if !coveredByAny(instant, bookings) {
				instants = append(instants, instant)
			}
		}
	}

	return instants
}

func coveredByAny(instant types.TimeString, bookings []domain.Interval) bool {
	for _, b := range bookings {
		if b.ContainsInstant(instant) {
			return true
		}
	}
	return false
}

func sortIntervals(intervals []domain.Interval) []domain.Interval {
	sorted := make([]domain.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})
	return sorted
}
