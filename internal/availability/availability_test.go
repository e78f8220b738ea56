package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

func iv(start, end string) domain.Interval {
	return domain.Interval{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestComputeFreeSlots_EmptyDay(t *testing.T) {
	result, err := ComputeFreeSlots(
		[]domain.Interval{iv("09:00", "12:00")},
		nil,
		30,
	)
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{iv("09:00", "12:00")}, result.FreeRanges)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		result.BookableInstants)
}

func TestComputeFreeSlots_SingleBooking(t *testing.T) {
	result, err := ComputeFreeSlots(
		[]domain.Interval{iv("09:00", "12:00")},
		[]domain.Interval{iv("10:00", "10:30")},
		30,
	)
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{iv("09:00", "10:00"), iv("10:30", "12:00")}, result.FreeRanges)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30", "11:00", "11:30"},
		result.BookableInstants)
}

func TestComputeFreeSlots_NoWorkingHours(t *testing.T) {
	// Никаких придуманных дефолтных окон: отсутствие часов - явная ошибка
	_, err := ComputeFreeSlots(nil, nil, 30)
	assert.ErrorIs(t, err, ErrNoWorkingHours)
}

func TestComputeFreeSlots_MultipleWindows(t *testing.T) {
	result, err := ComputeFreeSlots(
		[]domain.Interval{iv("14:00", "18:00"), iv("09:00", "12:00")},
		[]domain.Interval{iv("09:00", "09:30"), iv("15:00", "16:00")},
		60,
	)
	require.NoError(t, err)

	// Окна обрабатываются в хронологическом порядке независимо от порядка на входе
	assert.Equal(t, []domain.Interval{
		iv("09:30", "12:00"),
		iv("14:00", "15:00"),
		iv("16:00", "18:00"),
	}, result.FreeRanges)
	assert.Equal(t, []types.TimeString{"10:00", "11:00", "14:00", "16:00", "17:00"},
		result.BookableInstants)
}

func TestComputeFreeSlots_FullyBookedWindow(t *testing.T) {
	result, err := ComputeFreeSlots(
		[]domain.Interval{iv("09:00", "10:00")},
		[]domain.Interval{iv("09:00", "10:00")},
		30,
	)
	require.NoError(t, err)

	assert.Empty(t, result.FreeRanges)
	assert.Empty(t, result.BookableInstants)
}

func TestComputeFreeSlots_OverlappingBookingsDoNotRegressCursor(t *testing.T) {
	// Повреждённые данные: два пересекающихся бронирования
	// Развёртка не должна ни упасть, ни выдать занятые диапазоны как свободные
	result, err := ComputeFreeSlots(
		[]domain.Interval{iv("09:00", "12:00")},
		[]domain.Interval{iv("09:30", "11:00"), iv("10:00", "10:30")},
		30,
	)
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{iv("09:00", "09:30"), iv("11:00", "12:00")}, result.FreeRanges)
}

func TestComputeFreeSlots_BookingOutsideWindowIgnored(t *testing.T) {
	result, err := ComputeFreeSlots(
		[]domain.Interval{iv("09:00", "12:00")},
		[]domain.Interval{iv("13:00", "14:00")},
		30,
	)
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{iv("09:00", "12:00")}, result.FreeRanges)
}

func TestComputeFreeSlots_PartialLastStepEmitted(t *testing.T) {
	// Окно длиной не кратной шагу: момент 11:30 эмитится,
	// короткая услуга (15 минут) может начаться и в неполном хвосте окна
	result, err := ComputeFreeSlots(
		[]domain.Interval{iv("09:00", "11:45")},
		nil,
		30,
	)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		result.BookableInstants)
	assert.Contains(t, result.BookableInstants, types.TimeString("11:30"))
}

func TestComputeFreeSlots_InvalidInputs(t *testing.T) {
	_, err := ComputeFreeSlots([]domain.Interval{iv("12:00", "09:00")}, nil, 30)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ComputeFreeSlots([]domain.Interval{iv("09:00", "12:00")}, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

// Свободные диапазоны и бронирования внутри окна должны покрывать окно
// целиком, без дыр и без двойного покрытия
func TestComputeFreeSlots_FreeBookedPartition(t *testing.T) {
	window := iv("09:00", "18:00")
	bookings := []domain.Interval{
		iv("09:30", "10:15"),
		iv("10:15", "11:00"), // граничащие бронирования
		iv("14:00", "15:30"),
		iv("17:45", "18:00"),
	}

	result, err := ComputeFreeSlots([]domain.Interval{window}, bookings, 15)
	require.NoError(t, err)

	// Каждая минута окна покрыта ровно одним из: свободный диапазон или бронирование
	for minute := window.Start.Minutes(); minute < window.End.Minutes(); minute++ {
		instant, err := types.NewTimeStringFromMinutes(minute)
		require.NoError(t, err)

		covered := 0
		for _, r := range result.FreeRanges {
			if r.ContainsInstant(instant) {
				covered++
			}
		}
		for _, b := range bookings {
			if b.ContainsInstant(instant) {
				covered++
			}
		}
		assert.Equal(t, 1, covered, "minute %s must be covered exactly once", instant)
	}
}

func TestComputeFreeSlots_IdempotentRead(t *testing.T) {
	windows := []domain.Interval{iv("09:00", "12:00"), iv("14:00", "18:00")}
	bookings := []domain.Interval{iv("10:00", "10:30"), iv("15:00", "16:00")}

	first, err := ComputeFreeSlots(windows, bookings, 30)
	require.NoError(t, err)
	second, err := ComputeFreeSlots(windows, bookings, 30)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Вход не мутируется
	assert.Equal(t, []domain.Interval{iv("09:00", "12:00"), iv("14:00", "18:00")}, windows)
}

func TestValidateRequest(t *testing.T) {
	windows := []domain.Interval{iv("09:00", "18:00")}
	bookings := []domain.Interval{iv("10:00", "10:30")}

	tests := []struct {
		name      string
		requested domain.Interval
		wantErr   error
	}{
		{name: "free slot accepted", requested: iv("10:30", "11:00")},
		{name: "exact conflict", requested: iv("10:00", "10:30"), wantErr: ErrConflict},
		{name: "partial overlap conflict", requested: iv("09:45", "10:15"), wantErr: ErrConflict},
		{name: "containing booking conflict", requested: iv("09:30", "11:00"), wantErr: ErrConflict},
		{name: "touching booking end is free", requested: iv("09:30", "10:00")},
		{name: "touching window start from outside", requested: iv("08:30", "09:00"), wantErr: ErrOutsideWorkingHours},
		{name: "straddling window start", requested: iv("08:45", "09:15"), wantErr: ErrOutsideWorkingHours},
		{name: "straddling window end", requested: iv("17:45", "18:15"), wantErr: ErrOutsideWorkingHours},
		{name: "ends exactly at window end", requested: iv("17:30", "18:00")},
		{name: "inverted interval", requested: iv("11:00", "10:00"), wantErr: ErrInvalidInterval},
		{name: "zero-length interval", requested: iv("11:00", "11:00"), wantErr: ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.requested, windows, bookings)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateRequest_NoWorkingHours(t *testing.T) {
	err := ValidateRequest(iv("10:00", "10:30"), nil, nil)
	assert.ErrorIs(t, err, ErrNoWorkingHours)
}

func TestValidateRequest_MultipleWindows(t *testing.T) {
	windows := []domain.Interval{iv("09:00", "12:00"), iv("14:00", "18:00")}

	assert.NoError(t, ValidateRequest(iv("14:00", "14:30"), windows, nil))
	// Интервал через перерыв не лежит целиком ни в одном окне
	assert.ErrorIs(t, ValidateRequest(iv("11:30", "14:30"), windows, nil), ErrOutsideWorkingHours)
}

func TestFormatFreeSlots(t *testing.T) {
	assert.Equal(t, "none", FormatFreeSlots(nil))
	assert.Equal(t, "09:00-10:00, 10:30-12:00",
		FormatFreeSlots([]domain.Interval{iv("09:00", "10:00"), iv("10:30", "12:00")}))
}

func TestFormatBookableInstants(t *testing.T) {
	assert.Equal(t, "none", FormatBookableInstants(nil))
	assert.Equal(t, "09:00, 09:30",
		FormatBookableInstants([]types.TimeString{"09:00", "09:30"}))
}
