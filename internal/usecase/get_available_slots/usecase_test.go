package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	configRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/config"
	whRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeHoursRepo struct {
	hours *domain.WorkingHours
	err   error
}

func (f *fakeHoursRepo) GetByBusinessAndDate(_ context.Context, _ int64, _ time.Time) (*domain.WorkingHours, error) {
	return f.hours, f.err
}

type fakeConfigRepo struct {
	config *domain.BusinessConfig
	err    error
}

func (f *fakeConfigRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessConfig, error) {
	return f.config, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func interval(start, end string) domain.Interval {
	return domain.Interval{Start: types.TimeString(start), End: types.TimeString(end)}
}

func booking(start, end string) *domain.Booking {
	return &domain.Booking{
		Status:    domain.StatusConfirmed,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func newUseCase(bookings *fakeBookingRepo, hours *fakeHoursRepo, config *fakeConfigRepo, now time.Time) *UseCase {
	uc := NewUseCase(bookings, hours, config, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

var testNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func futureDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestExecute_FreeDay(t *testing.T) {
	hours := &fakeHoursRepo{hours: &domain.WorkingHours{
		BusinessID: 1,
		Windows:    []domain.Interval{interval("09:00", "12:00")},
	}}
	uc := newUseCase(&fakeBookingRepo{}, hours, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: futureDate()})
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{interval("09:00", "12:00")}, resp.FreeRanges)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, resp.BookableInstants)
	assert.True(t, resp.HasFreeTime())
}

func TestExecute_BookingSplitsDay(t *testing.T) {
	hours := &fakeHoursRepo{hours: &domain.WorkingHours{
		BusinessID: 1,
		Windows:    []domain.Interval{interval("09:00", "12:00")},
	}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{booking("10:00", "10:30")}}
	uc := newUseCase(bookings, hours, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: futureDate()})
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{
		interval("09:00", "10:00"),
		interval("10:30", "12:00"),
	}, resp.FreeRanges)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30", "11:00", "11:30"}, resp.BookableInstants)
}

func TestExecute_NoWorkingHoursConfigured(t *testing.T) {
	hours := &fakeHoursRepo{err: whRepo.ErrWorkingHoursNotFound}
	uc := newUseCase(&fakeBookingRepo{}, hours, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: futureDate()})
	assert.ErrorIs(t, err, ErrNoWorkingHours)
}

func TestExecute_DefaultWindowsFallback(t *testing.T) {
	hours := &fakeHoursRepo{err: whRepo.ErrWorkingHoursNotFound}
	config := &fakeConfigRepo{config: &domain.BusinessConfig{
		BusinessID:         1,
		GranularityMinutes: 60,
		UseDefaultHours:    true,
		DefaultWindows:     []domain.Interval{interval("10:00", "13:00")},
	}}
	uc := newUseCase(&fakeBookingRepo{}, hours, config, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: futureDate()})
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{interval("10:00", "13:00")}, resp.FreeRanges)
	assert.Equal(t, []types.TimeString{"10:00", "11:00", "12:00"}, resp.BookableInstants)
}

func TestExecute_FullyBookedDay(t *testing.T) {
	hours := &fakeHoursRepo{hours: &domain.WorkingHours{
		BusinessID: 1,
		Windows:    []domain.Interval{interval("09:00", "11:00")},
	}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		booking("09:00", "10:00"),
		booking("10:00", "11:00"),
	}}
	uc := newUseCase(bookings, hours, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: futureDate()})
	require.NoError(t, err)

	assert.Empty(t, resp.FreeRanges)
	assert.Empty(t, resp.BookableInstants)
	assert.False(t, resp.HasFreeTime())
}

func TestExecute_TodayRespectsMinNotice(t *testing.T) {
	// Сейчас 10:05, уведомление 60 минут: запись возможна только с 11:05,
	// первый момент с шагом 30 минут - 11:30
	now := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	hours := &fakeHoursRepo{hours: &domain.WorkingHours{
		BusinessID: 1,
		Windows:    []domain.Interval{interval("09:00", "13:00")},
	}}
	uc := newUseCase(&fakeBookingRepo{}, hours, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: now})
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{interval("11:05", "13:00")}, resp.FreeRanges)
	assert.Equal(t, []types.TimeString{"11:30", "12:00", "12:30"}, resp.BookableInstants)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeHoursRepo{}, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, testNow)

	past := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: past})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	config := &fakeConfigRepo{config: &domain.BusinessConfig{
		BusinessID:         1,
		GranularityMinutes: 30,
		AdvanceBookingDays: 3,
	}}
	uc := newUseCase(&fakeBookingRepo{}, &fakeHoursRepo{}, config, testNow)

	farDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: farDate})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeHoursRepo{}, &fakeConfigRepo{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0, Date: futureDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
