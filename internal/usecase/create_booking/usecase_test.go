package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/business"
	configRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/config"
	whRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ChatbotService/pkg/ptr"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// fakeBookingRepo хранит записи в памяти; защищен мьютексом,
// чтобы конкурентные тесты видели консистентный снимок
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
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

type fakeBusinessRepo struct {
	business *domain.Business
	service  *domain.Service
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, _ int64) (*domain.Business, error) {
	if f.business == nil {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeBusinessRepo) GetService(_ context.Context, _, _ int64) (*domain.Service, error) {
	if f.service == nil {
		return nil, businessRepo.ErrServiceNotFound
	}
	return f.service, nil
}

// fakeTxManager имитирует сериализуемые транзакции глобальным мьютексом:
// конкурентные коммиты выполняются строго по очереди
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

var testNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func futureDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	bookings *fakeBookingRepo
	hours    *fakeHoursRepo
	config   *fakeConfigRepo
	business *fakeBusinessRepo
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		hours: &fakeHoursRepo{hours: &domain.WorkingHours{
			BusinessID: 1,
			Windows:    []domain.Interval{interval("09:00", "18:00")},
		}},
		config:   &fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		business: &fakeBusinessRepo{business: &domain.Business{ID: 1, Name: "Barbershop"}},
	}
	f.uc = NewUseCase(f.bookings, f.hours, f.config, f.business, &fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func request(start, end string) *Request {
	req := &Request{
		BusinessID:    1,
		CustomerPhone: "+79991234567",
		Date:          futureDate(),
		StartTime:     types.TimeString(start),
	}
	if end != "" {
		req.EndTime = ptr.Ptr(types.TimeString(end))
	}
	return req
}

func TestExecute_CreatesBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("10:00", "10:30"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_EndTimeFromServiceDuration(t *testing.T) {
	f := newFixture()
	f.business.service = &domain.Service{ID: 7, Name: "Haircut", DurationMinutes: 45}

	req := request("10:00", "")
	req.ServiceID = ptr.Ptr(int64(7))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	require.NotNil(t, resp.ServiceName)
	assert.Equal(t, "Haircut", *resp.ServiceName)
}

func TestExecute_EndTimeFromGranularity(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("10:00", ""))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
}

func TestExecute_Conflict(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("10:30", "11:30"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestExecute_TouchingBookingsDoNotConflict(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("10:00", "11:00"))
	require.NoError(t, err)

	// Запись встык к существующей допустима
	_, err = f.uc.Execute(context.Background(), request("11:00", "12:00"))
	assert.NoError(t, err)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("17:30", "18:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_NoWorkingHoursConfigured(t *testing.T) {
	f := newFixture()
	f.hours.hours = nil
	f.hours.err = whRepo.ErrWorkingHoursNotFound

	_, err := f.uc.Execute(context.Background(), request("10:00", "10:30"))
	assert.ErrorIs(t, err, ErrNoWorkingHours)
}

func TestExecute_DefaultWindowsFallback(t *testing.T) {
	f := newFixture()
	f.hours.hours = nil
	f.hours.err = whRepo.ErrWorkingHoursNotFound
	f.config.err = nil
	f.config.config = &domain.BusinessConfig{
		BusinessID:         1,
		GranularityMinutes: 30,
		UseDefaultHours:    true,
		DefaultWindows:     []domain.Interval{interval("12:00", "15:00")},
	}

	_, err := f.uc.Execute(context.Background(), request("12:00", "12:30"))
	assert.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("10:00", "10:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	f := newFixture()
	f.business.business = nil

	_, err := f.uc.Execute(context.Background(), request("10:00", "10:30"))
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()

	req := request("10:00", "")
	req.ServiceID = ptr.Ptr(int64(99))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidTimeFormat(t *testing.T) {
	f := newFixture()

	req := request("25:00", "26:00")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestExecute_InvalidInterval(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("11:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_TooLateToBook(t *testing.T) {
	f := newFixture()
	// Сейчас 10:00 того же дня, уведомление 60 минут
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	f.uc.timeProvider = &fixedTimeProvider{now: now}

	_, err := f.uc.Execute(context.Background(), request("10:30", "11:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture()

	req := request("10:00", "10:30")
	req.Date = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:            100,
		BusinessID:    1,
		CustomerPhone: "+79990000000",
		Date:          futureDate(),
		StartTime:     types.TimeString("10:00"),
		EndTime:       types.TimeString("11:00"),
		Status:        domain.StatusCancelledByCustomer,
	})

	// Отмененная запись не должна считаться занятым временем
	_, err := f.uc.Execute(context.Background(), request("10:00", "11:00"))
	assert.NoError(t, err)
}

// Конкурентные попытки записаться на одно и то же время:
// ровно одна должна пройти, остальные получить ErrConflict
func TestExecute_ConcurrentSameSlot_OnlyOneWins(t *testing.T) {
	f := newFixture()

	const attempts = 20

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), request("10:00", "11:00"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.bookings.bookings, 1)
}
