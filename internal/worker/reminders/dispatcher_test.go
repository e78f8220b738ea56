package reminders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/ptr"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

type fakeBookingRepo struct {
	due []*domain.Booking

	gotFromDate time.Time
	gotFromTime types.TimeString
	gotToDate   time.Time
	gotToTime   types.TimeString
	markedIDs   []int64
	markErr     error
}

func (f *fakeBookingRepo) ListDueReminders(_ context.Context, fromDate time.Time, fromTime types.TimeString, toDate time.Time, toTime types.TimeString) ([]*domain.Booking, error) {
	f.gotFromDate = fromDate
	f.gotFromTime = fromTime
	f.gotToDate = toDate
	f.gotToTime = toTime
	return f.due, nil
}

func (f *fakeBookingRepo) MarkReminderSent(_ context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedIDs = append(f.markedIDs, id)
	return nil
}

type fakeBusinessRepo struct {
	businesses map[int64]*domain.Business
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	business, ok := f.businesses[id]
	if !ok {
		return nil, errors.New("business not found")
	}
	return business, nil
}

type fakeSender struct {
	sent    map[string]string // phone -> body
	sendErr error
}

func (f *fakeSender) SendWhatsApp(_ context.Context, toNumber, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	if f.sent == nil {
		f.sent = make(map[string]string)
	}
	f.sent[toNumber] = body
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newDispatcher(bookingRepo *fakeBookingRepo, businessRepo *fakeBusinessRepo, sender *fakeSender, now time.Time) *Dispatcher {
	return NewDispatcher(
		Config{LeadMinutes: 60, Location: time.UTC},
		bookingRepo,
		businessRepo,
		sender,
		fixedTimeProvider{now: now},
		nopLogger{},
	)
}

func dueBooking(id int64, phone string) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		Reference:     fmt.Sprintf("ref-%d", id),
		BusinessID:    1,
		CustomerPhone: phone,
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("11:00"),
		EndTime:       types.TimeString("12:00"),
		Status:        domain.StatusConfirmed,
		ServiceName:   ptr.Ptr("Haircut"),
	}
}

func TestTick_SendsReminderAndMarksSent(t *testing.T) {
	bookingRepo := &fakeBookingRepo{due: []*domain.Booking{dueBooking(7, "+79991234567")}}
	businessRepo := &fakeBusinessRepo{businesses: map[int64]*domain.Business{
		1: {ID: 1, Name: "Glow Salon"},
	}}
	sender := &fakeSender{}

	// 10:00 + 60 минут lead -> окно (10:00, 11:00]
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	d := newDispatcher(bookingRepo, businessRepo, sender, now)

	require.NoError(t, d.Tick(context.Background()))

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), bookingRepo.gotFromDate)
	assert.Equal(t, types.TimeString("10:00"), bookingRepo.gotFromTime)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), bookingRepo.gotToDate)
	assert.Equal(t, types.TimeString("11:00"), bookingRepo.gotToTime)

	require.Contains(t, sender.sent, "+79991234567")
	body := sender.sent["+79991234567"]
	assert.Contains(t, body, "Haircut")
	assert.Contains(t, body, "Glow Salon")
	assert.Contains(t, body, "starts in 60 minutes")
	assert.Contains(t, body, "11:00-12:00")
	assert.Contains(t, body, "ref-7")

	assert.Equal(t, []int64{7}, bookingRepo.markedIDs)
}

func TestTick_MissedTickStillReminds(t *testing.T) {
	// Запись на 10:30 должна была получить напоминание на тике 09:30,
	// но тик пропущен (рестарт). Окно (10:00, 11:00] всё равно её подхватывает
	booking := dueBooking(7, "+79991234567")
	booking.StartTime = types.TimeString("10:30")
	booking.EndTime = types.TimeString("11:30")

	bookingRepo := &fakeBookingRepo{due: []*domain.Booking{booking}}
	businessRepo := &fakeBusinessRepo{businesses: map[int64]*domain.Business{1: {ID: 1, Name: "Glow Salon"}}}
	sender := &fakeSender{}

	d := newDispatcher(bookingRepo, businessRepo, sender, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	require.NoError(t, d.Tick(context.Background()))

	require.Contains(t, sender.sent, "+79991234567")
	// Минуты считаются от текущего времени, а не от lead
	assert.Contains(t, sender.sent["+79991234567"], "starts in 30 minutes")
	assert.Equal(t, []int64{7}, bookingRepo.markedIDs)
}

func TestTick_LeadCrossesMidnight(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	d := newDispatcher(bookingRepo, &fakeBusinessRepo{}, &fakeSender{}, time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC))

	require.NoError(t, d.Tick(context.Background()))

	// 23:30 + 60 минут -> окно до следующего дня 00:30
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), bookingRepo.gotFromDate)
	assert.Equal(t, types.TimeString("23:30"), bookingRepo.gotFromTime)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), bookingRepo.gotToDate)
	assert.Equal(t, types.TimeString("00:30"), bookingRepo.gotToTime)
}

func TestTick_SendFailure_NotMarkedSent(t *testing.T) {
	bookingRepo := &fakeBookingRepo{due: []*domain.Booking{dueBooking(7, "+79991234567")}}
	sender := &fakeSender{sendErr: errors.New("twilio down")}

	d := newDispatcher(bookingRepo, &fakeBusinessRepo{}, sender, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	require.NoError(t, d.Tick(context.Background()))
	assert.Empty(t, bookingRepo.markedIDs)
}

func TestTick_SendFailure_DoesNotBlockOthers(t *testing.T) {
	first := dueBooking(1, "+79991111111")
	second := dueBooking(2, "+79992222222")
	bookingRepo := &fakeBookingRepo{due: []*domain.Booking{first, second}}
	businessRepo := &fakeBusinessRepo{businesses: map[int64]*domain.Business{1: {ID: 1, Name: "Glow Salon"}}}
	sender := &fakeSender{sent: map[string]string{}}

	d := newDispatcher(bookingRepo, businessRepo, sender, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	// Первая отправка падает, вторая проходит
	sender.sendErr = errors.New("twilio down")
	require.NoError(t, d.Tick(context.Background()))
	assert.Empty(t, bookingRepo.markedIDs)

	sender.sendErr = nil
	require.NoError(t, d.Tick(context.Background()))
	assert.Equal(t, []int64{1, 2}, bookingRepo.markedIDs)
}

func TestTick_NoDueBookings(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	sender := &fakeSender{}

	d := newDispatcher(bookingRepo, &fakeBusinessRepo{}, sender, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))

	require.NoError(t, d.Tick(context.Background()))
	assert.Empty(t, sender.sent)
	assert.Empty(t, bookingRepo.markedIDs)
}
