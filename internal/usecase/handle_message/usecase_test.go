package handle_message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/business"
	sessionRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/session"
	"github.com/m04kA/SMC-ChatbotService/internal/integrations/openai"
	"github.com/m04kA/SMC-ChatbotService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ChatbotService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

type fakeCreateBooking struct {
	resp *create_booking.Response
	err  error
	got  *create_booking.Request
}

func (f *fakeCreateBooking) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakeGetSlots struct {
	resp *get_available_slots.Response
	err  error
}

func (f *fakeGetSlots) Execute(_ context.Context, _ *get_available_slots.Request) (*get_available_slots.Response, error) {
	return f.resp, f.err
}

type fakeBusinessRepo struct {
	byNumber map[string]*domain.Business
	byID     map[int64]*domain.Business
	services []*domain.Service
	products []*domain.Product
	all      []*domain.Business
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if biz, ok := f.byID[id]; ok {
		return biz, nil
	}
	return nil, businessRepo.ErrBusinessNotFound
}

func (f *fakeBusinessRepo) GetByWhatsAppNumber(_ context.Context, number string) (*domain.Business, error) {
	if biz, ok := f.byNumber[number]; ok {
		return biz, nil
	}
	return nil, businessRepo.ErrBusinessNotFound
}

func (f *fakeBusinessRepo) Search(_ context.Context, _, _ string) ([]*domain.Business, error) {
	return f.all, nil
}

func (f *fakeBusinessRepo) ListServices(_ context.Context, _ int64) ([]*domain.Service, error) {
	return f.services, nil
}

func (f *fakeBusinessRepo) ListProducts(_ context.Context, _ int64) ([]*domain.Product, error) {
	return f.products, nil
}

func (f *fakeBusinessRepo) GetProduct(_ context.Context, _, productID int64) (*domain.Product, error) {
	for _, product := range f.products {
		if product.ID == productID {
			return product, nil
		}
	}
	return nil, businessRepo.ErrProductNotFound
}

type fakeOrderRepo struct {
	created *domain.Order
	err     error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *order
	created.ID = 1
	f.created = &created
	return &created, nil
}

type fakeSessionRepo struct {
	selected map[string]int64
}

func (f *fakeSessionRepo) GetSelectedBusiness(_ context.Context, phone string) (int64, error) {
	if id, ok := f.selected[phone]; ok {
		return id, nil
	}
	return 0, sessionRepo.ErrSessionNotFound
}

func (f *fakeSessionRepo) SetSelectedBusiness(_ context.Context, phone string, businessID int64) error {
	f.selected[phone] = businessID
	return nil
}

type fakeConvRepo struct {
	logged []*domain.Conversation
}

func (f *fakeConvRepo) Log(_ context.Context, conv *domain.Conversation) error {
	f.logged = append(f.logged, conv)
	return nil
}

type fakeAI struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeAI) CompleteWithGracefulDegradation(_ context.Context, messages []openai.Message) (string, error) {
	if len(messages) > 0 {
		f.prompt = messages[0].Content
	}
	return f.reply, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	createBooking *fakeCreateBooking
	getSlots      *fakeGetSlots
	business      *fakeBusinessRepo
	orders        *fakeOrderRepo
	sessions      *fakeSessionRepo
	conversations *fakeConvRepo
	ai            *fakeAI
	uc            *UseCase
}

func newFixture() *fixture {
	barbershop := &domain.Business{
		ID:             1,
		Name:           "Downtown Barbershop",
		City:           "Haifa",
		Category:       domain.CategoryServices,
		WhatsAppNumber: "+14155238886",
	}

	f := &fixture{
		createBooking: &fakeCreateBooking{},
		getSlots: &fakeGetSlots{resp: &get_available_slots.Response{
			FreeRanges: []domain.Interval{
				{Start: types.TimeString("10:00"), End: types.TimeString("12:00")},
			},
		}},
		business: &fakeBusinessRepo{
			byNumber: map[string]*domain.Business{"+14155238886": barbershop},
			byID:     map[int64]*domain.Business{1: barbershop},
			all:      []*domain.Business{barbershop},
		},
		orders:        &fakeOrderRepo{},
		sessions:      &fakeSessionRepo{selected: map[string]int64{}},
		conversations: &fakeConvRepo{},
		ai:            &fakeAI{reply: "How can I help you?"},
	}
	f.uc = NewUseCase(f.createBooking, f.getSlots, f.business, f.orders, f.sessions, f.conversations, f.ai, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

func request(body string) *Request {
	return &Request{
		From: "+79991234567",
		To:   "+14155238886",
		Body: body,
	}
}

func TestExecute_PlainReplyPassesThrough(t *testing.T) {
	f := newFixture()
	f.ai.reply = "We are open 10:00-12:00 today, want to book?"

	resp, err := f.uc.Execute(context.Background(), request("when are you open?"))
	require.NoError(t, err)

	assert.Equal(t, "We are open 10:00-12:00 today, want to book?", resp.Reply)
}

func TestExecute_PromptContainsFreeSlots(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("hi"))
	require.NoError(t, err)

	assert.Contains(t, f.ai.prompt, "10:00-12:00")
	assert.Contains(t, f.ai.prompt, "Downtown Barbershop")
}

func TestExecute_BookingActionCreatesBooking(t *testing.T) {
	f := newFixture()
	f.ai.reply = "BOOKING: 10:00-11:00"
	f.createBooking.resp = &create_booking.Response{
		Reference: "ref-123",
		Date:      testNow,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
	}

	resp, err := f.uc.Execute(context.Background(), request("book me 10 to 11"))
	require.NoError(t, err)

	require.NotNil(t, f.createBooking.got)
	assert.Equal(t, int64(1), f.createBooking.got.BusinessID)
	assert.Equal(t, "+79991234567", f.createBooking.got.CustomerPhone)
	assert.Equal(t, types.TimeString("10:00"), f.createBooking.got.StartTime)
	require.NotNil(t, f.createBooking.got.EndTime)
	assert.Equal(t, types.TimeString("11:00"), *f.createBooking.got.EndTime)

	assert.Contains(t, resp.Reply, "ref-123")
	assert.Contains(t, resp.Reply, "10:00")
}

func TestExecute_ServiceBookingPassesServiceID(t *testing.T) {
	f := newFixture()
	f.ai.reply = "BOOKING: 7:14:00"
	f.createBooking.resp = &create_booking.Response{
		Reference: "ref-456",
		Date:      testNow,
		StartTime: types.TimeString("14:00"),
		EndTime:   types.TimeString("14:45"),
	}

	_, err := f.uc.Execute(context.Background(), request("book a haircut at 2pm"))
	require.NoError(t, err)

	require.NotNil(t, f.createBooking.got)
	require.NotNil(t, f.createBooking.got.ServiceID)
	assert.Equal(t, int64(7), *f.createBooking.got.ServiceID)
	assert.Nil(t, f.createBooking.got.EndTime)
}

func TestExecute_ConflictSuggestsFreeSlots(t *testing.T) {
	f := newFixture()
	f.ai.reply = "BOOKING: 10:00-11:00"
	f.createBooking.err = create_booking.ErrConflict

	resp, err := f.uc.Execute(context.Background(), request("book me 10 to 11"))
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "already taken")
	assert.Contains(t, resp.Reply, "10:00-12:00")
}

func TestExecute_OutsideWorkingHoursReply(t *testing.T) {
	f := newFixture()
	f.ai.reply = "BOOKING: 20:00-21:00"
	f.createBooking.err = create_booking.ErrOutsideWorkingHours

	resp, err := f.uc.Execute(context.Background(), request("book me 8pm"))
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "outside working hours")
}

func TestExecute_NoWorkingHoursReply(t *testing.T) {
	f := newFixture()
	f.ai.reply = "BOOKING: 10:00-11:00"
	f.createBooking.err = create_booking.ErrNoWorkingHours

	resp, err := f.uc.Execute(context.Background(), request("book me"))
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "not set up yet")
}

func TestExecute_BookingWithoutBusiness(t *testing.T) {
	f := newFixture()
	f.ai.reply = "BOOKING: 10:00-11:00"

	req := request("book me")
	req.To = "+10000000000" // неизвестный номер, сессии нет

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, msgSelectBusinessFirst, resp.Reply)
	assert.Nil(t, f.createBooking.got)
}

func TestExecute_SelectBusinessStoresSession(t *testing.T) {
	f := newFixture()
	f.ai.reply = "SELECT_BUSINESS: 1"

	req := request("I want the downtown one")
	req.To = "+10000000000"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.sessions.selected["+79991234567"])
	assert.Contains(t, resp.Reply, "Downtown Barbershop")
}

func TestExecute_SessionBusinessUsedOnNextMessage(t *testing.T) {
	f := newFixture()
	f.sessions.selected["+79991234567"] = 1
	f.ai.reply = "BOOKING: 10:00-11:00"
	f.createBooking.resp = &create_booking.Response{
		Reference: "ref-789",
		Date:      testNow,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
	}

	req := request("book me 10 to 11")
	req.To = "+10000000000"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "ref-789")
}

func TestExecute_PromptListsProducts(t *testing.T) {
	f := newFixture()
	f.business.byNumber["+14155238886"].Category = domain.CategoryProducts
	price := 15.50
	f.business.products = []*domain.Product{
		{ID: 12, BusinessID: 1, Name: "Pomade", Price: &price},
		{ID: 13, BusinessID: 1, Name: "Shampoo"},
	}

	_, err := f.uc.Execute(context.Background(), request("what do you sell?"))
	require.NoError(t, err)

	// Модель может заказать только то, что видит: товары перечислены с id
	assert.Contains(t, f.ai.prompt, "Products:")
	assert.Contains(t, f.ai.prompt, "id 12: Pomade, 15.50")
	assert.Contains(t, f.ai.prompt, "id 13: Shampoo")
	assert.Contains(t, f.ai.prompt, "ORDER: PRODUCT_ID:QUANTITY")
}

func TestExecute_OrderActionCreatesOrder(t *testing.T) {
	f := newFixture()
	f.business.byNumber["+14155238886"].Category = domain.CategoryProducts
	f.business.products = []*domain.Product{{ID: 12, BusinessID: 1, Name: "Pomade"}}
	f.ai.reply = "ORDER: 12:3"

	resp, err := f.uc.Execute(context.Background(), request("3 pomades please"))
	require.NoError(t, err)

	require.NotNil(t, f.orders.created)
	assert.Equal(t, int64(12), f.orders.created.ProductID)
	assert.Equal(t, 3, f.orders.created.Quantity)
	assert.Equal(t, "Pomade", f.orders.created.ProductName)
	assert.NotEmpty(t, f.orders.created.Reference)

	assert.Contains(t, resp.Reply, f.orders.created.Reference)
}

func TestExecute_UnknownProduct(t *testing.T) {
	f := newFixture()
	f.ai.reply = "ORDER: 99:1"

	resp, err := f.uc.Execute(context.Background(), request("order 99"))
	require.NoError(t, err)

	assert.Equal(t, msgProductUnknown, resp.Reply)
}

func TestExecute_AIDegradedFallback(t *testing.T) {
	f := newFixture()
	f.ai.err = openai.ErrServiceDegraded
	f.ai.reply = ""

	resp, err := f.uc.Execute(context.Background(), request("hi"))
	require.NoError(t, err)

	assert.Equal(t, msgAIUnavailable, resp.Reply)
}

func TestExecute_ConversationLogged(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("hello"))
	require.NoError(t, err)

	require.Len(t, f.conversations.logged, 1)
	logged := f.conversations.logged[0]
	assert.Equal(t, "+79991234567", logged.CustomerPhone)
	assert.Equal(t, "hello", logged.Message)
	require.NotNil(t, logged.BusinessID)
	assert.Equal(t, int64(1), *logged.BusinessID)
}

func TestExecute_EmptyBodyDefaultsToGreeting(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request(""))
	require.NoError(t, err)

	require.Len(t, f.conversations.logged, 1)
	assert.Equal(t, msgDefaultGreeting, f.conversations.logged[0].Message)
}

func TestExecute_MissingFrom(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{To: "+14155238886", Body: "hi"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
