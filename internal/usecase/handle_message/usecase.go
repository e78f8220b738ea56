package handle_message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/business"
	sessionRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/session"
	"github.com/m04kA/SMC-ChatbotService/internal/integrations/openai"
	"github.com/m04kA/SMC-ChatbotService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ChatbotService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ChatbotService/pkg/ptr"
)

// Ответы клиенту при выполнении действий и ошибках
const (
	msgDefaultGreeting = "Hi!"

	msgAIUnavailable = "Sorry, I am having trouble right now. Please try again in a minute."

	msgSelectBusinessFirst = "Please select a business first before booking or ordering."
	msgBusinessSelected    = "Great! I've selected %s for you. How can I help?"
	msgBusinessNotFound    = "Sorry, I couldn't find that business. Please try again."

	msgBookingConfirmed   = "You're booked for %s-%s on %s. Your booking reference is %s. See you then!"
	msgSlotTaken          = "Sorry, that time is already taken. Free time today: %s."
	msgOutsideHours       = "Sorry, that time is outside working hours. Free time today: %s."
	msgNoWorkingHours     = "Sorry, the schedule for that day is not set up yet. Please try another day."
	msgTooLateToBook      = "Sorry, that time is too soon. Please pick a later time."
	msgBadBookingTime     = "Sorry, I couldn't understand the booking time. Please try again."
	msgBookingFailed      = "Sorry, something went wrong booking your appointment. Please try again."
	msgServiceUnknown     = "Sorry, I couldn't find that service. Please choose one from the list."

	msgOrderConfirmed = "Your order has been placed! Order reference: %s. Please come to pick it up."
	msgProductUnknown = "Sorry, I couldn't find that product. Please choose one from the list."
	msgOrderFailed    = "Sorry, something went wrong with your order. Please try again."
)

// UseCase use case обработки входящего WhatsApp-сообщения
type UseCase struct {
	createBooking CreateBookingUseCase
	getSlots      GetAvailableSlotsUseCase
	businessRepo  BusinessRepository
	orderRepo     OrderRepository
	sessionRepo   SessionRepository
	convRepo      ConversationRepository
	ai            AIClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	createBooking CreateBookingUseCase,
	getSlots GetAvailableSlotsUseCase,
	businessRepo BusinessRepository,
	orderRepo OrderRepository,
	sessionRepo SessionRepository,
	convRepo ConversationRepository,
	ai AIClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		createBooking: createBooking,
		getSlots:      getSlots,
		businessRepo:  businessRepo,
		orderRepo:     orderRepo,
		sessionRepo:   sessionRepo,
		convRepo:      convRepo,
		ai:            ai,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute обрабатывает входящее сообщение и возвращает ответ бота
// Ошибки действий не прерывают диалог: клиент всегда получает текст.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.From == "" {
		return nil, fmt.Errorf("%w: from is required", ErrInvalidInput)
	}

	message := req.Body
	if message == "" {
		message = msgDefaultGreeting
	}

	uc.logger.Info("HandleMessage: customer=%s, to=%s", req.From, req.To)

	now := uc.timeProvider.Now()

	// 1. Определяем бизнес: по входящему номеру, затем по сессии
	business := uc.resolveBusiness(ctx, req)

	// 2. Собираем контекст для модели
	prompt, err := uc.buildPrompt(ctx, business, now)
	if err != nil {
		uc.logger.Error("HandleMessage: failed to build prompt: %v", err)
		return nil, fmt.Errorf("%w: failed to build prompt: %v", ErrInternal, err)
	}

	// 3. Запрашиваем ответ модели; при недоступности отвечаем шаблоном
	reply, err := uc.ai.CompleteWithGracefulDegradation(ctx, []openai.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		reply = msgAIUnavailable
	}

	// 4. Разбираем и выполняем действие из ответа модели
	if action := parseAction(reply); action.Type != ActionNone {
		reply = uc.executeAction(ctx, req, business, action, now)
	}

	// 5. Журналируем переписку; ошибка журнала не ломает ответ клиенту
	conv := &domain.Conversation{
		CustomerPhone: req.From,
		Message:       message,
		Reply:         reply,
		Date:          now,
	}
	if business != nil {
		conv.BusinessID = ptr.Ptr(business.ID)
	}
	if err := uc.convRepo.Log(ctx, conv); err != nil {
		uc.logger.Error("HandleMessage: failed to log conversation: %v", err)
	}

	return &Response{Reply: reply}, nil
}

// resolveBusiness определяет бизнес для диалога
func (uc *UseCase) resolveBusiness(ctx context.Context, req *Request) *domain.Business {
	if req.To != "" {
		business, err := uc.businessRepo.GetByWhatsAppNumber(ctx, req.To)
		if err == nil {
			return business
		}
		if !errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Error("HandleMessage: failed to get business by number %s: %v", req.To, err)
		}
	}

	businessID, err := uc.sessionRepo.GetSelectedBusiness(ctx, req.From)
	if err != nil {
		if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Error("HandleMessage: failed to get session for %s: %v", req.From, err)
		}
		return nil
	}

	business, err := uc.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if !errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Error("HandleMessage: failed to get business id=%d: %v", businessID, err)
		}
		return nil
	}

	return business
}

// buildPrompt собирает системный промпт с контекстом бизнеса
func (uc *UseCase) buildPrompt(ctx context.Context, business *domain.Business, now time.Time) (string, error) {
	if business == nil {
		directory, err := uc.businessRepo.Search(ctx, "", "")
		if err != nil {
			return "", fmt.Errorf("failed to search businesses: %v", err)
		}
		return buildSystemPrompt(nil, nil, nil, "", directory, now), nil
	}

	var services []*domain.Service
	var products []*domain.Product
	freeSlots := "unknown"

	switch business.Category {
	case domain.CategoryServices:
		svcs, err := uc.businessRepo.ListServices(ctx, business.ID)
		if err != nil {
			return "", fmt.Errorf("failed to list services: %v", err)
		}
		services = svcs

		slots, err := uc.getSlots.Execute(ctx, &get_available_slots.Request{
			BusinessID: business.ID,
			Date:       now,
		})
		switch {
		case err == nil:
			freeSlots = formatFreeSlotsForPrompt(slots.FreeRanges)
		case errors.Is(err, get_available_slots.ErrNoWorkingHours):
			freeSlots = "closed today"
		default:
			uc.logger.Warn("HandleMessage: failed to get free slots for business=%d: %v", business.ID, err)
		}
	case domain.CategoryProducts:
		prods, err := uc.businessRepo.ListProducts(ctx, business.ID)
		if err != nil {
			return "", fmt.Errorf("failed to list products: %v", err)
		}
		products = prods
	}

	return buildSystemPrompt(business, services, products, freeSlots, nil, now), nil
}

// executeAction выполняет действие, закодированное моделью, и
// возвращает текст подтверждения или ошибки для клиента
func (uc *UseCase) executeAction(ctx context.Context, req *Request, business *domain.Business, action Action, now time.Time) string {
	switch action.Type {
	case ActionSelectBusiness:
		return uc.selectBusiness(ctx, req.From, action.BusinessID)

	case ActionBookInterval, ActionBookService:
		if business == nil {
			return msgSelectBusinessFirst
		}
		return uc.book(ctx, req.From, business, action, now)

	case ActionOrderProduct:
		if business == nil {
			return msgSelectBusinessFirst
		}
		return uc.order(ctx, req.From, business, action)
	}

	return msgAIUnavailable
}

func (uc *UseCase) selectBusiness(ctx context.Context, customerPhone string, businessID int64) string {
	business, err := uc.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return msgBusinessNotFound
		}
		uc.logger.Error("HandleMessage: failed to get business id=%d: %v", businessID, err)
		return msgBusinessNotFound
	}

	if err := uc.sessionRepo.SetSelectedBusiness(ctx, customerPhone, businessID); err != nil {
		uc.logger.Error("HandleMessage: failed to save session for %s: %v", customerPhone, err)
		return msgBusinessNotFound
	}

	return fmt.Sprintf(msgBusinessSelected, business.Name)
}

func (uc *UseCase) book(ctx context.Context, customerPhone string, business *domain.Business, action Action, now time.Time) string {
	bookingReq := &create_booking.Request{
		BusinessID:    business.ID,
		CustomerPhone: customerPhone,
		Date:          now,
		StartTime:     action.StartTime,
	}

	switch action.Type {
	case ActionBookInterval:
		bookingReq.EndTime = ptr.Ptr(action.EndTime)
	case ActionBookService:
		bookingReq.ServiceID = ptr.Ptr(action.ServiceID)
	}

	created, err := uc.createBooking.Execute(ctx, bookingReq)
	if err != nil {
		return uc.bookingErrorReply(ctx, business, err, now)
	}

	return fmt.Sprintf(msgBookingConfirmed,
		created.StartTime, created.EndTime, created.Date.Format(domain.DateFormat), created.Reference)
}

// bookingErrorReply переводит ошибки create_booking в ответ клиенту,
// при конфликте подсказывая оставшееся свободное время
func (uc *UseCase) bookingErrorReply(ctx context.Context, business *domain.Business, err error, now time.Time) string {
	switch {
	case errors.Is(err, create_booking.ErrConflict):
		return fmt.Sprintf(msgSlotTaken, uc.freeSlotsHint(ctx, business.ID, now))
	case errors.Is(err, create_booking.ErrOutsideWorkingHours):
		return fmt.Sprintf(msgOutsideHours, uc.freeSlotsHint(ctx, business.ID, now))
	case errors.Is(err, create_booking.ErrNoWorkingHours):
		return msgNoWorkingHours
	case errors.Is(err, create_booking.ErrTooLateToBook):
		return msgTooLateToBook
	case errors.Is(err, create_booking.ErrInvalidTimeFormat),
		errors.Is(err, create_booking.ErrInvalidInterval),
		errors.Is(err, create_booking.ErrInvalidDate):
		return msgBadBookingTime
	case errors.Is(err, create_booking.ErrServiceNotFound):
		return msgServiceUnknown
	default:
		uc.logger.Error("HandleMessage: booking failed: %v", err)
		return msgBookingFailed
	}
}

func (uc *UseCase) freeSlotsHint(ctx context.Context, businessID int64, now time.Time) string {
	slots, err := uc.getSlots.Execute(ctx, &get_available_slots.Request{
		BusinessID: businessID,
		Date:       now,
	})
	if err != nil {
		return "none"
	}
	return formatFreeSlotsForPrompt(slots.FreeRanges)
}

func (uc *UseCase) order(ctx context.Context, customerPhone string, business *domain.Business, action Action) string {
	if action.Quantity <= 0 {
		return msgOrderFailed
	}

	product, err := uc.businessRepo.GetProduct(ctx, business.ID, action.ProductID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrProductNotFound) {
			return msgProductUnknown
		}
		uc.logger.Error("HandleMessage: failed to get product id=%d: %v", action.ProductID, err)
		return msgOrderFailed
	}

	order := &domain.Order{
		Reference:     uuid.NewString(),
		BusinessID:    business.ID,
		CustomerPhone: customerPhone,
		ProductID:     product.ID,
		Quantity:      action.Quantity,
		Status:        domain.OrderStatusCreated,
		ProductName:   product.Name,
	}

	created, err := uc.orderRepo.Create(ctx, order)
	if err != nil {
		uc.logger.Error("HandleMessage: failed to create order: %v", err)
		return msgOrderFailed
	}

	return fmt.Sprintf(msgOrderConfirmed, created.Reference)
}
