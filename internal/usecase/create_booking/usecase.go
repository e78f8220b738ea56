package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ChatbotService/internal/availability"
	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/business"
	configRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/config"
	whRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	bookingRepo  BookingRepository
	hoursRepo    WorkingHoursRepository
	configRepo   ConfigRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	hoursRepo WorkingHoursRepository,
	configRepo ConfigRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		hoursRepo:    hoursRepo,
		configRepo:   configRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%d, customer=%s, date=%s, time=%s",
		req.BusinessID, req.CustomerPhone, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование бизнеса
	if _, err := uc.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Получаем услугу, если она указана
	var service *domain.Service
	if req.ServiceID != nil {
		svc, err := uc.businessRepo.GetService(ctx, req.BusinessID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		service = svc
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем настройки бизнеса, при отсутствии - дефолтные
		config, err := uc.configRepo.GetByBusinessID(txCtx, req.BusinessID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultBusinessConfig(req.BusinessID)
			uc.logger.Info("CreateBooking: using default config for business=%d", req.BusinessID)
		}

		// 5.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Вычисляем запрашиваемый интервал
		requested, err := uc.resolveInterval(req, service, config)
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to resolve interval: %v", err)
			return err
		}

		// 5.4. Получаем рабочие окна на дату
		windows, err := uc.resolveWindows(txCtx, req, config)
		if err != nil {
			return err
		}

		// 5.5. Валидация времени записи (minBookingNoticeMinutes)
		if err := validateBookingTime(req.Date, requested.Start, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 5.6. Получаем все активные записи на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BusinessBookingsFilter{
			BusinessID:      req.BusinessID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные записи
		}

		bookings, err := uc.bookingRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		occupied := make([]domain.Interval, 0, len(bookings))
		for _, b := range bookings {
			// Пропускаем неактивные записи
			if !b.IsActive() {
				continue
			}
			occupied = append(occupied, b.Interval())
		}

		// 5.7. Проверяем интервал: внутри рабочего окна и без пересечений
		if err := availability.ValidateRequest(requested, windows, occupied); err != nil {
			uc.logger.Warn("CreateBooking: interval check failed for %s: %v", requested, err)
			return mapAvailabilityError(err)
		}

		// 5.8. Создаем запись с денормализацией данных услуги
		booking := &domain.Booking{
			Reference:     uuid.NewString(),
			BusinessID:    req.BusinessID,
			CustomerPhone: req.CustomerPhone,
			ServiceID:     req.ServiceID,
			Date:          req.Date,
			StartTime:     requested.Start,
			EndTime:       requested.End,
			Status:        domain.StatusConfirmed,
			Notes:         req.Notes,
		}
		if service != nil {
			booking.ServiceName = &service.Name
		}

		// 5.9. Сохраняем запись
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		Reference:     result.Reference,
		BusinessID:    result.BusinessID,
		CustomerPhone: result.CustomerPhone,
		ServiceID:     result.ServiceID,
		Date:          result.Date,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
		ServiceName:   result.ServiceName,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// resolveInterval вычисляет интервал записи: явный конец в приоритете,
// затем длительность услуги, затем один шаг granularity
func (uc *UseCase) resolveInterval(req *Request, service *domain.Service, config *domain.BusinessConfig) (domain.Interval, error) {
	var end types.TimeString

	switch {
	case req.EndTime != nil:
		end = *req.EndTime
	case service != nil:
		e, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			return domain.Interval{}, fmt.Errorf("%w: booking does not fit in the day", ErrInvalidInterval)
		}
		end = e
	default:
		e, err := req.StartTime.AddMinutes(config.GranularityMinutes)
		if err != nil {
			return domain.Interval{}, fmt.Errorf("%w: booking does not fit in the day", ErrInvalidInterval)
		}
		end = e
	}

	requested := domain.Interval{Start: req.StartTime, End: end}
	if err := requested.Validate(); err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	return requested, nil
}

// resolveWindows возвращает рабочие окна на дату: явный график в приоритете,
// затем дефолтный из настроек бизнеса. Захардкоженных часов по умолчанию нет.
func (uc *UseCase) resolveWindows(ctx context.Context, req *Request, config *domain.BusinessConfig) ([]domain.Interval, error) {
	hours, err := uc.hoursRepo.GetByBusinessAndDate(ctx, req.BusinessID, req.Date)
	if err == nil {
		return hours.Windows, nil
	}

	if !errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
		uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if config.UseDefaultHours && len(config.DefaultWindows) > 0 {
		uc.logger.Info("CreateBooking: using default windows for business=%d, date=%s",
			req.BusinessID, req.Date.Format(domain.DateFormat))
		return config.DefaultWindows, nil
	}

	uc.logger.Warn("CreateBooking: no working hours for business=%d, date=%s",
		req.BusinessID, req.Date.Format(domain.DateFormat))
	return nil, ErrNoWorkingHours
}

// mapAvailabilityError переводит ошибки проверки интервала в ошибки usecase
func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrNoWorkingHours):
		return ErrNoWorkingHours
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		return ErrOutsideWorkingHours
	case errors.Is(err, availability.ErrConflict):
		return ErrConflict
	case errors.Is(err, availability.ErrInvalidInterval):
		return ErrInvalidInterval
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
