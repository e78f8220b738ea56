package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChatbotService/internal/availability"
	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	configRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/config"
	whRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/workinghours"
)

// UseCase use case для получения свободного времени на дату
type UseCase struct {
	bookingRepo  BookingRepository
	hoursRepo    WorkingHoursRepository
	configRepo   ConfigRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	hoursRepo WorkingHoursRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		hoursRepo:    hoursRepo,
		configRepo:   configRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободного времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s",
		req.BusinessID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки бизнеса, при отсутствии - дефолтные
	config, err := uc.configRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultBusinessConfig(req.BusinessID)
		uc.logger.Info("GetAvailableSlots: using default config for business=%d", req.BusinessID)
	}

	// 4. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем рабочие окна на дату
	windows, err := uc.resolveWindows(ctx, req.BusinessID, req, config)
	if err != nil {
		return nil, err
	}

	// 6. Получаем активные бронирования на эту дату
	filter := domain.BusinessBookingsFilter{
		BusinessID:      req.BusinessID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	occupied := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		// Пропускаем неактивные записи
		if !b.IsActive() {
			continue
		}
		occupied = append(occupied, b.Interval())
	}

	// 7. Вычисляем свободное время
	result, err := availability.ComputeFreeSlots(windows, occupied, config.GranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute free slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute free slots: %v", ErrInternal, err)
	}

	freeRanges := result.FreeRanges
	instants := result.BookableInstants

	// 8. На сегодняшнюю дату отбрасываем время раньше минимального уведомления
	if cutoff, ok := noticeCutoff(req.Date, now, config.MinBookingNoticeMinutes); ok {
		freeRanges = clipRangesByNotice(freeRanges, cutoff)
		instants = filterByNotice(instants, cutoff)
	}

	uc.logger.Info("GetAvailableSlots: business=%d, date=%s: %d free ranges, %d bookable instants",
		req.BusinessID, req.Date.Format(domain.DateFormat), len(freeRanges), len(instants))

	return &Response{
		Date:             req.Date,
		BusinessID:       req.BusinessID,
		FreeRanges:       freeRanges,
		BookableInstants: instants,
	}, nil
}

// resolveWindows возвращает рабочие окна на дату: явный график в приоритете,
// затем дефолтный из настроек бизнеса. Захардкоженных часов по умолчанию нет.
func (uc *UseCase) resolveWindows(ctx context.Context, businessID int64, req *Request, config *domain.BusinessConfig) ([]domain.Interval, error) {
	hours, err := uc.hoursRepo.GetByBusinessAndDate(ctx, businessID, req.Date)
	if err == nil {
		return hours.Windows, nil
	}

	if !errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if config.UseDefaultHours && len(config.DefaultWindows) > 0 {
		uc.logger.Info("GetAvailableSlots: using default windows for business=%d, date=%s",
			businessID, req.Date.Format(domain.DateFormat))
		return config.DefaultWindows, nil
	}

	uc.logger.Warn("GetAvailableSlots: no working hours for business=%d, date=%s",
		businessID, req.Date.Format(domain.DateFormat))
	return nil, ErrNoWorkingHours
}
