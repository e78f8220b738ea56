package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	businessRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/business"
	configRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/config"
	whRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ChatbotService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием и настройками бизнеса
type Service struct {
	hoursRepo    WorkingHoursRepository
	configRepo   ConfigRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	hoursRepo WorkingHoursRepository,
	configRepo ConfigRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		hoursRepo:    hoursRepo,
		configRepo:   configRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWorkingHours получает рабочие часы бизнеса на дату
func (s *Service) GetWorkingHours(ctx context.Context, businessID int64, date time.Time) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetWorkingHours: business=%d, date=%s", businessID, date.Format(domain.DateFormat))

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	hours, err := s.hoursRepo.GetByBusinessAndDate(ctx, businessID, date)
	if err != nil {
		if errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
			s.logger.Warn("GetWorkingHours: no hours for business=%d, date=%s",
				businessID, date.Format(domain.DateFormat))
			return nil, ErrWorkingHoursNotFound
		}
		s.logger.Error("GetWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHours(hours), nil
}

// SetWorkingHours задает рабочие часы бизнеса на дату (replace-on-write)
// Окна валидируются здесь: каждое start < end, без попарных пересечений.
// Пустой список окон закрывает день.
func (s *Service) SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetWorkingHours: business=%d, date=%s, windows=%d",
		req.BusinessID, req.Date, len(req.Windows))

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("SetWorkingHours: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	// Проверяем существование бизнеса
	if _, err := s.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("SetWorkingHours: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("SetWorkingHours: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	hours := &domain.WorkingHours{
		BusinessID: req.BusinessID,
		Date:       date,
		Windows:    models.ToDomainWindows(req.Windows),
	}

	// Валидируем окна до записи
	if err := hours.Validate(); err != nil {
		s.logger.Warn("SetWorkingHours: invalid windows: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Replace должен выполняться атомарно: удаление и вставка в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.hoursRepo.Replace(txCtx, hours)
	})
	if err != nil {
		s.logger.Error("SetWorkingHours: failed to replace hours: %v", err)
		return nil, fmt.Errorf("%w: SetWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetWorkingHours: saved %d windows for business=%d, date=%s",
		len(hours.Windows), req.BusinessID, req.Date)

	return models.FromDomainWorkingHours(hours), nil
}

// GetConfig получает настройки бизнеса
// Если настройки не сохранялись, возвращает дефолтные
func (s *Service) GetConfig(ctx context.Context, businessID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	cfg, err := s.configRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetConfig: using defaults for business=%d", businessID)
			return models.FromDomainConfig(domain.DefaultBusinessConfig(businessID)), nil
		}
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// UpdateConfig обновляет настройки бизнеса
// Переданные поля валидируются и применяются поверх текущих (или дефолтных)
func (s *Service) UpdateConfig(ctx context.Context, businessID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	// Проверяем существование бизнеса
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("UpdateConfig: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("UpdateConfig: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// Берем текущие настройки или дефолтные
	cfg, err := s.configRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("UpdateConfig: repository error: %v", err)
			return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
		}
		cfg = domain.DefaultBusinessConfig(businessID)
	}

	if err := s.applyUpdate(cfg, req); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateConfig: failed to upsert config: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: saved config for business=%d", businessID)
	return models.FromDomainConfig(updated), nil
}

// applyUpdate применяет переданные поля к настройкам с валидацией
func (s *Service) applyUpdate(cfg *domain.BusinessConfig, req *models.UpdateConfigRequest) error {
	if req.GranularityMinutes != nil {
		g := *req.GranularityMinutes
		if g < domain.MinGranularityMinutes || g > domain.MaxGranularityMinutes {
			return fmt.Errorf("%w: granularityMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
		}
		cfg.GranularityMinutes = g
	}

	if req.MinBookingNoticeMinutes != nil {
		n := *req.MinBookingNoticeMinutes
		if n < domain.MinNoticeMinutes || n > domain.MaxNoticeMinutes {
			return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
		}
		cfg.MinBookingNoticeMinutes = n
	}

	if req.AdvanceBookingDays != nil {
		d := *req.AdvanceBookingDays
		if d < domain.MinAdvanceBookingDays || d > domain.MaxAdvanceBookingDays {
			return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
				ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
		}
		cfg.AdvanceBookingDays = d
	}

	if req.UseDefaultHours != nil {
		cfg.UseDefaultHours = *req.UseDefaultHours
	}

	if req.DefaultWindows != nil {
		windows := models.ToDomainWindows(req.DefaultWindows)
		check := &domain.WorkingHours{Windows: windows}
		if err := check.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		cfg.DefaultWindows = windows
	}

	return nil
}
