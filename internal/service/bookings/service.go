package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChatbotService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ChatbotService/internal/service/bookings/models"
)

// Service сервис для работы с записями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает запись по публичному номеру
// Номер выдается клиенту ботом при подтверждении записи
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю записей клиента по телефону
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s, status=%v", req.CustomerPhone, req.Status)

	if req.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%s", *req.Status, req.CustomerPhone)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerPhone(ctx, req.CustomerPhone, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", req.CustomerPhone, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%s", len(bookings), req.CustomerPhone)
	return models.FromDomainBookingList(bookings), nil
}

// GetBusinessBookings получает записи бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
//
// Примеры использования:
// - Все активные записи: GetBusinessBookings(ctx, &GetBusinessBookingsRequest{BusinessID: 123})
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отмененные: IncludeInactive = true
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d", req.BusinessID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись (cancelled_by_customer):
// телефон в запросе должен совпасть с телефоном записи.
// Отмена без телефона доступна владельцу через API и помечается cancelled_by_business.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	// Получаем запись
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены
	cancelStatus := domain.StatusCancelledByBusiness
	if req.CustomerPhone != nil {
		if booking.CustomerPhone != *req.CustomerPhone {
			s.logger.Warn("Cancel: phone mismatch for booking id=%d", bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByCustomer
	}

	// Отменяем запись
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи (completed, no_show и т.д.)
// Доступно владельцу через API
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}
