package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChatbotService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"reference",
	"business_id",
	"customer_phone",
	"service_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"service_name",
	"notes",
	"reminder_sent",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Создание со свободной проверкой слота обязано выполняться внутри
// сериализуемой транзакции вместе с повторным чтением бронирований -
// иначе два конкурентных запроса запишутся на один и тот же слот.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"business_id",
			"customer_phone",
			"service_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"service_name",
			"notes",
		).
		Values(
			booking.Reference,
			booking.BusinessID,
			booking.CustomerPhone,
			booking.ServiceID,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ServiceName,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByReference получает бронирование по номеру подтверждения
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reference": reference}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByReference")
}

// GetByCustomerPhone получает историю бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerPhone(ctx context.Context, phone string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_phone": phone}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByBusinessWithFilter получает бронирования бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований.
//
// Внутри транзакции при запросе на конкретную дату добавляет FOR UPDATE -
// это блокировка, на которой держится повторная проверка конфликта
// в usecase создания бронирования.
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		// Для конкретной даты сортируем по времени начала (ASC)
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Блокируем строки дня при чтении внутри транзакции создания бронирования
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListDueReminders получает подтверждённые бронирования, начинающиеся в окне
// (from, to] по парам (дата, время начала), по которым ещё не отправлено
// напоминание. Окно вместо точной минуты: пропущенный тик диспетчера не
// теряет напоминания
func (r *Repository) ListDueReminders(ctx context.Context, fromDate time.Time, fromTime types.TimeString, toDate time.Time, toTime types.TimeString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"status":        domain.StatusConfirmed,
			"reminder_sent": false,
		}).
		Where(squirrel.Expr("(booking_date, start_time) > (?, ?)", fromDate, fromTime)).
		Where(squirrel.Expr("(booking_date, start_time) <= (?, ?)", toDate, toTime)).
		OrderBy("booking_date ASC, start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// MarkReminderSent помечает бронирование как "напоминание отправлено"
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.BusinessID,
		&booking.CustomerPhone,
		&booking.ServiceID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.ServiceName,
		&booking.Notes,
		&booking.ReminderSent,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.BusinessID,
			&booking.CustomerPhone,
			&booking.ServiceID,
			&booking.Date,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.ServiceName,
			&booking.Notes,
			&booking.ReminderSent,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
