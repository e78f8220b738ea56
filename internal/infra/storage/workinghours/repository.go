package workinghours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChatbotService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с рабочими часами
// Окна хранятся строками в working_hour_windows, по одной строке на окно.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessAndDate получает рабочие окна бизнеса на дату
// Возвращает ErrWorkingHoursNotFound, если на дату не задано ни одного окна
func (r *Repository) GetByBusinessAndDate(ctx context.Context, businessID int64, date time.Time) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("working_hour_windows").
		Where(squirrel.Eq{"business_id": businessID, "work_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := &domain.WorkingHours{
		BusinessID: businessID,
		Date:       date,
		Windows:    make([]domain.Interval, 0),
	}

	for rows.Next() {
		var window domain.Interval
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&window.Start, &window.End, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByBusinessAndDate - scan window: %v", ErrScanRow, err)
		}

		hours.Windows = append(hours.Windows, window)
		hours.CreatedAt = createdAt.Time
		hours.UpdatedAt = updatedAt.Time
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndDate - rows error: %v", ErrScanRow, err)
	}

	if len(hours.Windows) == 0 {
		return nil, ErrWorkingHoursNotFound
	}

	return hours, nil
}

// Replace целиком заменяет рабочие окна бизнеса на дату
// Replace-on-write: старые окна удаляются, новые вставляются.
// Должен вызываться внутри транзакции, чтобы не оставить день без окон
// при падении между delete и insert.
func (r *Repository) Replace(ctx context.Context, hours *domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hour_windows").
		Where(squirrel.Eq{"business_id": hours.BusinessID, "work_date": hours.Date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours.Windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("working_hour_windows").
		Columns("business_id", "work_date", "start_time", "end_time")

	for _, window := range hours.Windows {
		insertBuilder = insertBuilder.Values(hours.BusinessID, hours.Date, window.Start, window.End)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: Replace - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
