package conversation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChatbotService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("conversation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("conversation.repository: failed to execute query")
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository журнал переписки бота с клиентами
// Только запись: чтение происходит руками при разборе инцидентов.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переписки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Log записывает одну пару "сообщение - ответ"
func (r *Repository) Log(ctx context.Context, conv *domain.Conversation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("conversations").
		Columns(
			"business_id",
			"customer_phone",
			"message",
			"reply",
			"msg_date",
		).
		Values(
			conv.BusinessID,
			conv.CustomerPhone,
			conv.Message,
			conv.Reply,
			conv.Date,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Log - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&conv.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: Log - execute insert: %v", ErrExecQuery, err)
	}

	conv.CreatedAt = createdAt.Time

	return nil
}
