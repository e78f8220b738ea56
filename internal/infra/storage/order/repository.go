package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChatbotService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий заказов товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый заказ
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"reference",
			"business_id",
			"customer_phone",
			"product_id",
			"quantity",
			"status",
			"product_name",
		).
		Values(
			order.Reference,
			order.BusinessID,
			order.CustomerPhone,
			order.ProductID,
			order.Quantity,
			order.Status,
			order.ProductName,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&order.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time

	return order, nil
}

// GetByCustomerPhone получает историю заказов клиента
func (r *Repository) GetByCustomerPhone(ctx context.Context, phone string) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reference",
		"business_id",
		"customer_phone",
		"product_id",
		"quantity",
		"status",
		"product_name",
		"created_at",
	).
		From("orders").
		Where(squirrel.Eq{"customer_phone": phone}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		var createdAt sql.NullTime

		err := rows.Scan(
			&o.ID, &o.Reference, &o.BusinessID, &o.CustomerPhone,
			&o.ProductID, &o.Quantity, &o.Status, &o.ProductName, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCustomerPhone - scan order row: %v", ErrScanRow, err)
		}

		o.CreatedAt = createdAt.Time
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerPhone - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}
