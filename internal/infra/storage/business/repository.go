package business

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

var businessColumns = []string{
	"id",
	"name",
	"city",
	"address",
	"category",
	"whatsapp_number",
	"created_at",
	"updated_at",
}

// Repository репозиторий справочника бизнесов, услуг и товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBusiness(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByWhatsAppNumber получает бизнес по входящему WhatsApp-номеру
// Основной путь маршрутизации: каждому бизнесу выделен свой номер
func (r *Repository) GetByWhatsAppNumber(ctx context.Context, number string) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns...).
		From("businesses").
		Where(squirrel.Eq{"whatsapp_number": number}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWhatsAppNumber - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBusiness(executor.QueryRowContext(ctx, query, args...), "GetByWhatsAppNumber")
}

// Search ищет бизнесы по подстроке имени и/или городу (без учета регистра)
// Используется потоком SELECT_BUSINESS в боте
func (r *Repository) Search(ctx context.Context, name, city string) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(businessColumns...).
		From("businesses").
		OrderBy("name ASC")

	if name != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": "%" + name + "%"})
	}
	if city != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"city": "%" + city + "%"})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		var b domain.Business
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID, &b.Name, &b.City, &b.Address, &b.Category, &b.WhatsAppNumber,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan business row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		businesses = append(businesses, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %v", ErrScanRow, err)
	}

	return businesses, nil
}

// GetService получает услугу бизнеса по ID
func (r *Repository) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "business_id", "name", "duration_minutes", "price",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID, &svc.BusinessID, &svc.Name, &svc.DurationMinutes, &svc.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// ListServices получает все услуги бизнеса
func (r *Repository) ListServices(ctx context.Context, businessID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "business_id", "name", "duration_minutes", "price",
	).
		From("services").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.BusinessID, &svc.Name, &svc.DurationMinutes, &svc.Price); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan service row: %v", ErrScanRow, err)
		}
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// ListProducts получает все товары бизнеса
func (r *Repository) ListProducts(ctx context.Context, businessID int64) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "business_id", "name", "price",
	).
		From("products").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProducts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProducts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.BusinessID, &product.Name, &product.Price); err != nil {
			return nil, fmt.Errorf("%w: ListProducts - scan product row: %v", ErrScanRow, err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProducts - rows error: %v", ErrScanRow, err)
	}

	return products, nil
}

// GetProduct получает товар бизнеса по ID
func (r *Repository) GetProduct(ctx context.Context, businessID, productID int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "business_id", "name", "price",
	).
		From("products").
		Where(squirrel.Eq{"id": productID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProduct - build select query: %v", ErrBuildQuery, err)
	}

	var product domain.Product
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID, &product.BusinessID, &product.Name, &product.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProduct - scan product: %v", ErrScanRow, err)
	}

	return &product, nil
}

func (r *Repository) scanBusiness(row *sql.Row, op string) (*domain.Business, error) {
	var b domain.Business
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID, &b.Name, &b.City, &b.Address, &b.Category, &b.WhatsAppNumber,
		&createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
