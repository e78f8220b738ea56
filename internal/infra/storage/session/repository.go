package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound возвращается, когда клиент еще не выбирал бизнес
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrExecCommand возвращается при ошибке выполнения команды Redis
	ErrExecCommand = errors.New("session.repository: failed to execute command")
)

// Repository хранит выбранный клиентом бизнес между сообщениями
// Ключ - номер телефона клиента, значение - id бизнеса, с TTL.
type Repository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(client *redis.Client, ttl time.Duration) *Repository {
	return &Repository{client: client, ttl: ttl}
}

func key(customerPhone string) string {
	return "session:business:" + customerPhone
}

// GetSelectedBusiness возвращает id бизнеса, выбранного клиентом
func (r *Repository) GetSelectedBusiness(ctx context.Context, customerPhone string) (int64, error) {
	val, err := r.client.Get(ctx, key(customerPhone)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetSelectedBusiness - GET: %v", ErrExecCommand, err)
	}

	businessID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: GetSelectedBusiness - parse value %q: %v", ErrExecCommand, val, err)
	}

	return businessID, nil
}

// SetSelectedBusiness запоминает выбор бизнеса и продлевает TTL сессии
func (r *Repository) SetSelectedBusiness(ctx context.Context, customerPhone string, businessID int64) error {
	if err := r.client.Set(ctx, key(customerPhone), strconv.FormatInt(businessID, 10), r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetSelectedBusiness - SET: %v", ErrExecCommand, err)
	}

	return nil
}

// ClearSelectedBusiness сбрасывает выбор бизнеса
func (r *Repository) ClearSelectedBusiness(ctx context.Context, customerPhone string) error {
	if err := r.client.Del(ctx, key(customerPhone)).Err(); err != nil {
		return fmt.Errorf("%w: ClearSelectedBusiness - DEL: %v", ErrExecCommand, err)
	}

	return nil
}
