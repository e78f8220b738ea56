package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-ChatbotService/pkg/metrics"
)

// DBExecutor интерфейс для выполнения SQL-запросов
// Реализуется *sql.DB, *sql.Tx и обёрткой *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txContextKey struct{}

// WithTx кладет активную транзакцию в контекст
// Репозитории достают её через GetExecutor и выполняют запросы внутри транзакции
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(TxExecutor)
	return ok
}

// DB обёртка над *sql.DB, записывающая метрики длительности запросов
type DB struct {
	db        *sql.DB
	collector *metrics.Metrics
}

// WrapWithDefault оборачивает *sql.DB в сборщик метрик и запускает
// периодический сбор состояния пула соединений (до закрытия stopCh)
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, collector: collector}

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				collector.SetDBConnections("open", float64(stats.OpenConnections))
				collector.SetDBConnections("in_use", float64(stats.InUse))
				collector.SetDBConnections("idle", float64(stats.Idle))
			case <-stopCh:
				return
			}
		}
	}()

	return wrapped
}

// ExecContext выполняет запрос с записью метрики
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.collector.ObserveDBQuery("exec", time.Since(start).Seconds())
	return res, err
}

// QueryContext выполняет запрос с записью метрики
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.collector.ObserveDBQuery("query", time.Since(start).Seconds())
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрики
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.collector.ObserveDBQuery("query_row", time.Since(start).Seconds())
	return row
}

// BeginTx начинает транзакцию (сама транзакция метрик не пишет)
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return d.db.BeginTx(ctx, opts)
}
