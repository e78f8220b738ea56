package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ChatbotService/pkg/dbmetrics"
)

// ErrTransaction возвращается при ошибках управления транзакцией
var ErrTransaction = errors.New("txmanager: transaction error")

// serializationFailure код ошибки Postgres при конфликте сериализуемых транзакций
const serializationFailure = "40001"

// maxSerializableRetries количество повторов сериализуемой транзакции при конфликте
const maxSerializableRetries = 3

// TxBeginner интерфейс источника транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакций
// Транзакция передается вниз через контекст (dbmetrics.WithTx),
// репозитории подхватывают её через dbmetrics.GetExecutor.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции
// При конфликте сериализации (40001) повторяет транзакцию целиком,
// до maxSerializableRetries попыток
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		err = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("%w: serializable retries exhausted: %v", ErrTransaction, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: rollback after error %v: %v", ErrTransaction, err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	return false
}
