package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrSerializationFailure возвращается, когда транзакция не прошла
	// даже после повторной попытки из-за конкурентного изменения данных
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)

// Postgres коды ошибок, при которых транзакцию имеет смысл повторить
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// maxAttempts: одна основная попытка и один повтор при serialization failure
const maxAttempts = 2

const retryBackoff = 25 * time.Millisecond

// TransactionManager выполняет функции в serializable транзакциях
// поверх соединения с метриками
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции
// Serializable. Транзакция кладется в контекст, репозитории получают
// ее через dbmetrics.GetExecutor. При serialization failure или deadlock
// fn выполняется повторно один раз; если повтор тоже не прошел,
// возвращается ErrSerializationFailure.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.runInTx(ctx, fn)
		if err == nil {
			return nil
		}

		if !IsRetryableError(err) {
			return err
		}

		lastErr = err
		if attempt < maxAttempts {
			m.db.ObserveTxRetry()
			time.Sleep(retryBackoff)
		}
	}

	return fmt.Errorf("%w: %v", ErrSerializationFailure, lastErr)
}

func (m *TransactionManager) runInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return nil
}

// IsRetryableError проверяет, вызвана ли ошибка конкурентным доступом.
// Репозитории оборачивают ошибки драйвера через %v, поэтому помимо
// errors.As проверяем код и в тексте ошибки.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure || string(pqErr.Code) == pqDeadlockDetected
	}

	msg := err.Error()
	return strings.Contains(msg, pqSerializationFailure) ||
		strings.Contains(msg, pqDeadlockDetected) ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}
