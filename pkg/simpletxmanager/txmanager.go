package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// maxAttempts: одна основная попытка и один повтор при serialization failure
const maxAttempts = 2

const retryBackoff = 25 * time.Millisecond

// TransactionManager вариант менеджера транзакций без сбора метрик.
// Используется, когда метрики выключены в конфигурации.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает менеджер транзакций поверх обычного *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри serializable транзакции с одним
// повтором при serialization failure, как txmanager.DoSerializable
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.runInTx(ctx, fn)
		if err == nil {
			return nil
		}

		if !txmanager.IsRetryableError(err) {
			return err
		}

		lastErr = err
		if attempt < maxAttempts {
			time.Sleep(retryBackoff)
		}
	}

	return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, lastErr)
}

func (m *TransactionManager) runInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", txmanager.ErrBeginTx, err)
	}

	wrappedTx := &dbmetrics.SqlTxWrapper{Tx: tx}
	txCtx := dbmetrics.WithTx(ctx, wrappedTx)

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
