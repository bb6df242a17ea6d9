package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
)

// DBExecutor единый интерфейс для выполнения запросов.
// Ему удовлетворяют *sql.DB, *sql.Tx, *dbmetrics.DB и *dbmetrics.Tx,
// поэтому репозитории не зависят от конкретного типа соединения.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри открытой транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txContextKey struct{}

// WithTx кладет транзакцию в контекст. Репозитории достают ее через GetExecutor.
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она открыта,
// иначе переданное соединение
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(TxExecutor); ok {
		return tx
	}
	return db
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции.
// Репозитории используют это, чтобы добавлять FOR UPDATE только там,
// где блокировка действительно будет удержана до коммита.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(TxExecutor)
	return ok
}

// SqlTxWrapper адаптер *sql.Tx под TxExecutor без сбора метрик
type SqlTxWrapper struct {
	Tx *sql.Tx
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return w.Tx.ExecContext(ctx, query, args...)
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return w.Tx.QueryContext(ctx, query, args...)
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return w.Tx.QueryRowContext(ctx, query, args...)
}

func (w *SqlTxWrapper) Commit() error   { return w.Tx.Commit() }
func (w *SqlTxWrapper) Rollback() error { return w.Tx.Rollback() }

// DB обертка над *sql.DB, которая пишет длительность и ошибки каждого
// запроса в Prometheus. Дополнительно раз в collectInterval снимает
// статистику connection pool.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	name    string
}

const defaultCollectInterval = 10 * time.Second

// Wrap оборачивает соединение и запускает сбор статистики пула
// с указанным интервалом. Сбор останавливается закрытием stopCh.
func Wrap(db *sql.DB, m *metrics.Metrics, name string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, metrics: m, name: name}
	go wrapped.collectPoolStats(interval, stopCh)
	return wrapped
}

// WrapWithDefault как Wrap, но с интервалом сбора по умолчанию
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	return Wrap(db, m, name, defaultCollectInterval, stopCh)
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnsOpen.Set(float64(stats.OpenConnections))
			d.metrics.DBConnsIdle.Set(float64(stats.Idle))
			d.metrics.DBConnsInUse.Set(float64(stats.InUse))
		}
	}
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(d.name, queryOperation(query), time.Since(start).Seconds(), err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(d.name, queryOperation(query), time.Since(start).Seconds(), err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(d.name, queryOperation(query), time.Since(start).Seconds(), nil)
	return row
}

// ObserveTxRetry фиксирует повтор транзакции после serialization failure
func (d *DB) ObserveTxRetry() {
	d.metrics.DBTxRetries.WithLabelValues(d.name).Inc()
}

// BeginTx открывает транзакцию, запросы которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics, name: d.name}, nil
}

// Tx транзакция с записью метрик по каждому запросу
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
	name    string
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(t.name, queryOperation(query), time.Since(start).Seconds(), err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(t.name, queryOperation(query), time.Since(start).Seconds(), err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(t.name, queryOperation(query), time.Since(start).Seconds(), nil)
	return row
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// queryOperation извлекает тип операции для метки метрики (SELECT, INSERT, ...)
func queryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToUpper(fields[0])
}
