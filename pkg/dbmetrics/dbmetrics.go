package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/shoemant/strata-web/pkg/metrics"
)

// DBExecutor минимальный интерфейс для выполнения запросов
// Реализуется *sql.DB, *sql.Tx и обёртками этого пакета
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type ctxKey struct{}

// WithExecutor кладёт транзакционный executor в контекст
// Репозитории достают его через GetExecutor и тем самым участвуют в транзакции
func WithExecutor(ctx context.Context, exec TxExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, exec)
}

// GetExecutor возвращает executor из контекста, если там есть активная
// транзакция, иначе переданный fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(ctxKey{}).(TxExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(TxExecutor)
	return ok
}

// DB обёртка над *sql.DB, собирающая метрики запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB сбором метрик запросов
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// метрик connection pool до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(dbName, stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(dbName string, stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnsOpen.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
			d.metrics.DBConnsInUse.WithLabelValues(dbName).Set(float64(stats.InUse))
			d.metrics.DBConnsIdle.WithLabelValues(dbName).Set(float64(stats.Idle))
		}
	}
}

func (d *DB) observe(operation string, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.DBQueriesTotal.WithLabelValues(operation).Inc()
	d.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	defer d.observe("exec", start)
	return d.db.ExecContext(ctx, query, args...)
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	defer d.observe("query", start)
	return d.db.QueryContext(ctx, query, args...)
}

// QueryRowContext выполняет запрос с записью метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	defer d.observe("query_row", start)
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx начинает транзакцию; возвращаемый executor тоже собирает метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &metricTx{tx: tx, parent: d}, nil
}

// metricTx транзакция с метриками
type metricTx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *metricTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	defer t.parent.observe("tx_exec", start)
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *metricTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	defer t.parent.observe("tx_query", start)
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *metricTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	defer t.parent.observe("tx_query_row", start)
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *metricTx) Commit() error {
	return t.tx.Commit()
}

func (t *metricTx) Rollback() error {
	return t.tx.Rollback()
}
