package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SVB-ReservationService/pkg/metrics"
)

// DBExecutor общий интерфейс выполнения запросов
// Реализуется *sql.DB, *sql.Tx и обёртками с метриками
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

type ctxKey int

const executorKey ctxKey = iota

// WithExecutor кладет активную транзакцию в контекст
// Репозитории достают её через GetExecutor и выполняют запросы внутри транзакции
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey, exec)
}

// GetExecutor возвращает executor из контекста или fallback, если транзакции нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorKey).(DBExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction проверяет, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(DBExecutor)
	return ok
}

// DB обёртка над *sql.DB, собирающая метрики длительности запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение с базой сборщиком метрик
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает периодический сбор статистики пула
// Сбор останавливается закрытием stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

// ExecContext выполняет запрос с замером длительности
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe(queryOperation(query), start, err)
	return result, err
}

// QueryContext выполняет запрос с замером длительности
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(queryOperation(query), start, err)
	return rows, err
}

// QueryRowContext выполняет запрос с замером длительности
// Ошибка выполнения доступна только при Scan, поэтому здесь учитывается только длительность
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(queryOperation(query), start, nil)
	return row
}

// BeginTx начинает транзакцию; запросы внутри неё также попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &metricTx{tx: tx, parent: d}, nil
}

func (d *DB) observe(operation string, start time.Time, err error) {
	d.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		d.metrics.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

func (d *DB) collectPoolStats(stopCh chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnectionsOpen.WithLabelValues("in_use").Set(float64(stats.InUse))
			d.metrics.DBConnectionsIdle.WithLabelValues("idle").Set(float64(stats.Idle))
		}
	}
}

// metricTx транзакция с метриками
type metricTx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *metricTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe(queryOperation(query), start, err)
	return result, err
}

func (t *metricTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe(queryOperation(query), start, err)
	return rows, err
}

func (t *metricTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe(queryOperation(query), start, nil)
	return row
}

func (t *metricTx) Commit() error {
	return t.tx.Commit()
}

func (t *metricTx) Rollback() error {
	return t.tx.Rollback()
}

// queryOperation извлекает тип операции из SQL (SELECT/INSERT/UPDATE/DELETE)
func queryOperation(query string) string {
	trimmed := strings.TrimSpace(query)
	if idx := strings.IndexByte(trimmed, ' '); idx > 0 {
		return strings.ToUpper(trimmed[:idx])
	}
	return "UNKNOWN"
}
