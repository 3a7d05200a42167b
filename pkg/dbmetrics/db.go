package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DefaultStatsInterval период сбора статистики пула соединений
const DefaultStatsInterval = 15 * time.Second

// Collector приемник метрик БД (реализуется pkg/metrics.Metrics)
type Collector interface {
	ObserveDBQuery(operation string, duration time.Duration)
	SetDBPoolStats(open, inUse, idle int, waitCount int64)
}

// DB обёртка над *sql.DB, измеряющая длительность запросов
type DB struct {
	db        *sql.DB
	collector Collector
}

// Wrap оборачивает соединение. collector может быть nil
func Wrap(db *sql.DB, collector Collector) *DB {
	return &DB{db: db, collector: collector}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// до закрытия stopCh
func WrapWithDefault(db *sql.DB, collector Collector, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, collector)
	if collector != nil {
		go wrapped.collectPoolStats(DefaultStatsInterval, stopCh)
	}
	return wrapped
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.reportPoolStats()
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

func (d *DB) reportPoolStats() {
	stats := d.db.Stats()
	d.collector.SetDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount)
}

func (d *DB) observe(operation string, started time.Time) {
	if d.collector != nil {
		d.collector.ObserveDBQuery(operation, time.Since(started))
	}
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe("exec", time.Now())
	return d.db.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe("query", time.Now())
	return d.db.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe("query_row", time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx начинает транзакцию, запросы которой тоже измеряются
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, db: d}, nil
}

// Unwrap исходное соединение
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

// Tx транзакция с измерением запросов
type Tx struct {
	tx *sql.Tx
	db *DB
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.db.observe("tx_exec", time.Now())
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer t.db.observe("tx_query", time.Now())
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer t.db.observe("tx_query_row", time.Now())
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *Tx) Commit() error {
	defer t.db.observe("commit", time.Now())
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
