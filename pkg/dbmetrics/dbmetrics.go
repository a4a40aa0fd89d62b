package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DefaultStatsInterval период сбора статистики пула соединений
const DefaultStatsInterval = 15 * time.Second

// DBExecutor интерфейс для выполнения запросов на чтение
// Реализуется *sql.DB и *DB
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Collector приёмник метрик БД (реализуется *metrics.Metrics)
type Collector interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBConnections(open, inUse, idle int)
}

// DB обёртка над *sql.DB, измеряющая длительность запросов
type DB struct {
	db        *sql.DB
	collector Collector
}

// Wrap оборачивает соединение и запускает сбор статистики пула с периодом interval
// Сбор останавливается закрытием канала stop
func Wrap(db *sql.DB, collector Collector, interval time.Duration, stop <-chan struct{}) *DB {
	wrapped := &DB{db: db, collector: collector}
	go wrapped.collectStats(interval, stop)
	return wrapped
}

// WrapWithDefault то же, что Wrap, с периодом по умолчанию
func WrapWithDefault(db *sql.DB, collector Collector, stop <-chan struct{}) *DB {
	return Wrap(db, collector, DefaultStatsInterval, stop)
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.collector.ObserveDBQuery("query", time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку
// Ошибка становится известна только при Scan, поэтому фиксируется лишь длительность
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.collector.ObserveDBQuery("query_row", time.Since(start), nil)
	return row
}

func (d *DB) collectStats(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.observeStats()
	for {
		select {
		case <-ticker.C:
			d.observeStats()
		case <-stop:
			return
		}
	}
}

func (d *DB) observeStats() {
	stats := d.db.Stats()
	d.collector.SetDBConnections(stats.OpenConnections, stats.InUse, stats.Idle)
}
