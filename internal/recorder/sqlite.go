package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists decision history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decision_cycles (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT,
			price         REAL,
			minute_mean   REAL,
			cur_hour_low  REAL,
			prev_hour_low REAL,
			daily_low     REAL,
			daily_high    REAL,
			trend_slope   REAL,
			policy        TEXT,
			buy           INTEGER,
			reason        TEXT,
			skipped       INTEGER,
			skip_reason   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON decision_cycles(timestamp)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			order_id        TEXT,
			client_order_id TEXT,
			symbol          TEXT,
			notional        REAL,
			status          TEXT,
			reason          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(rec *CycleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO decision_cycles
		(timestamp, symbol, price, minute_mean, cur_hour_low, prev_hour_low,
		 daily_low, daily_high, trend_slope, policy, buy, reason, skipped, skip_reason)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Price, rec.MinuteMean,
		rec.CurHourLow, rec.PrevHourLow, rec.DailyLow, rec.DailyHigh,
		rec.TrendSlope, string(rec.Policy), rec.Buy, rec.Reason, rec.Skipped, rec.SkipReason,
	)
	return err
}

func (r *SQLiteRecorder) RecordOrder(rec *OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO orders
		(timestamp, order_id, client_order_id, symbol, notional, status, reason)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.OrderID, rec.ClientOrderID,
		rec.Symbol, rec.Notional, rec.Status, rec.Reason,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
