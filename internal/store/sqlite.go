package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"finover/internal/model"
)

// SQLiteStore persists feature tables and assessments to a SQLite
// database.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
	mu  sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so API reads do not block pipeline writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS feature_rows (
			symbol     TEXT NOT NULL,
			date       TEXT NOT NULL,
			close      REAL NOT NULL,
			rsi        REAL,
			sma        REAL,
			volatility REAL,
			beta       REAL,
			risk_level TEXT,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feature_symbol ON feature_rows(symbol)`,

		`CREATE TABLE IF NOT EXISTS assessments (
			symbol     TEXT PRIMARY KEY,
			date       TEXT NOT NULL,
			risk_level TEXT NOT NULL,
			risk_score REAL NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertFeatures writes a symbol's feature rows, replacing any existing
// rows for the same dates.
func (s *SQLiteStore) UpsertFeatures(symbol string, records []FeatureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO feature_rows
		(symbol, date, close, rsi, sma, volatility, beta, risk_level)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			close=excluded.close, rsi=excluded.rsi, sma=excluded.sma,
			volatility=excluded.volatility, beta=excluded.beta,
			risk_level=excluded.risk_level`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var level sql.NullString
		if rec.Level != "" {
			level = sql.NullString{String: string(rec.Level), Valid: true}
		}
		_, err := stmt.Exec(
			symbol,
			rec.Row.Date.Format("2006-01-02"),
			rec.Row.Close,
			nullable(rec.Row.RSI),
			nullable(rec.Row.SMA),
			nullable(rec.Row.Volatility),
			nullable(rec.Row.Beta),
			level,
		)
		if err != nil {
			return fmt.Errorf("upsert feature row %s/%s: %w",
				symbol, rec.Row.Date.Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

// SaveAssessment stores the latest assessment for a symbol, replacing
// any previous one.
func (s *SQLiteStore) SaveAssessment(a model.RiskAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO assessments
		(symbol, date, risk_level, risk_score, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(symbol) DO UPDATE SET
			date=excluded.date, risk_level=excluded.risk_level,
			risk_score=excluded.risk_score, updated_at=excluded.updated_at`,
		a.Symbol, a.Date.Format("2006-01-02"), string(a.Level), a.Score, time.Now().Unix(),
	)
	return err
}

// LatestAssessments returns the stored assessments ordered from lowest
// to highest risk score, at most limit entries.
func (s *SQLiteStore) LatestAssessments(limit int) ([]model.RiskAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol, date, risk_level, risk_score
		FROM assessments ORDER BY risk_score ASC, symbol ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []model.RiskAssessment
	for rows.Next() {
		var a model.RiskAssessment
		var date, level string
		if err := rows.Scan(&a.Symbol, &date, &level, &a.Score); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		a.Level = model.RiskLevel(level)
		if a.Date, err = time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("parse assessment date %q: %w", date, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}

// nullable maps an undefined feature value to SQL NULL.
func nullable(v float64) sql.NullFloat64 {
	if !model.Defined(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
