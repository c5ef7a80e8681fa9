package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const schema = `CREATE TABLE IF NOT EXISTS high_scores (
	slot  VARCHAR(64) NOT NULL PRIMARY KEY,
	score INT NOT NULL DEFAULT 0
)`

// SQL keeps the high score in a MySQL table shared by every server process.
type SQL struct {
	db   *sqlx.DB
	slot string
}

// ParseDSN validates a MySQL DSN and fills in connection defaults.
func ParseDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	cfg.ParseTime = true
	return cfg, nil
}

// OpenSQL connects to MySQL and makes sure the high_scores table exists.
func OpenSQL(ctx context.Context, dsn, slot string) (*SQL, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(time.Minute)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create high_scores table: %w", err)
	}
	return &SQL{db: db, slot: slot}, nil
}

func (s *SQL) Load(ctx context.Context) (int, error) {
	var score int
	err := s.db.GetContext(ctx, &score, `SELECT score FROM high_scores WHERE slot = ?`, s.slot)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score: %w", err)
	}
	return score, nil
}

// Save upserts the slot, never lowering an existing value.
func (s *SQL) Save(ctx context.Context, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO high_scores (slot, score) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE score = GREATEST(score, VALUES(score))`,
		s.slot, score)
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
