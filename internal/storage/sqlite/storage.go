package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mcoot/candyledger/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage backend.
// Each family is one row of the families table; saves upsert every row in
// a single transaction.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (or creates) the database at path
func New(path string, logger *slog.Logger) (*Storage, error) {
	if path == "" {
		return nil, errors.New("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_storage")),
	}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS families (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	);`)
	return err
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Save(ctx context.Context, snap *storage.Snapshot) error {
	encoded, err := storage.Encode(snap)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO families (name, payload) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range storage.Families {
		if _, err := stmt.ExecContext(ctx, string(f), encoded[f]); err != nil {
			return fmt.Errorf("save %s: %w", f, err)
		}
	}
	return tx.Commit()
}

func (s *Storage) Load(ctx context.Context) (*storage.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, payload FROM families`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	raw := make(map[storage.Family][]byte)
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, err
		}
		raw[storage.Family(name)] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return storage.Decode(raw, s.logger), nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
