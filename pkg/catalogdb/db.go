// Package catalogdb stores catalog products in SQLite.
package catalogdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite connection with schema initialization.
type DB struct {
	*sql.DB
}

// Open creates or opens the SQLite database at dbPath, initializes the
// schema and configures WAL mode.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS produtos (
			id TEXT PRIMARY KEY,
			nome TEXT NOT NULL,
			descricao TEXT NOT NULL DEFAULT '',
			valor REAL NOT NULL,
			disponivel INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_produtos_valor ON produtos(valor)`,
		`CREATE TABLE IF NOT EXISTS imagens (
			produto_id TEXT PRIMARY KEY,
			nome TEXT NOT NULL,
			content_type TEXT NOT NULL,
			data BLOB NOT NULL,
			FOREIGN KEY (produto_id) REFERENCES produtos(id) ON DELETE CASCADE
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// ProductCount returns the number of stored products.
func (db *DB) ProductCount() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM produtos`).Scan(&n)
	return n, err
}
