package kv

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"

	"techfix-hub/internal/logging"
)

// PGBackend хранит документы в одной таблице key/JSONB.
type PGBackend struct {
	DB *sql.DB
}

func OpenPGBackend(dsn string) (*PGBackend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logging.Logg.Error("Couldn't connect to the database with an error", "error", err)
		return nil, err
	}

	b := &PGBackend{DB: db}
	if err := b.initTable(); err != nil {
		logging.Logg.Error("Failed to initialize DB", "error", err)
		db.Close()
		return nil, err
	}
	logging.Logg.Info("Database connection was created")
	return b, nil
}

func (b *PGBackend) initTable() error {
	_, err := b.DB.Exec(`create table if not exists kv_store (
		key TEXT PRIMARY KEY,
		doc JSONB NOT NULL
	);`)
	return err
}

func (b *PGBackend) Get(key string) ([]byte, bool, error) {
	var doc []byte
	err := b.DB.QueryRow("SELECT doc FROM kv_store WHERE key = $1", key).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc, true, nil
}

func (b *PGBackend) Put(key string, doc []byte) error {
	_, err := b.DB.Exec(`INSERT INTO kv_store(key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`, key, doc)
	return err
}

func (b *PGBackend) Delete(key string) error {
	_, err := b.DB.Exec("DELETE FROM kv_store WHERE key = $1", key)
	return err
}

func (b *PGBackend) Close() error {
	return b.DB.Close()
}
