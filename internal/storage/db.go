package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"factorlink/internal"
)

// DB is the intake bookkeeping store. It tracks which documents were
// fetched and their status lifecycle; parse results themselves are never
// persisted, the pipeline recomputes them per run.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  externalId TEXT NOT NULL,
  name TEXT,
  sender TEXT,
  receivedAt TEXT,
  hash TEXT NOT NULL,
  format TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'fetched',
  rawRef TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(source, externalId)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertDocument(source, externalID, name, sender, receivedAt, hash, rawRef, status string) (internal.DocumentRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO documents (source, externalId, name, sender, receivedAt, hash, status, rawRef)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source, externalId) DO UPDATE SET
  name=excluded.name,
  sender=excluded.sender,
  receivedAt=excluded.receivedAt,
  hash=excluded.hash,
  rawRef=excluded.rawRef,
  updatedAt=CURRENT_TIMESTAMP
`, source, externalID, name, sender, receivedAt, hash, status, rawRef)
	if err != nil {
		return internal.DocumentRow{}, err
	}

	row, err := d.GetDocument(source, externalID)
	if err != nil {
		return internal.DocumentRow{}, err
	}
	if row == nil {
		return internal.DocumentRow{}, errors.New("failed to upsert document")
	}
	return *row, nil
}

const documentColumns = `id, source, externalId, name, sender, receivedAt, hash, format, status, rawRef`

func (d *DB) GetDocument(source, externalID string) (*internal.DocumentRow, error) {
	var row internal.DocumentRow
	err := d.conn.QueryRow(`
SELECT `+documentColumns+` FROM documents WHERE source = ? AND externalId = ?
`, source, externalID).Scan(
		&row.ID, &row.Source, &row.ExternalID, &row.Name, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Format, &row.Status, &row.RawRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) MustGetDocument(source, externalID string) (internal.DocumentRow, error) {
	row, err := d.GetDocument(source, externalID)
	if err != nil {
		return internal.DocumentRow{}, err
	}
	if row == nil {
		return internal.DocumentRow{}, fmt.Errorf("document not found: source=%s externalId=%s", source, externalID)
	}
	return *row, nil
}

func (d *DB) ListDocumentsByStatus(status string, limit int) ([]internal.DocumentRow, error) {
	rows, err := d.conn.Query(`
SELECT `+documentColumns+` FROM documents WHERE status = ? ORDER BY receivedAt ASC, id ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DocumentRow
	for rows.Next() {
		var row internal.DocumentRow
		if err := rows.Scan(&row.ID, &row.Source, &row.ExternalID, &row.Name, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Format, &row.Status, &row.RawRef); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpdateDocumentStatus(documentID int, status string) error {
	_, err := d.conn.Exec(`UPDATE documents SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, documentID)
	return err
}

func (d *DB) UpdateDocumentFormat(documentID int, format string) error {
	_, err := d.conn.Exec(`UPDATE documents SET format = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, format, documentID)
	return err
}

func (d *DB) InsertRun(traceID string, counts map[string]int, timings map[string]float64) error {
	countsJSON, _ := json.Marshal(counts)
	timingsJSON, _ := json.Marshal(timings)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, countsJson, timingsJson) VALUES (?, ?, ?)`, traceID, string(countsJSON), string(timingsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
