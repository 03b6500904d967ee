package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"factorlink/internal"
	"factorlink/internal/storage"
)

// DocStore writes raw payloads content-addressed under rawDocDir and records
// them in the documents table.
type DocStore struct {
	db        *storage.DB
	rawDocDir string
}

func NewDocStore(db *storage.DB, rawDocDir string) *DocStore {
	return &DocStore{db: db, rawDocDir: rawDocDir}
}

func (s *DocStore) StoreMail(msg internal.FetchedMailMessage) (internal.DocumentRow, error) {
	return s.store(msg.Provider, msg.MessageID, msg.Subject, msg.From, msg.ReceivedAt, ".eml", msg.Raw)
}

// StoreUpload registers a locally supplied file (the CLI upload path). The
// content hash doubles as the external id so re-adding the same file is a
// no-op upsert.
func (s *DocStore) StoreUpload(name string, raw []byte) (internal.DocumentRow, error) {
	hash := contentHash(raw)
	return s.store("upload", hash, name, "", "", filepath.Ext(name), raw)
}

func (s *DocStore) store(source, externalID, name, sender, receivedAt, ext string, raw []byte) (internal.DocumentRow, error) {
	hash := contentHash(raw)

	if err := os.MkdirAll(s.rawDocDir, 0o755); err != nil {
		return internal.DocumentRow{}, err
	}
	if ext == "" {
		ext = ".bin"
	}
	rawPath := filepath.Join(s.rawDocDir, hash+ext)
	if _, err := os.Stat(rawPath); os.IsNotExist(err) {
		if err := os.WriteFile(rawPath, raw, 0o644); err != nil {
			return internal.DocumentRow{}, err
		}
	}

	return s.db.UpsertDocument(source, externalID, name, sender, receivedAt, hash, rawPath, "fetched")
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
