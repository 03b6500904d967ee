package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"factorlink/internal"
	"factorlink/internal/config"
	"factorlink/internal/lookup"
	"factorlink/internal/message"
	"factorlink/internal/storage"
)

type ProcessingService struct {
	db         *storage.DB
	cfg        config.Config
	lookups    *lookup.Resolver
	rateSource message.RateSource
}

func NewProcessingService(db *storage.DB, cfg config.Config, lookups *lookup.Resolver, rateSource message.RateSource) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg, lookups: lookups, rateSource: rateSource}
}

type ProcessResult struct {
	Batch     BatchResult
	Processed int
	Rejected  int
	Skipped   int
}

// ProcessPending runs one batch over every fetched document. Per-document
// failures reject that document only; the combine step waits until the whole
// batch has been decoded.
func (s *ProcessingService) ProcessPending(limit int) (ProcessResult, error) {
	start := time.Now()
	pending, err := s.db.ListDocumentsByStatus("fetched", limit)
	if err != nil {
		return ProcessResult{}, err
	}

	batch := NewBatch(s.lookups, s.cfg.ReferenceCurrency, s.rateSource)
	result := ProcessResult{}

	for _, doc := range pending {
		status, format := s.addDocument(batch, doc)
		switch status {
		case "processed":
			result.Processed++
		case "rejected":
			result.Rejected++
		case "skipped":
			result.Skipped++
		}
		if format != "" {
			_ = s.db.UpdateDocumentFormat(doc.ID, format)
		}
		if err := s.db.UpdateDocumentStatus(doc.ID, status); err != nil {
			return result, err
		}
	}

	result.Batch = batch.Finish()
	for _, err := range result.Batch.Malformed {
		log.Errorf("malformed message skipped: %v", err)
	}

	_ = s.db.InsertRun(traceID(), map[string]int{
		"documents": len(pending),
		"processed": result.Processed,
		"rejected":  result.Rejected,
		"skipped":   result.Skipped,
		"auditRows": len(result.Batch.AuditRows),
		"malformed": len(result.Batch.Malformed),
	}, map[string]float64{
		"totalMs": float64(time.Since(start).Milliseconds()),
	})

	return result, nil
}

// addDocument feeds one stored document into the batch, unpacking mail
// containers into their candidate payloads first.
func (s *ProcessingService) addDocument(batch *Batch, doc internal.DocumentRow) (status, format string) {
	raw, err := os.ReadFile(doc.RawRef)
	if err != nil {
		log.Errorf("read document %d: %v", doc.ID, err)
		return "rejected", ""
	}

	if strings.HasSuffix(doc.RawRef, ".eml") {
		return s.addMailDocument(batch, doc, raw)
	}

	format, err = batch.Add(documentName(doc), raw)
	if err != nil {
		log.Warnf("document %d rejected: %v", doc.ID, err)
		return "rejected", format
	}
	return "processed", format
}

func (s *ProcessingService) addMailDocument(batch *Batch, doc internal.DocumentRow, raw []byte) (status, format string) {
	docs, subject, text, attachmentNames, err := ExtractDocumentsFromMailRaw(raw)
	if err != nil {
		log.Errorf("parse mail %d: %v", doc.ID, err)
		return "rejected", "mail"
	}

	detect := DetectFactoringMail(firstNonEmpty(subject, doc.Name), text, attachmentNames)
	if !detect.IsFactoring {
		log.Infof("mail %d skipped (score=%.2f)", doc.ID, detect.Score)
		return "skipped", "mail"
	}

	added := 0
	for _, extracted := range docs {
		name := fmt.Sprintf("%s/%s", documentName(doc), extracted.Name)
		if _, err := batch.Add(name, extracted.Payload); err != nil {
			log.Warnf("mail %d payload rejected: %v", doc.ID, err)
			continue
		}
		added++
	}
	if added == 0 {
		return "rejected", "mail"
	}
	return "processed", "mail"
}

func documentName(doc internal.DocumentRow) string {
	if strings.TrimSpace(doc.Name) != "" {
		return doc.Name
	}
	return fmt.Sprintf("document-%d", doc.ID)
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
