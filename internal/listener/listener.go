package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"factorlink/internal/config"
	"factorlink/internal/connectors"
	gmailconnector "factorlink/internal/connectors/gmail"
	imapconnector "factorlink/internal/connectors/imap"
	"factorlink/internal/lookup"
	"factorlink/internal/pipeline"
	"factorlink/internal/storage"
)

// Service polls a mailbox for factoring documents, processes each batch and
// drops the rendered workbooks into the output directory. Rates come from
// the static YAML table; nobody is around to answer a prompt here.
type Service struct {
	db      *storage.DB
	cfg     config.Config
	lookups *lookup.Resolver
}

func NewService(db *storage.DB, cfg config.Config, lookups *lookup.Resolver) *Service {
	return &Service{db: db, cfg: cfg, lookups: lookups}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			log.Errorf("intake cycle: %v", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.ListenerProvider))
	connector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	store := connectors.NewDocStore(s.db, s.cfg.RawDocDir)
	fetchResult, err := connectors.NewFetchService(store, connector).FetchAndStore(s.cfg.ListenerLabel, s.cfg.ListenerFetchMax)
	if err != nil {
		return err
	}

	rates, err := lookup.LoadRates(filepath.Join(s.cfg.LookupDir, "rates.yaml"))
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessingService(s.db, s.cfg, s.lookups, rates)
	result, err := processor.ProcessPending(s.cfg.ListenerProcessBatch)
	if err != nil {
		return err
	}

	if s.cfg.ListenerAutoExport {
		if err := s.export(result.Batch); err != nil {
			return err
		}
	}

	log.Infof("intake cycle done provider=%s fetched=%d processed=%d rejected=%d auditRows=%d",
		provider, fetchResult.Fetched, result.Processed, result.Rejected, len(result.Batch.AuditRows))
	return nil
}

func (s *Service) export(batch pipeline.BatchResult) error {
	stamp := time.Now().UTC().Format("20060102T150405")
	outDir := filepath.Join(s.cfg.OutputDir, "listener")

	if len(batch.AuditRows) > 0 {
		path := filepath.Join(outDir, fmt.Sprintf("%s_audit.xlsx", stamp))
		if err := pipeline.ExportAuditLog(batch.AuditRows, path); err != nil {
			return err
		}
	}
	if batch.Volume != nil || batch.Commission != nil {
		path := filepath.Join(outDir, fmt.Sprintf("%s_reports.xlsx", stamp))
		if err := pipeline.ExportReportBundle(batch.Volume, batch.Commission, batch.Link, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}
