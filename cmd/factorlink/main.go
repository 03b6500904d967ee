package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"factorlink/internal/config"
	"factorlink/internal/connectors"
	gmailconnector "factorlink/internal/connectors/gmail"
	imapconnector "factorlink/internal/connectors/imap"
	"factorlink/internal/listener"
	"factorlink/internal/lookup"
	"factorlink/internal/message"
	"factorlink/internal/pipeline"
	"factorlink/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	lookups, err := lookup.Load(cfg.LookupDir)
	must(err)

	cmd := os.Args[1]
	switch cmd {
	case "docs:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "path of the document to register")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		db := openDB(cfg)
		defer db.Close()
		raw, err := os.ReadFile(*file)
		must(err)
		store := connectors.NewDocStore(db, cfg.RawDocDir)
		doc, err := store.StoreUpload(filepath.Base(*file), raw)
		must(err)
		fmt.Printf("registered document id=%d name=%s\n", doc.ID, doc.Name)
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "gmail|imap")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])
		db := openDB(cfg)
		defer db.Close()
		conn, err := makeConnector(cfg, *provider)
		must(err)
		store := connectors.NewDocStore(db, cfg.RawDocDir)
		result, err := connectors.NewFetchService(store, conn).FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batchSize := fs.Int("batch", 50, "batch size")
		out := fs.String("out", "", "output directory (defaults to OUTPUT_DIR)")
		_ = fs.Parse(os.Args[2:])
		db := openDB(cfg)
		defer db.Close()
		outDir := *out
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		processor := pipeline.NewProcessingService(db, cfg, lookups, promptRates(cfg))
		result, err := processor.ProcessPending(*batchSize)
		must(err)
		must(export(result.Batch, outDir))
		fmt.Printf("processed=%d rejected=%d skipped=%d auditRows=%d\n",
			result.Processed, result.Rejected, result.Skipped, len(result.Batch.AuditRows))
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "comma-separated document paths")
		out := fs.String("out", "", "output directory")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *out == "" {
			must(fmt.Errorf("--input and --out are required"))
		}
		batch := pipeline.NewBatch(lookups, cfg.ReferenceCurrency, promptRates(cfg))
		for _, path := range strings.Split(*input, ",") {
			raw, err := os.ReadFile(path)
			must(err)
			if _, err := batch.Add(filepath.Base(path), raw); err != nil {
				fmt.Fprintf(os.Stderr, "rejected: %v\n", err)
			}
		}
		result := batch.Finish()
		for _, err := range result.Malformed {
			fmt.Fprintf(os.Stderr, "malformed: %v\n", err)
		}
		must(export(result, *out))
		fmt.Printf("run done documents=%d auditRows=%d\n", result.Documents, len(result.AuditRows))
	case "listen":
		db := openDB(cfg)
		defer db.Close()
		svc := listener.NewService(db, cfg, lookups)
		must(svc.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

func export(batch pipeline.BatchResult, outDir string) error {
	if len(batch.AuditRows) > 0 {
		if err := pipeline.ExportAuditLog(batch.AuditRows, filepath.Join(outDir, "audit.xlsx")); err != nil {
			return err
		}
	}
	if batch.Volume != nil || batch.Commission != nil {
		if err := pipeline.ExportReportBundle(batch.Volume, batch.Commission, batch.Link, filepath.Join(outDir, "reports.xlsx")); err != nil {
			return err
		}
	}
	return nil
}

func openDB(cfg config.Config) *storage.DB {
	db, err := storage.Open(cfg.DBPath)
	must(err)
	return db
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// promptRates asks on stdin for each currency the batch needs. An empty
// answer declines the rate and the affected rows degrade.
func promptRates(cfg config.Config) message.RateSource {
	return &stdinRateSource{reader: bufio.NewReader(os.Stdin), reference: cfg.ReferenceCurrency}
}

type stdinRateSource struct {
	reader    *bufio.Reader
	reference string
}

func (s *stdinRateSource) Rate(currency string) (float64, bool) {
	fmt.Printf("rate needed: %s per 1 %s (empty to skip): ", currency, s.reference)
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return 0, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	rate, err := strconv.ParseFloat(line, 64)
	if err != nil || rate <= 0 {
		fmt.Fprintf(os.Stderr, "invalid rate %q, skipping %s\n", line, currency)
		return 0, false
	}
	return rate, true
}

func usage() {
	fmt.Println("usage: factorlink <command>")
	fmt.Println("commands:")
	fmt.Println("  docs:add --file=./msg_batch.xml")
	fmt.Println("  mail:fetch --provider=gmail|imap --label=INBOX --max=50")
	fmt.Println("  process [--batch=50] [--out=./out]")
	fmt.Println("  run --input=a.xml,b.txt --out=./out")
	fmt.Println("  listen")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
