package pipeline

import (
	"fmt"
	"strings"

	"factorlink/internal"
	"factorlink/internal/charset"
	"factorlink/internal/lookup"
	"factorlink/internal/message"
	"factorlink/internal/report"
)

const (
	FormatMessages = "messages"
	FormatReport   = "report"
)

// Batch accumulates one processing run. The message repository and the rate
// cache are created fresh here, so every run starts clean; the combine step
// only happens in Finish, after every document has been added.
type Batch struct {
	lookups    *lookup.Resolver
	repo       *message.Repository
	rates      *message.RateCache
	volume     *internal.ReportTable
	commission *internal.ReportTable
	malformed  []error
	documents  int
}

type BatchResult struct {
	AuditRows  []internal.DisplayRow
	Volume     *internal.ReportTable
	Commission *internal.ReportTable
	Link       []internal.LinkRow
	Malformed  []error
	Documents  int
}

func NewBatch(lookups *lookup.Resolver, referenceCurrency string, rateSource message.RateSource) *Batch {
	return &Batch{
		lookups: lookups,
		repo:    message.NewRepository(),
		rates:   message.NewRateCache(referenceCurrency, rateSource),
	}
}

// Add decodes one raw document into the batch and reports the detected
// format. A returned error rejects that document only; the batch keeps going.
func (b *Batch) Add(name string, raw []byte) (string, error) {
	text, err := charset.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	if strings.HasPrefix(strings.TrimSpace(text), "<") {
		return FormatMessages, b.addMessages(name, text)
	}
	return FormatReport, b.addReport(name, text)
}

func (b *Batch) addMessages(name, text string) error {
	messages, errs := message.DecodeBatch(text)
	for _, err := range errs {
		b.malformed = append(b.malformed, fmt.Errorf("%s: %w", name, err))
	}
	if len(messages) == 0 {
		if len(errs) > 0 {
			return fmt.Errorf("%s: no message decoded", name)
		}
		return fmt.Errorf("%s: no message blocks found", name)
	}
	for _, msg := range messages {
		b.repo.Register(msg)
	}
	b.documents++
	return nil
}

func (b *Batch) addReport(name, text string) error {
	table, err := report.Parse(text)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	// Latest report of each type wins within a run.
	switch table.Type {
	case internal.ReportVolume:
		b.volume = table
	case internal.ReportCommission:
		b.commission = table
	}
	b.documents++
	return nil
}

// Finish runs the combine step over the full repository and derives the
// volume/commission link table when both reports are present.
func (b *Batch) Finish() BatchResult {
	result := BatchResult{
		AuditRows:  message.Combine(b.repo, b.lookups, b.rates),
		Volume:     b.volume,
		Commission: b.commission,
		Malformed:  b.malformed,
		Documents:  b.documents,
	}
	if b.volume != nil && b.commission != nil {
		result.Link = report.BuildLinkTable(b.volume, b.commission)
	}
	return result
}
