package pipeline

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"

	"factorlink/internal"
	"factorlink/internal/report"
)

type DocumentOrigin string

const (
	OriginAttachment    DocumentOrigin = "attachment"
	OriginPDFAttachment DocumentOrigin = "pdf_attachment"
	OriginBodyText      DocumentOrigin = "body_text"
	OriginHTMLBody      DocumentOrigin = "html_body"
)

// ExtractedDocument is one candidate factoring document pulled out of a mail.
type ExtractedDocument struct {
	Name    string
	Origin  DocumentOrigin
	Payload []byte
}

var textAttachmentSuffixes = []string{".xml", ".txt", ".rpt", ".prn"}

// ExtractDocumentsFromMailRaw pulls every candidate document out of one raw
// RFC822 mail: XML and plain-text attachments as-is, PDF attachments
// flattened to text, the plain body, and <pre> blocks of the HTML body
// (reports get pasted into mails that way).
func ExtractDocumentsFromMailRaw(raw []byte) ([]ExtractedDocument, string, string, []string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, "", "", nil, err
	}

	var docs []ExtractedDocument
	if looksLikeDocument(env.Text) {
		docs = append(docs, ExtractedDocument{Name: "body", Origin: OriginBodyText, Payload: []byte(env.Text)})
	}
	if env.HTML != "" {
		for i, block := range htmlPreBlocks(env.HTML) {
			if !looksLikeDocument(block) {
				continue
			}
			docs = append(docs, ExtractedDocument{
				Name:    "html-pre-" + strconv.Itoa(i+1),
				Origin:  OriginHTMLBody,
				Payload: []byte(block),
			})
		}
	}

	attachmentNames := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		attachmentNames = append(attachmentNames, filename)
		lower := strings.ToLower(filename)

		if hasAnySuffix(lower, textAttachmentSuffixes) {
			docs = append(docs, ExtractedDocument{Name: filename, Origin: OriginAttachment, Payload: att.Content})
			continue
		}
		if strings.HasSuffix(lower, ".pdf") {
			if text, err := pdfPlainText(att.Content); err == nil && looksLikeDocument(text) {
				docs = append(docs, ExtractedDocument{Name: filename, Origin: OriginPDFAttachment, Payload: []byte(text)})
			}
		}
	}

	return docs, env.GetHeader("Subject"), env.Text, attachmentNames, nil
}

// looksLikeDocument is a cheap gate before real parsing: either a message
// batch (top-level MSG blocks) or a classifiable fixed-width report.
func looksLikeDocument(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, "<MSG") {
		return true
	}
	return report.Classify(text) != internal.ReportUnknown
}

func htmlPreBlocks(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var out []string
	doc.Find("pre").Each(func(_ int, sel *goquery.Selection) {
		out = append(out, sel.Text())
	})
	return out
}

func pdfPlainText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

