package report

import (
	"regexp"
	"sort"
	"strings"

	"factorlink/internal"
	"factorlink/internal/util"
)

// headerSignatures are the whitespace-free header lines, one per report type.
var headerSignatures = map[internal.ReportType]string{
	internal.ReportVolume:     "CODENAMECURRMOPREVMOCURRYTDPREVYTD",
	internal.ReportCommission: "CODENAMECOMMCURRMOCOMMPREVMOCOMMCURRYTDCOMMPREVYTD",
}

// primaryTitles are searched on the header line itself, secondaryTitles on
// the line immediately below it (the diff labels wrap onto a second line in
// the print).
var primaryTitles = map[internal.ReportType][]string{
	internal.ReportVolume:     {"CURR MO", "PREV MO", "CURR YTD", "PREV YTD"},
	internal.ReportCommission: {"COMM CURR MO", "COMM PREV MO", "COMM CURR YTD", "COMM PREV YTD"},
}

var secondaryTitles = []string{"MO % DIFF", "YTD % DIFF"}

// Data lines anchor on a 4-character alphanumeric factor code.
var codePattern = regexp.MustCompile(`[A-Z0-9]{4}`)

// Name columns end at the first run of 4+ spaces after the code.
var nameTerminator = regexp.MustCompile(` {4,}`)

// The first data line sits a fixed 4 lines below the header (secondary
// labels, separator, blank line).
const sampleLineOffset = 4

// LocateHeader returns the 1-based line number whose squashed content equals
// the header signature for the report type.
func LocateHeader(text string, reportType internal.ReportType) (int, error) {
	signature, ok := headerSignatures[reportType]
	if !ok {
		return 0, ErrUnknownReportType
	}
	for i, line := range util.SplitLines(text) {
		if util.Squash(line) == signature {
			return i + 1, nil
		}
	}
	return 0, ErrHeaderNotFound
}

// LocateColumns infers the column layout from the header line plus the data
// line sampled sampleLineOffset lines below it. Failing to find the anchor
// code is fatal for the whole document.
func LocateColumns(text string, headerRow int, reportType internal.ReportType) (*internal.ColumnMap, error) {
	lines := util.SplitLines(text)
	sampleIdx := headerRow - 1 + sampleLineOffset
	if headerRow < 1 || sampleIdx >= len(lines) {
		return nil, ErrColumnAnchorNotFound
	}

	sample := lines[sampleIdx]
	anchor := codePattern.FindStringIndex(sample)
	if anchor == nil {
		return nil, ErrColumnAnchorNotFound
	}

	columns := internal.ColumnMap{
		Group:       internal.Bracket{Start: 0, End: anchor[0]},
		Code:        internal.Bracket{Start: anchor[0], End: anchor[1]},
		Name:        internal.Bracket{Start: anchor[1], End: nameEnd(sample, anchor[1])},
		ColumnStart: map[string]int{},
	}

	header := lines[headerRow-1]
	for _, title := range primaryTitles[reportType] {
		if idx := strings.Index(header, title); idx >= 0 {
			columns.ColumnStart[title] = idx
		}
	}
	if headerRow < len(lines) {
		secondary := lines[headerRow]
		for _, title := range secondaryTitles {
			if idx := strings.Index(secondary, title); idx >= 0 {
				columns.ColumnStart[title] = idx
			}
		}
	}

	columns.ColumnOrder = orderByOffset(columns.ColumnStart)
	return &columns, nil
}

func nameEnd(sample string, from int) int {
	if loc := nameTerminator.FindStringIndex(sample[from:]); loc != nil {
		return from + loc[0]
	}
	return len(sample)
}

func orderByOffset(starts map[string]int) []string {
	out := make([]string, 0, len(starts))
	for title := range starts {
		out = append(out, title)
	}
	sort.Slice(out, func(i, j int) bool { return starts[out[i]] < starts[out[j]] })
	return out
}
