package report

import (
	"fmt"
	"math"
	"strings"

	"factorlink/internal"
	"factorlink/internal/util"
)

// Every data column is a fixed 15-character slice from its recorded offset.
const cellWidth = 15

// The diff sentinel emitted when either operand is missing, zero or
// unparsable. Division by zero never reaches the output.
const diffUnavailable = "N/A"

type diffColumn struct {
	name     string
	current  string
	previous string
}

var diffColumns = map[internal.ReportType][]diffColumn{
	internal.ReportVolume: {
		{name: "MO % DIFF", current: "CURR MO", previous: "PREV MO"},
		{name: "YTD % DIFF", current: "CURR YTD", previous: "PREV YTD"},
	},
	internal.ReportCommission: {
		{name: "MO % DIFF", current: "COMM CURR MO", previous: "COMM PREV MO"},
		{name: "YTD % DIFF", current: "COMM CURR YTD", previous: "COMM PREV YTD"},
	},
}

// ParseRows extracts every data row. A line qualifies only when its group
// slice trims to exactly one character and its code slice trims to non-empty;
// that single filter is what drops headers, page breaks and subtotal lines.
// Percentage-diff columns are always recomputed, never read from the text.
func ParseRows(text string, columns internal.ColumnMap, reportType internal.ReportType) []internal.ReportRow {
	var rows []internal.ReportRow
	for _, line := range util.SplitLines(text) {
		group := strings.TrimSpace(slice(line, columns.Group.Start, columns.Group.End))
		code := strings.TrimSpace(slice(line, columns.Code.Start, columns.Code.End))
		if len(group) != 1 || code == "" {
			continue
		}

		row := internal.ReportRow{
			Group:  group,
			Code:   code,
			Name:   strings.TrimSpace(slice(line, columns.Name.Start, columns.Name.End)),
			Values: map[string]string{},
		}
		for title, start := range columns.ColumnStart {
			row.Values[title] = strings.TrimSpace(slice(line, start, start+cellWidth))
		}
		for _, diff := range diffColumns[reportType] {
			row.Values[diff.name] = ComputeDiff(row.Values[diff.current], row.Values[diff.previous])
		}
		rows = append(rows, row)
	}
	return rows
}

// ComputeDiff renders the period-over-period change of two report cells as a
// rounded percentage string.
func ComputeDiff(current, previous string) string {
	cur := util.ReportNumber(current)
	prev := util.ReportNumber(previous)
	if cur == nil || prev == nil || *cur == 0 || *prev == 0 {
		return diffUnavailable
	}
	pct := math.Round((*cur - *prev) / *prev * 100)
	return fmt.Sprintf("%d%%", int(pct))
}

func slice(line string, start, end int) string {
	if start >= len(line) || start < 0 || start >= end {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}
