// Package report parses the fixed-width "Volume" and "Commission"
// correspondent statistics prints. The layout is undocumented, so the parser
// locates structure by content: the report type from a fixed line, the header
// by squashed-signature scan, and the column brackets from one sampled data
// line. The literal offsets in here match the print layout and must not be
// generalized.
package report

import (
	"errors"

	"factorlink/internal"
)

var (
	ErrUnknownReportType    = errors.New("report: unrecognized report type")
	ErrHeaderNotFound       = errors.New("report: header signature not found")
	ErrColumnAnchorNotFound = errors.New("report: column anchor code not found")
)

// Parse runs the full classify → locate → extract chain for one report
// document. Any failure is fatal for the document; there is no partial parse.
func Parse(text string) (*internal.ReportTable, error) {
	reportType := Classify(text)
	if reportType == internal.ReportUnknown {
		return nil, ErrUnknownReportType
	}

	headerRow, err := LocateHeader(text, reportType)
	if err != nil {
		return nil, err
	}
	columns, err := LocateColumns(text, headerRow, reportType)
	if err != nil {
		return nil, err
	}

	return &internal.ReportTable{
		Type:    reportType,
		Columns: *columns,
		Rows:    ParseRows(text, *columns, reportType),
	}, nil
}
