package report

import (
	"strings"

	"factorlink/internal"
	"factorlink/internal/util"
)

// Classify decides Volume vs Commission from the third line of the print,
// where the report title always sits. Deliberately brittle: if the line moves
// the upload is rejected rather than misread.
func Classify(text string) internal.ReportType {
	lines := util.SplitLines(text)
	if len(lines) < 3 {
		return internal.ReportUnknown
	}
	title := strings.ToUpper(lines[2])
	switch {
	case strings.Contains(title, "VOLUME"):
		return internal.ReportVolume
	case strings.Contains(title, "COMMISSION"):
		return internal.ReportCommission
	default:
		return internal.ReportUnknown
	}
}
