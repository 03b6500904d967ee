package pipeline

import "strings"

type DetectResult struct {
	IsFactoring bool
	Score       float64
	Reason      string
}

var detectKeywords = []string{
	"msg01", "msg02", "msg05", "msg07",
	"edifactoring", "credit cover", "seller agreement",
	"volume report", "commission report", "factoring",
}

// DetectFactoringMail scores whether a mail carries factoring documents at
// all, before any parsing is attempted. Plain rule scoring, no magic.
func DetectFactoringMail(subject, text string, attachmentNames []string) DetectResult {
	subject = strings.ToLower(subject)
	text = strings.ToLower(text)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(subject, kw) {
			score += 0.25
		}
		if strings.Contains(text, kw) {
			score += 0.1
		}
	}

	for _, name := range attachmentNames {
		ln := strings.ToLower(name)
		if strings.HasSuffix(ln, ".xml") || strings.HasSuffix(ln, ".txt") ||
			strings.HasSuffix(ln, ".rpt") || strings.HasSuffix(ln, ".prn") || strings.HasSuffix(ln, ".pdf") {
			score += 0.3
			break
		}
	}
	if strings.Contains(text, "<msg") {
		score += 0.4
	}
	if score > 1 {
		score = 1
	}

	isFactoring := score >= 0.4
	reason := "rules_negative"
	if isFactoring {
		reason = "rules_positive"
	}
	return DetectResult{IsFactoring: isFactoring, Score: score, Reason: reason}
}
