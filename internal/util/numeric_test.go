package util

import (
	"math"
	"testing"
)

func TestLenientFloat(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		isNil bool
		nan   bool
	}{
		{in: "", isNil: true},
		{in: "   ", isNil: true},
		{in: "100", want: 100},
		{in: "2500000", want: 2500000},
		{in: "1,5", want: 1.5},
		{in: "1,000", want: 1000},
		{in: "1.250.000", want: 1250000},
		{in: "1,234.56", want: 1234.56},
		{in: " 60 ", want: 60},
		{in: "abc", nan: true},
		{in: "12x", nan: true},
	}

	for _, tc := range cases {
		got := LenientFloat(tc.in)
		switch {
		case tc.isNil:
			if got != nil {
				t.Fatalf("LenientFloat(%q) = %v, want nil", tc.in, *got)
			}
		case tc.nan:
			if got == nil || !math.IsNaN(*got) {
				t.Fatalf("LenientFloat(%q) = %v, want NaN", tc.in, got)
			}
		default:
			if got == nil || *got != tc.want {
				t.Fatalf("LenientFloat(%q) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}

func TestLenientFloatDistinguishesEmptyFromZero(t *testing.T) {
	if got := LenientFloat(""); got != nil {
		t.Fatalf("empty input must stay nil, got %v", *got)
	}
	got := LenientFloat("0")
	if got == nil || *got != 0 {
		t.Fatalf("zero input must parse to 0, got %v", got)
	}
}

func TestReportNumber(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		isNil bool
	}{
		{in: "", isNil: true},
		{in: "   ", isNil: true},
		{in: "N/A", isNil: true},
		{in: "----", isNil: true},
		{in: "0", want: 0},
		{in: "1,250,000", want: 1250000},
		{in: "14,800,000", want: 14800000},
		{in: "(500)", want: -500},
		{in: "(1,000)", want: -1000},
		{in: " 75,000 ", want: 75000},
	}

	for _, tc := range cases {
		got := ReportNumber(tc.in)
		if tc.isNil {
			if got != nil {
				t.Fatalf("ReportNumber(%q) = %v, want nil", tc.in, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("ReportNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
