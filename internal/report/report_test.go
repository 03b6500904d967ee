package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"factorlink/internal"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	blob, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(blob)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want internal.ReportType
	}{
		{"volume fixture", readFixture(t, "volume.txt"), internal.ReportVolume},
		{"commission fixture", readFixture(t, "commission.txt"), internal.ReportCommission},
		{"lowercase title", "a\nb\nmonthly volume report\n", internal.ReportVolume},
		{"title on wrong line", "MONTHLY VOLUME REPORT\na\nb\n", internal.ReportUnknown},
		{"too short", "one line\nand another", internal.ReportUnknown},
		{"plain text", "hello\nworld\nnothing here\n", internal.ReportUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.text); got != tc.want {
			t.Fatalf("%s: Classify = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestParseVolume(t *testing.T) {
	table, err := Parse(readFixture(t, "volume.txt"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if table.Type != internal.ReportVolume {
		t.Fatalf("type = %s", table.Type)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(table.Rows))
	}

	codes := []string{table.Rows[0].Code, table.Rows[1].Code, table.Rows[2].Code}
	if codes[0] != "DE01" || codes[1] != "FR02" || codes[2] != "IT03" {
		t.Fatalf("codes = %v", codes)
	}

	de := table.Rows[0]
	if de.Group != "E" || de.Name != "EUROFACTOR AG NORD" {
		t.Fatalf("row = %+v", de)
	}
	if de.Values["CURR MO"] != "1,250,000" || de.Values["PREV YTD"] != "12,500,000" {
		t.Fatalf("values = %v", de.Values)
	}
	if de.Values["MO % DIFF"] != "25%" || de.Values["YTD % DIFF"] != "18%" {
		t.Fatalf("diffs = %v", de.Values)
	}

	fr := table.Rows[1]
	if fr.Values["MO % DIFF"] != "-20%" || fr.Values["YTD % DIFF"] != "0%" {
		t.Fatalf("FR02 diffs = %v", fr.Values)
	}

	it := table.Rows[2]
	if it.Values["MO % DIFF"] != "N/A" || it.Values["YTD % DIFF"] != "N/A" {
		t.Fatalf("IT03 diffs = %v", it.Values)
	}
}

func TestParseCommission(t *testing.T) {
	table, err := Parse(readFixture(t, "commission.txt"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if table.Type != internal.ReportCommission {
		t.Fatalf("type = %s", table.Type)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d", len(table.Rows))
	}

	jp := table.Rows[2]
	if jp.Code != "JP05" || jp.Group != "I" {
		t.Fatalf("row = %+v", jp)
	}
	if jp.Values["COMM CURR MO"] != "1,100" {
		t.Fatalf("values = %v", jp.Values)
	}
	if jp.Values["MO % DIFF"] != "22%" || jp.Values["YTD % DIFF"] != "13%" {
		t.Fatalf("diffs = %v", jp.Values)
	}
}

func TestParseUnknownDocument(t *testing.T) {
	_, err := Parse("just\nsome\ntext\n")
	if !errors.Is(err, ErrUnknownReportType) {
		t.Fatalf("err = %v, want ErrUnknownReportType", err)
	}
}

func TestParseHeaderMissing(t *testing.T) {
	_, err := Parse("a\nb\nMONTHLY VOLUME REPORT\nno header follows\n")
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("err = %v, want ErrHeaderNotFound", err)
	}
}

func TestBuildLinkTable(t *testing.T) {
	volume, err := Parse(readFixture(t, "volume.txt"))
	if err != nil {
		t.Fatalf("Parse volume: %v", err)
	}
	commission, err := Parse(readFixture(t, "commission.txt"))
	if err != nil {
		t.Fatalf("Parse commission: %v", err)
	}

	link := BuildLinkTable(volume, commission)
	if len(link) != 3 {
		t.Fatalf("link rows = %d, want one per volume row", len(link))
	}

	de := link[0]
	if de.Code != "DE01" || de.Name != "EUROFACTOR AG NORD" {
		t.Fatalf("link row = %+v", de)
	}
	if de.VolumeCurrMo != "1,250,000" || de.VolumeYTD != "14,800,000" || de.VolumeDiff != "18%" {
		t.Fatalf("volume side = %+v", de)
	}
	if de.CommCurrMo != "6,250" || de.CommYTD != "74,000" || de.CommDiff != "18%" {
		t.Fatalf("commission side = %+v", de)
	}

	// IT03 has no commission row; its commission cells stay empty.
	it := link[2]
	if it.Code != "IT03" || it.CommCurrMo != "" || it.CommYTD != "" || it.CommDiff != "" {
		t.Fatalf("unmatched link row = %+v", it)
	}
}
