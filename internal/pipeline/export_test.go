package pipeline

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"factorlink/internal"
	"factorlink/internal/util"
)

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("get %s!%s: %v", sheet, cell, err)
	}
	return v
}

func TestExportAuditLog(t *testing.T) {
	rows := []internal.DisplayRow{
		{
			ReceivedAt:       "2024-11-03 14:02:00",
			MessageType:      "05",
			SenderCode:       "F1",
			SellerNr:         "S9",
			SellerName:       "Hanse Textil GmbH",
			PartnerName:      "FACTOFRANCE SA",
			PartnerCountry:   "France",
			SellerCountry:    "France",
			BuyerName:        "Lyon Retail SARL",
			IndustryProduct:  "Textiles",
			Amount:           util.FloatPtr(90000),
			Currency:         "EUR",
			AmountUSD:        internal.ConvertedAmount{Value: util.FloatPtr(100000)},
			PaymentTermDays:  util.FloatPtr(60),
			ContactAllowed:   "Y",
			CreditManager:    "C. Moreau",
			AccountExecutive: "P. Laurent",
		},
		{
			ReceivedAt:  "2024-11-04 08:00:00",
			MessageType: "02",
			AmountUSD:   internal.ConvertedAmount{Note: "no USD rate for GBP"},
		},
	}

	path := filepath.Join(t.TempDir(), "audit.xlsx")
	if err := ExportAuditLog(rows, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	if got := cellValue(t, f, sheet, "A1"); got != "received_at" {
		t.Fatalf("A1 = %q", got)
	}
	if got := cellValue(t, f, sheet, "B2"); got != "05" {
		t.Fatalf("B2 = %q", got)
	}
	if got := cellValue(t, f, sheet, "E2"); got != "Hanse Textil GmbH" {
		t.Fatalf("E2 = %q", got)
	}
	if got := cellValue(t, f, sheet, "K2"); got != "90000" {
		t.Fatalf("K2 = %q", got)
	}
	if got := cellValue(t, f, sheet, "M2"); got != "100000.00" {
		t.Fatalf("M2 = %q", got)
	}
	if got := cellValue(t, f, sheet, "P2"); got != "C. Moreau" {
		t.Fatalf("P2 = %q", got)
	}
	// Degraded conversion exports its annotation, and the empty amount stays empty.
	if got := cellValue(t, f, sheet, "M3"); got != "no USD rate for GBP" {
		t.Fatalf("M3 = %q", got)
	}
	if got := cellValue(t, f, sheet, "K3"); got != "" {
		t.Fatalf("K3 = %q", got)
	}
}

func TestExportReportBundle(t *testing.T) {
	batch := newTestBatch()
	if _, err := batch.Add("volume.txt", readTestdata(t, "volume.txt")); err != nil {
		t.Fatal(err)
	}
	if _, err := batch.Add("commission.txt", readTestdata(t, "commission.txt")); err != nil {
		t.Fatal(err)
	}
	result := batch.Finish()

	path := filepath.Join(t.TempDir(), "reports.xlsx")
	if err := ExportReportBundle(result.Volume, result.Commission, result.Link, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"VOLUME", "COMMISSION", "LINK"}
	if !reflect.DeepEqual(sheets, want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}

	if got := cellValue(t, f, "VOLUME", "D1"); got != "CURR MO" {
		t.Fatalf("VOLUME D1 = %q", got)
	}
	if got := cellValue(t, f, "VOLUME", "B2"); got != "DE01" {
		t.Fatalf("VOLUME B2 = %q", got)
	}
	if got := cellValue(t, f, "VOLUME", "D2"); got != "1,250,000" {
		t.Fatalf("VOLUME D2 = %q", got)
	}
	if got := cellValue(t, f, "COMMISSION", "D2"); got != "6,250" {
		t.Fatalf("COMMISSION D2 = %q", got)
	}
	if got := cellValue(t, f, "LINK", "A2"); got != "DE01" {
		t.Fatalf("LINK A2 = %q", got)
	}
	// IT03 appears in volume but not commission; its commission cells stay empty.
	if got := cellValue(t, f, "LINK", "F4"); got != "" {
		t.Fatalf("LINK F4 = %q", got)
	}
}

func TestExportReportBundleNothingToExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.xlsx")
	if err := ExportReportBundle(nil, nil, nil, path); err == nil {
		t.Fatal("exporting an empty bundle must fail")
	}
}
