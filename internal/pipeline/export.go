package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"factorlink/internal"
)

// ExportAuditLog renders the combined message rows to one XLSX sheet.
func ExportAuditLog(rows []internal.DisplayRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"received_at", "message_type", "sender_code", "seller_nr", "seller_name",
		"partner_name", "partner_country", "seller_country", "buyer_name",
		"industry_product", "amount", "currency", "amount_usd",
		"payment_term_days", "contact_allowed", "credit_manager", "account_executive",
	}
	writeHeaders(f, sheet, headers)

	for i, row := range rows {
		r := i + 2
		set := cellSetter(f, sheet, r)
		set(1, row.ReceivedAt)
		set(2, row.MessageType)
		set(3, row.SenderCode)
		set(4, row.SellerNr)
		set(5, row.SellerName)
		set(6, row.PartnerName)
		set(7, row.PartnerCountry)
		set(8, row.SellerCountry)
		set(9, row.BuyerName)
		set(10, row.IndustryProduct)
		set(11, derefFloat(row.Amount))
		set(12, row.Currency)
		set(13, row.AmountUSD.String())
		set(14, derefFloat(row.PaymentTermDays))
		set(15, row.ContactAllowed)
		set(16, row.CreditManager)
		set(17, row.AccountExecutive)
	}

	return saveAs(f, outputPath)
}

// ExportReportBundle writes one sheet per parsed report plus the link sheet.
func ExportReportBundle(volume, commission *internal.ReportTable, link []internal.LinkRow, outputPath string) error {
	f := excelize.NewFile()
	first := true

	for _, table := range []*internal.ReportTable{volume, commission} {
		if table == nil {
			continue
		}
		sheet := string(table.Type)
		if first {
			_ = f.SetSheetName(f.GetSheetName(0), sheet)
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		writeTable(f, sheet, table)
	}

	if len(link) > 0 {
		sheet := "LINK"
		if first {
			_ = f.SetSheetName(f.GetSheetName(0), sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		writeLink(f, sheet, link)
	} else if first {
		return fmt.Errorf("nothing to export")
	}

	return saveAs(f, outputPath)
}

func writeTable(f *excelize.File, sheet string, table *internal.ReportTable) {
	headers := append([]string{"group", "code", "name"}, table.Columns.ColumnOrder...)
	writeHeaders(f, sheet, headers)

	for i, row := range table.Rows {
		set := cellSetter(f, sheet, i+2)
		set(1, row.Group)
		set(2, row.Code)
		set(3, row.Name)
		for c, title := range table.Columns.ColumnOrder {
			set(c+4, row.Values[title])
		}
	}
}

func writeLink(f *excelize.File, sheet string, link []internal.LinkRow) {
	writeHeaders(f, sheet, []string{
		"code", "name",
		"volume_curr_mo", "volume_ytd", "volume_ytd_diff",
		"comm_curr_mo", "comm_ytd", "comm_ytd_diff",
	})
	for i, row := range link {
		set := cellSetter(f, sheet, i+2)
		set(1, row.Code)
		set(2, row.Name)
		set(3, row.VolumeCurrMo)
		set(4, row.VolumeYTD)
		set(5, row.VolumeDiff)
		set(6, row.CommCurrMo)
		set(7, row.CommYTD)
		set(8, row.CommDiff)
	}
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func cellSetter(f *excelize.File, sheet string, row int) func(col int, value any) {
	return func(col int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func saveAs(f *excelize.File, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
