package report

import "factorlink/internal"

// BuildLinkTable joins a volume table with a commission table by factor code.
// Volume row order is preserved; codes with no commission row keep empty
// commission cells.
func BuildLinkTable(volume, commission *internal.ReportTable) []internal.LinkRow {
	byCode := map[string]internal.ReportRow{}
	if commission != nil {
		for _, row := range commission.Rows {
			byCode[row.Code] = row
		}
	}

	var out []internal.LinkRow
	if volume == nil {
		return out
	}
	for _, row := range volume.Rows {
		link := internal.LinkRow{
			Code:         row.Code,
			Name:         row.Name,
			VolumeCurrMo: row.Values["CURR MO"],
			VolumeYTD:    row.Values["CURR YTD"],
			VolumeDiff:   row.Values["YTD % DIFF"],
		}
		if comm, ok := byCode[row.Code]; ok {
			link.CommCurrMo = comm.Values["COMM CURR MO"]
			link.CommYTD = comm.Values["COMM CURR YTD"]
			link.CommDiff = comm.Values["YTD % DIFF"]
		}
		out = append(out, link)
	}
	return out
}
