// Package report exports the settled finance history as a spreadsheet and a
// humanized console summary.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/ayameworks/cafesim/internal/finance"
)

// WriteXLSX renders day records into an xlsx workbook at path.
func WriteXLSX(path string, records []finance.DayRecord) error {
	f := excelize.NewFile()
	sheet := "Finance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Day", "Revenue", "Expenses", "Profit"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, rec := range records {
		row := r + 2
		values := []any{rec.Day, rec.Revenue, rec.Expenses, rec.Profit}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Totals row.
	var rev, exp, profit int
	for _, rec := range records {
		rev += rec.Revenue
		exp += rec.Expenses
		profit += rec.Profit
	}
	totalRow := len(records) + 2
	totals := []any{"Total", rev, exp, profit}
	for c, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(c+1, totalRow)
		_ = f.SetCellValue(sheet, cell, v)
	}

	return f.SaveAs(path)
}

// WriteSummary prints a humanized table of day records.
func WriteSummary(w io.Writer, records []finance.DayRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tREVENUE\tEXPENSES\tPROFIT")
	var rev, exp, profit int
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			rec.Day,
			humanize.Comma(int64(rec.Revenue)),
			humanize.Comma(int64(rec.Expenses)),
			humanize.Comma(int64(rec.Profit)),
		)
		rev += rec.Revenue
		exp += rec.Expenses
		profit += rec.Profit
	}
	fmt.Fprintf(tw, "total\t%s\t%s\t%s\n",
		humanize.Comma(int64(rev)),
		humanize.Comma(int64(exp)),
		humanize.Comma(int64(profit)),
	)
	tw.Flush()
}
