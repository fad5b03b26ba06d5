package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const salesSheet = "Sales Report"

// ExportSalesReportXLSX renders a built report as a spreadsheet for the
// accounting side. Multi-line destination/amount pairs keep their pairing
// inside a single cell, one entity per line.
func (s ReportService) ExportSalesReportXLSX(report SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", salesSheet)

	headers := []string{"Date", "Waybill No", "Plate No", "Driver", "Destinations", "Amounts", "Total Amount"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(salesSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range report.Rows {
		values := []any{
			row.TripDate,
			row.WaybillNo,
			row.PlateNo,
			row.DriverName,
			strings.Join(row.Destinations, "\n"),
			strings.Join(row.Amounts, "\n"),
			row.TotalAmount.StringFixed(2),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(salesSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// summary block two rows under the table
	summaryRow := len(report.Rows) + 3
	if err := f.SetCellValue(salesSheet, fmt.Sprintf("A%d", summaryRow), "Trips"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(salesSheet, fmt.Sprintf("B%d", summaryRow), report.Summary.TripCount); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(salesSheet, fmt.Sprintf("A%d", summaryRow+1), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(salesSheet, fmt.Sprintf("B%d", summaryRow+1), report.Summary.TotalAmount.StringFixed(2)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
