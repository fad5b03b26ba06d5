package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"hauling-backend/internal/repositories"
	"hauling-backend/internal/utils"
	"hauling-backend/internal/waybill"
)

// ManifestService renders the printable waybill manifest handed to the
// driver at dispatch.
type ManifestService struct {
	TripsRepo    repositories.TripsRepository
	DropsRepo    repositories.DropsRepository
	SettingsRepo repositories.SettingsRepository
	RequestID    string
}

// BuildManifest returns the PDF bytes and a suggested filename.
func (s ManifestService) BuildManifest(waybillNo string) ([]byte, string, error) {
	trip, err := s.TripsRepo.GetByWaybillNo(waybillNo)
	if err != nil {
		return nil, "", err
	}
	drops, err := s.DropsRepo.ListByWaybill(waybillNo)
	if err != nil {
		return nil, "", err
	}
	unitRate, err := s.SettingsRepo.GetExtraDropUnitRate()
	if err != nil {
		return nil, "", err
	}
	alloc := waybill.Allocate(drops, trip.AdditionalAdjustment, unitRate)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Waybill Manifest "+trip.WaybillNo, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(190, 10, "WAYBILL MANIFEST", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Waybill No", trip.WaybillNo},
		{"Trip Date", trip.TripDate},
		{"Plate No", trip.PlateNo},
		{"Driver", trip.DriverName},
		{"Pickup", trip.PickupAddress},
		{"Body Type", trip.BodyType},
		{"Prepared", trip.PreparedDate},
	}
	for _, kv := range meta {
		pdf.CellFormat(40, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(150, 6, kv[1], "", 1, "L", false, 0, "")
	}
	if truck := trip.TruckCBM; truck != nil {
		pdf.CellFormat(40, 6, "Truck CBM", "", 0, "L", false, 0, "")
		pdf.CellFormat(150, 6, truck.StringFixed(2), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Consignee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Destination", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Share %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "CBM", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	totalCBM := decimal.Zero
	for _, d := range drops {
		totalCBM = totalCBM.Add(d.CBM)
		pdf.CellFormat(70, 6, d.ConsigneeLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, d.Destination, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, utils.FormatPesoASCII(d.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, utils.FormatPercent(d.Percentage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, d.CBM.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	summary := [][2]string{
		{"Drops", fmt.Sprintf("%d", len(drops))},
		{"Total CBM", totalCBM.StringFixed(2)},
		{"Highest Rate", utils.FormatPesoASCII(alloc.HighestRate)},
		{"Extra-drop Surcharge", utils.FormatPesoASCII(alloc.Surcharge)},
		{"Adjustment", utils.FormatPesoASCII(trip.AdditionalAdjustment)},
		{"Total Rate", utils.FormatPesoASCII(alloc.TotalRate)},
	}
	for _, kv := range summary {
		pdf.CellFormat(50, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(140, 6, kv[1], "", 1, "L", false, 0, "")
	}

	if remarks := trip.Remarks; remarks != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(190, 5, "Remarks: "+remarks, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "manifest", "generate", "waybill_no="+waybillNo)
	return buf.Bytes(), fmt.Sprintf("manifest-%s.pdf", trip.WaybillNo), nil
}
