package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"hauling-backend/internal/domain"
	"hauling-backend/internal/domain/models"
	"hauling-backend/internal/repositories"
	"hauling-backend/internal/utils"
	"hauling-backend/internal/waybill"
)

// reconcileTolerance is the peso difference between a trip's resolved total
// and its recorded drop amounts beyond which the trip is surfaced for manual
// review. One-off data patches used to be hard-coded per waybill instead.
var reconcileTolerance = decimal.NewFromInt(1)

// ReportService builds the sales report: every trip in a date range joined
// with its resolved entity breakdown.
type ReportService struct {
	TripsRepo      repositories.TripsRepository
	DropsRepo      repositories.DropsRepository
	RollupsRepo    repositories.RollupsRepository
	SubDetailsRepo repositories.SubDetailsRepository
	RequestID      string
}

// SalesReportRow is one trip flattened for display. Destinations and Amounts
// pair line by line, one per resolved entity.
type SalesReportRow struct {
	WaybillNo  string `json:"waybillNo"`
	TripDate   string `json:"tripDate"`
	PlateNo    string `json:"plateNo"`
	DriverName string `json:"driverName"`

	Destinations []string `json:"destinations"` // "ABBR(NN%)"
	Amounts      []string `json:"amounts"`      // "₱1,234.00"

	// TotalAmount sums the resolved per-entity amounts. Deliberately NOT the
	// live rate-allocation preview: the report reflects what was recorded
	// per consignee, which may legitimately diverge.
	TotalAmount decimal.Decimal `json:"totalAmount"`

	Degraded bool `json:"degraded,omitempty"`
}

type SalesReportSummary struct {
	TripCount   int             `json:"tripCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type SalesReport struct {
	Rows     []SalesReportRow   `json:"rows"`
	Summary  SalesReportSummary `json:"summary"`
	Warnings []string           `json:"warnings,omitempty"`
}

// BuildSalesReport loads every source for the whole trip batch before
// resolving any single trip, so partial data for one trip is never mistaken
// for "no data" on another. A failed rollup or sub-detail load degrades to
// empty input with a warning; failed drops degrade the affected rows to "-"
// placeholders. The batch always completes.
func (s ReportService) BuildSalesReport(startDate, endDate string) (SalesReport, error) {
	trips, err := s.TripsRepo.List(startDate, endDate, "")
	if err != nil {
		return SalesReport{}, domain.SourceUnavailableError{Source: "trips", Err: err}
	}

	waybillNos := make([]string, 0, len(trips))
	for _, t := range trips {
		waybillNos = append(waybillNos, t.WaybillNo)
	}

	report := SalesReport{Rows: make([]SalesReportRow, 0, len(trips))}

	dropsByTrip, err := s.DropsRepo.ListByWaybills(waybillNos)
	dropsOK := err == nil
	if err != nil {
		report.Warnings = append(report.Warnings, "drops source unavailable, affected rows degraded")
		utils.LogEvent(s.RequestID, "reports", "source_unavailable", "source=drops err="+err.Error())
		dropsByTrip = map[string][]models.Drop{}
	}
	rollupsByTrip, err := s.RollupsRepo.ListByWaybills(waybillNos)
	if err != nil {
		report.Warnings = append(report.Warnings, "entity rollup source unavailable, fell back to drop derivation")
		utils.LogEvent(s.RequestID, "reports", "source_unavailable", "source=rollups err="+err.Error())
		rollupsByTrip = map[string][]models.EntityRollup{}
	}
	subDetailsByTrip, err := s.SubDetailsRepo.ListByWaybills(waybillNos)
	if err != nil {
		report.Warnings = append(report.Warnings, "sub-detail source unavailable, gaps not filled")
		utils.LogEvent(s.RequestID, "reports", "source_unavailable", "source=sub_details err="+err.Error())
		subDetailsByTrip = map[string][]models.SubDetail{}
	}

	for _, t := range trips {
		drops := dropsByTrip[t.WaybillNo]
		breakdown := waybill.ResolveEntities(drops, rollupsByTrip[t.WaybillNo], subDetailsByTrip[t.WaybillNo])

		row := SalesReportRow{
			WaybillNo:  t.WaybillNo,
			TripDate:   t.TripDate,
			PlateNo:    t.PlateNo,
			DriverName: t.DriverName,
		}

		if len(breakdown) == 0 {
			row.Destinations = []string{"-"}
			row.Amounts = []string{"-"}
			row.TotalAmount = decimal.Zero
			row.Degraded = true
			report.Rows = append(report.Rows, row)
			continue
		}

		for _, b := range breakdown {
			row.Destinations = append(row.Destinations, fmt.Sprintf("%s(%s)", b.EntityAbbr, utils.FormatPercent(b.Percentage)))
			row.Amounts = append(row.Amounts, utils.FormatPeso(b.Amount))
		}
		row.TotalAmount = waybill.BreakdownTotal(breakdown)

		if dropsOK && len(drops) > 0 {
			if diff, flagged := waybill.ReconcileDivergence(breakdown, drops, reconcileTolerance); flagged {
				report.Warnings = append(report.Warnings, fmt.Sprintf(
					"waybill %s: resolved total diverges from recorded consignee amounts by %s, needs manual review",
					t.WaybillNo, utils.FormatPeso(diff)))
			}
		}

		report.Rows = append(report.Rows, row)
	}

	report.Summary.TripCount = len(report.Rows)
	total := decimal.Zero
	for _, row := range report.Rows {
		total = total.Add(row.TotalAmount)
	}
	report.Summary.TotalAmount = total

	utils.LogEvent(s.RequestID, "reports", "build_sales", fmt.Sprintf("trips=%d warnings=%d", len(report.Rows), len(report.Warnings)))
	return report, nil
}
