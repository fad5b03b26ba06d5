package services

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hauling-backend/internal/repositories"
)

func reportServiceFor(db *sql.DB) ReportService {
	return ReportService{
		TripsRepo:      repositories.TripsRepository{DB: db},
		DropsRepo:      repositories.DropsRepository{DB: db},
		RollupsRepo:    repositories.RollupsRepository{DB: db},
		SubDetailsRepo: repositories.SubDetailsRepository{DB: db},
	}
}

func reportTripColumns() []string {
	return []string{
		"id", "waybill_no",
		"trip_date", "plate_no", "driver_name",
		"pickup_address", "prepared_date", "body_type", "remarks",
		"truck_cbm", "additional_adjustment",
		"highest_rate", "total_rate", "total_amount",
	}
}

// Three trips covering the resolution tiers: WB-1 resolves from its rollup
// with the DC ILOILO waypoint excluded, WB-2 derives from drops and gets an
// extra entity appended from sub-details, WB-3 has no data at all.
func TestBuildSalesReportResolvesEachTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WithArgs("2025-06-01", "2025-06-30").
		WillReturnRows(sqlmock.NewRows(reportTripColumns()).
			AddRow(1, "WB-1", "2025-06-03", "ABC-123", "J. Dela Cruz", "", "", "", "", nil, "0", "0", "0", "0").
			AddRow(2, "WB-2", "2025-06-02", "XYZ-987", "R. Santos", "", "", "", "", nil, "0", "0", "0", "0").
			AddRow(3, "WB-3", "2025-06-01", "JKL-456", "M. Reyes", "", "", "", "", nil, "0", "0", "0", "0"))

	mock.ExpectQuery("information_schema\\.columns").WithArgs("drops", "amount").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("amount"))
	mock.ExpectQuery("FROM drops").WithArgs("WB-1", "WB-2", "WB-3").
		WillReturnRows(sqlmock.NewRows(dropColumnsForServiceTest()).
			AddRow(1, "WB-1", "ACME - StoreX", "", "", "0", "60", "0", "6000", "Store", 0).
			AddRow(2, "WB-1", "DC ILOILO - Hub", "", "", "0", "40", "0", "0", "DC", 0).
			AddRow(3, "WB-2", "ACME - StoreA", "", "", "0", "30", "0", "300", "Store", 0).
			AddRow(4, "WB-2", "ACME - StoreB", "", "", "0", "20", "0", "200", "Store", 0))

	mock.ExpectQuery("information_schema\\.tables").WithArgs("entity_rollups").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("entity_rollups"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("entity_rollups", "split_flag").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectQuery("FROM entity_rollups").WithArgs("WB-1", "WB-2", "WB-3").
		WillReturnRows(sqlmock.NewRows([]string{"waybill_no", "entity_abbr", "total_percentage", "total_amount", "split"}).
			AddRow("WB-1", "ACME", "60", "6000", 0).
			AddRow("WB-1", "DC ILOILO", "40", "0", 0))

	mock.ExpectQuery("information_schema\\.tables").WithArgs("sub_details").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("sub_details"))
	mock.ExpectQuery("FROM sub_details").WithArgs("WB-1", "WB-2", "WB-3").
		WillReturnRows(sqlmock.NewRows([]string{"waybill_no", "consignee_label", "store_name", "amount", "percentage"}).
			AddRow("WB-2", "BETA - StoreC", "StoreC", "500", "10"))

	report, err := reportServiceFor(db).BuildSalesReport("2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(report.Rows))
	}

	wb1 := report.Rows[0]
	if len(wb1.Destinations) != 1 || wb1.Destinations[0] != "ACME(60%)" {
		t.Fatalf("WB-1 destinations wrong: %v", wb1.Destinations)
	}
	if wb1.Amounts[0] != "₱6,000.00" {
		t.Fatalf("WB-1 amounts wrong: %v", wb1.Amounts)
	}
	if !wb1.TotalAmount.Equal(decVal("6000")) {
		t.Fatalf("WB-1 total wrong: %s", wb1.TotalAmount)
	}

	wb2 := report.Rows[1]
	if len(wb2.Destinations) != 2 || wb2.Destinations[0] != "ACME(50%)" || wb2.Destinations[1] != "BETA(10%)" {
		t.Fatalf("WB-2 destinations wrong: %v", wb2.Destinations)
	}
	if wb2.Amounts[0] != "₱500.00" || wb2.Amounts[1] != "₱500.00" {
		t.Fatalf("WB-2 amounts wrong: %v", wb2.Amounts)
	}
	if !wb2.TotalAmount.Equal(decVal("1000")) {
		t.Fatalf("WB-2 total wrong: %s", wb2.TotalAmount)
	}

	wb3 := report.Rows[2]
	if !wb3.Degraded || wb3.Destinations[0] != "-" || wb3.Amounts[0] != "-" {
		t.Fatalf("WB-3 should be a placeholder row: %+v", wb3)
	}

	if report.Summary.TripCount != 3 {
		t.Fatalf("summary trip count wrong: %d", report.Summary.TripCount)
	}
	if !report.Summary.TotalAmount.Equal(decVal("7000")) {
		t.Fatalf("summary total wrong: %s", report.Summary.TotalAmount)
	}

	// WB-2's sub-detail entity has no matching drop amount, so the resolved
	// total exceeds what the drops recorded and the trip is flagged
	if len(report.Warnings) != 1 {
		t.Fatalf("expected one divergence warning, got %v", report.Warnings)
	}
	if !strings.Contains(report.Warnings[0], "WB-2") || !strings.Contains(report.Warnings[0], "₱500.00") {
		t.Fatalf("divergence warning wrong: %s", report.Warnings[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuildSalesReportDegradesWhenRollupsFail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").
		WillReturnRows(sqlmock.NewRows(reportTripColumns()).
			AddRow(1, "WB-1", "2025-06-03", "ABC-123", "J. Dela Cruz", "", "", "", "", nil, "0", "0", "0", "0"))

	mock.ExpectQuery("information_schema\\.columns").WithArgs("drops", "amount").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("amount"))
	mock.ExpectQuery("FROM drops").WithArgs("WB-1").
		WillReturnRows(sqlmock.NewRows(dropColumnsForServiceTest()).
			AddRow(1, "WB-1", "ACME - StoreX", "", "", "0", "60", "0", "600", "Store", 0))

	mock.ExpectQuery("information_schema\\.tables").WithArgs("entity_rollups").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("entity_rollups"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("entity_rollups", "split_flag").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectQuery("FROM entity_rollups").WillReturnError(sql.ErrConnDone)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("sub_details").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	report, err := reportServiceFor(db).BuildSalesReport("", "")
	if err != nil {
		t.Fatalf("a failed rollup load must not abort the batch, got %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	// the row falls back to drop derivation instead of going dark
	if report.Rows[0].Destinations[0] != "ACME(60%)" {
		t.Fatalf("fallback derivation wrong: %v", report.Rows[0].Destinations)
	}
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "rollup source unavailable") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a rollup warning, got %v", report.Warnings)
	}
}

func TestBuildSalesReportFailsOnlyWhenTripsUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WillReturnError(sql.ErrConnDone)

	_, err = reportServiceFor(db).BuildSalesReport("", "")
	if err == nil {
		t.Fatalf("expected an error when the trip list itself cannot load")
	}
}
