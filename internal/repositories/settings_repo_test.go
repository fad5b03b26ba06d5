package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetExtraDropUnitRateDefaultsWhenTableMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("app_settings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	rate, err := SettingsRepository{DB: db}.GetExtraDropUnitRate()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rate.String() != "1000" {
		t.Fatalf("expected default 1000, got %s", rate.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetExtraDropUnitRateReadsStoredValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("app_settings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("app_settings"))
	mock.ExpectQuery("SELECT v FROM app_settings").WithArgs("extra_drop_unit_rate").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("1500"))

	rate, err := SettingsRepository{DB: db}.GetExtraDropUnitRate()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rate.String() != "1500" {
		t.Fatalf("expected 1500, got %s", rate.String())
	}
}

func TestGetExtraDropUnitRateCorruptRowFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("app_settings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("app_settings"))
	mock.ExpectQuery("SELECT v FROM app_settings").WithArgs("extra_drop_unit_rate").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("not-a-number"))

	rate, err := SettingsRepository{DB: db}.GetExtraDropUnitRate()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rate.String() != "1000" {
		t.Fatalf("expected fallback 1000, got %s", rate.String())
	}
}

func TestSetExtraDropUnitRateUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO app_settings").WithArgs("extra_drop_unit_rate", "2500").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (SettingsRepository{DB: db}).SetExtraDropUnitRate(decFromString(t, "2500")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
