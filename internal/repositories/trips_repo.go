package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	intconfig "hauling-backend/internal/config"
	intdb "hauling-backend/internal/db"
	"hauling-backend/internal/domain"
	"hauling-backend/internal/domain/models"
)

type TripsRepository struct {
	DB *sql.DB
}

func (r TripsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `
	id, waybill_no,
	COALESCE(trip_date,''), COALESCE(plate_no,''), COALESCE(driver_name,''),
	COALESCE(pickup_address,''), COALESCE(prepared_date,''), COALESCE(body_type,''), COALESCE(remarks,''),
	truck_cbm,
	COALESCE(additional_adjustment,0),
	COALESCE(highest_rate,0), COALESCE(total_rate,0), COALESCE(total_amount,0)`

// List returns trips, newest first, optionally bounded by trip_date and
// filtered by a free-text match on waybill/plate/driver.
func (r TripsRepository) List(startDate, endDate, q string) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(startDate); s != "" {
		where = append(where, "trip_date>=?")
		args = append(args, s)
	}
	if e := strings.TrimSpace(endDate); e != "" {
		where = append(where, "trip_date<=?")
		args = append(args, e)
	}
	if needle := strings.TrimSpace(q); needle != "" {
		where = append(where, "(waybill_no LIKE ? OR plate_no LIKE ? OR driver_name LIKE ?)")
		like := "%" + needle + "%"
		args = append(args, like, like, like)
	}

	query := `SELECT` + tripColumns + `
		FROM trips
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY trip_date DESC, id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripsRepository) GetByWaybillNo(waybillNo string) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT`+tripColumns+` FROM trips WHERE waybill_no=? LIMIT 1`, waybillNo)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

func (r TripsRepository) Create(t models.Trip) (models.Trip, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (
			waybill_no, trip_date, plate_no, driver_name,
			pickup_address, prepared_date, body_type, remarks,
			truck_cbm, additional_adjustment,
			highest_rate, total_rate, total_amount
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.WaybillNo, intdb.NullIfEmpty(t.TripDate), t.PlateNo, t.DriverName,
		t.PickupAddress, intdb.NullIfEmpty(t.PreparedDate), t.BodyType, t.Remarks,
		nullDecimal(t.TruckCBM), t.AdditionalAdjustment,
		t.HighestRate, t.TotalRate, t.TotalAmount,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Trip{}, domain.ConflictError{Resource: "trip", Msg: "waybill_no already exists", Err: err}
		}
		return models.Trip{}, err
	}
	t.ID, _ = res.LastInsertId()
	return t, nil
}

// UpdateMeta updates dispatch-editable metadata only; allocation fields go
// through UpdateAllocation so the write-through stays in one place.
func (r TripsRepository) UpdateMeta(waybillNo string, t models.Trip) error {
	_, err := r.db().Exec(`
		UPDATE trips SET
			trip_date=?, plate_no=?, driver_name=?,
			pickup_address=?, prepared_date=?, body_type=?, remarks=?
		WHERE waybill_no=?`,
		intdb.NullIfEmpty(t.TripDate), t.PlateNo, t.DriverName,
		t.PickupAddress, intdb.NullIfEmpty(t.PreparedDate), t.BodyType, t.Remarks,
		waybillNo,
	)
	// MySQL reports zero affected rows when nothing changed, so existence is
	// the caller's check, not RowsAffected.
	return err
}

// UpdateAllocation persists the recomputed billing fields together with the
// input that changed. One statement so a write-through is all-or-nothing.
func (r TripsRepository) UpdateAllocation(waybillNo string, truckCBM *decimal.Decimal, adjustment, highestRate, totalRate, totalAmount decimal.Decimal) error {
	_, err := r.db().Exec(`
		UPDATE trips SET
			truck_cbm=?, additional_adjustment=?,
			highest_rate=?, total_rate=?, total_amount=?
		WHERE waybill_no=?`,
		nullDecimal(truckCBM), adjustment,
		highestRate, totalRate, totalAmount,
		waybillNo,
	)
	return err
}

func (r TripsRepository) Delete(waybillNo string) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE waybill_no=?`, waybillNo)
	if err != nil {
		return err
	}
	return requireRow(res, "trip")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var t models.Trip
	var truckCBM decimal.NullDecimal
	err := row.Scan(
		&t.ID, &t.WaybillNo,
		&t.TripDate, &t.PlateNo, &t.DriverName,
		&t.PickupAddress, &t.PreparedDate, &t.BodyType, &t.Remarks,
		&truckCBM,
		&t.AdditionalAdjustment,
		&t.HighestRate, &t.TotalRate, &t.TotalAmount,
	)
	if err != nil {
		return models.Trip{}, err
	}
	if truckCBM.Valid {
		v := truckCBM.Decimal
		t.TruckCBM = &v
	}
	return t, nil
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

func requireRow(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
