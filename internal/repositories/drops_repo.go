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

type DropsRepository struct {
	DB *sql.DB
}

func (r DropsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// dropSelect builds the column list; amount arrived in a later migration so
// older schemas fall back to zero instead of failing the whole query.
func (r DropsRepository) dropSelect() string {
	amountCol := "0"
	if intdb.HasColumn(r.db(), "drops", "amount") {
		amountCol = "COALESCE(amount,0)"
	}
	return `SELECT id, waybill_no,
		COALESCE(consignee_label,''), COALESCE(origin,''), COALESCE(destination,''),
		COALESCE(rate,0), COALESCE(percentage,0), COALESCE(cbm,0), ` + amountCol + `,
		COALESCE(drop_type,'Store'), COALESCE(has_sub_details,0)
	FROM drops`
}

func (r DropsRepository) ListByWaybill(waybillNo string) ([]models.Drop, error) {
	rows, err := r.db().Query(r.dropSelect()+` WHERE waybill_no=? ORDER BY id ASC`, waybillNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDrops(rows)
}

// ListByWaybills batch-loads drops for a report window in one round trip,
// keyed by waybill. An empty key set short-circuits to an empty map.
func (r DropsRepository) ListByWaybills(waybillNos []string) (map[string][]models.Drop, error) {
	out := map[string][]models.Drop{}
	if len(waybillNos) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(waybillNos))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(waybillNos))
	for i, no := range waybillNos {
		args[i] = no
	}

	rows, err := r.db().Query(r.dropSelect()+` WHERE waybill_no IN (`+placeholders+`) ORDER BY waybill_no, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drops, err := collectDrops(rows)
	if err != nil {
		return nil, err
	}
	for _, d := range drops {
		out[d.WaybillNo] = append(out[d.WaybillNo], d)
	}
	return out, nil
}

func (r DropsRepository) GetByID(id int64) (models.Drop, error) {
	row := r.db().QueryRow(r.dropSelect()+` WHERE id=? LIMIT 1`, id)
	d, err := scanDrop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Drop{}, domain.NotFoundError{Resource: "drop", Err: err}
	}
	return d, err
}

func (r DropsRepository) Create(d models.Drop) (models.Drop, error) {
	res, err := r.db().Exec(`
		INSERT INTO drops (
			waybill_no, consignee_label, origin, destination,
			rate, percentage, cbm, amount, drop_type, has_sub_details
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		d.WaybillNo, d.ConsigneeLabel, d.Origin, d.Destination,
		d.Rate, d.Percentage, d.CBM, d.Amount, d.DropType, d.HasSubDetails,
	)
	if err != nil {
		return models.Drop{}, err
	}
	d.ID, _ = res.LastInsertId()
	return d, nil
}

func (r DropsRepository) Update(id int64, d models.Drop) error {
	_, err := r.db().Exec(`
		UPDATE drops SET
			consignee_label=?, origin=?, destination=?,
			rate=?, percentage=?, cbm=?, amount=?, drop_type=?, has_sub_details=?
		WHERE id=?`,
		d.ConsigneeLabel, d.Origin, d.Destination,
		d.Rate, d.Percentage, d.CBM, d.Amount, d.DropType, d.HasSubDetails,
		id,
	)
	return err
}

func (r DropsRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM drops WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "drop")
}

// TotalCBM sums drop volume for one trip. Nil when the trip has no drops so
// the capacity check stays silent instead of reporting a zero load.
func (r DropsRepository) TotalCBM(waybillNo string) (*decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db().QueryRow(`SELECT SUM(cbm) FROM drops WHERE waybill_no=?`, waybillNo).Scan(&sum)
	if err != nil {
		return nil, err
	}
	if !sum.Valid {
		return nil, nil
	}
	v := sum.Decimal
	return &v, nil
}

func collectDrops(rows *sql.Rows) ([]models.Drop, error) {
	out := []models.Drop{}
	for rows.Next() {
		d, err := scanDrop(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDrop(row rowScanner) (models.Drop, error) {
	var d models.Drop
	err := row.Scan(
		&d.ID, &d.WaybillNo,
		&d.ConsigneeLabel, &d.Origin, &d.Destination,
		&d.Rate, &d.Percentage, &d.CBM, &d.Amount,
		&d.DropType, &d.HasSubDetails,
	)
	return d, err
}
