package repositories

import (
	"database/sql"
	"strings"

	intconfig "hauling-backend/internal/config"
	intdb "hauling-backend/internal/db"
	"hauling-backend/internal/domain/models"
)

// SubDetailsRepository reads itemized per-store amounts, the finest-grained
// of the redundant captures. External and read-only, same as rollups.
type SubDetailsRepository struct {
	DB *sql.DB
}

func (r SubDetailsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SubDetailsRepository) ListByWaybills(waybillNos []string) (map[string][]models.SubDetail, error) {
	out := map[string][]models.SubDetail{}
	if len(waybillNos) == 0 {
		return out, nil
	}

	db := r.db()
	if !intdb.HasTable(db, "sub_details") {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(waybillNos))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(waybillNos))
	for i, no := range waybillNos {
		args[i] = no
	}

	rows, err := db.Query(`
		SELECT waybill_no, COALESCE(consignee_label,''), COALESCE(store_name,''),
		       COALESCE(amount,0), COALESCE(percentage,0)
		FROM sub_details
		WHERE waybill_no IN (`+placeholders+`)
		ORDER BY waybill_no, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.SubDetail
		if err := rows.Scan(&rec.WaybillNo, &rec.ConsigneeLabel, &rec.StoreName, &rec.Amount, &rec.Percentage); err != nil {
			return nil, err
		}
		out[rec.WaybillNo] = append(out[rec.WaybillNo], rec)
	}
	return out, rows.Err()
}
