package repositories

import (
	"database/sql"
	"strings"

	intconfig "hauling-backend/internal/config"
	intdb "hauling-backend/internal/db"
	"hauling-backend/internal/domain/models"
)

// RollupsRepository reads the per-entity aggregates written by the external
// rollup process. Read-only by design: this service never writes the table.
type RollupsRepository struct {
	DB *sql.DB
}

func (r RollupsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByWaybills returns rollups grouped by waybill. A missing table means
// the aggregator has never run against this schema; that is "no data", not
// an error.
func (r RollupsRepository) ListByWaybills(waybillNos []string) (map[string][]models.EntityRollup, error) {
	out := map[string][]models.EntityRollup{}
	if len(waybillNos) == 0 {
		return out, nil
	}

	db := r.db()
	if !intdb.HasTable(db, "entity_rollups") {
		return out, nil
	}

	splitCol := "0"
	if intdb.HasColumn(db, "entity_rollups", "split_flag") {
		splitCol = "COALESCE(split_flag,0)"
	}

	placeholders := strings.Repeat("?,", len(waybillNos))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(waybillNos))
	for i, no := range waybillNos {
		args[i] = no
	}

	rows, err := db.Query(`
		SELECT waybill_no, COALESCE(entity_abbr,''),
		       COALESCE(total_percentage,0), COALESCE(total_amount,0), `+splitCol+`
		FROM entity_rollups
		WHERE waybill_no IN (`+placeholders+`)
		ORDER BY waybill_no, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.EntityRollup
		if err := rows.Scan(&rec.WaybillNo, &rec.EntityAbbr, &rec.TotalPercentage, &rec.TotalAmount, &rec.SplitFlag); err != nil {
			return nil, err
		}
		out[rec.WaybillNo] = append(out[rec.WaybillNo], rec)
	}
	return out, rows.Err()
}
