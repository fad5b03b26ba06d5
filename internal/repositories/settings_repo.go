package repositories

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	intconfig "hauling-backend/internal/config"
	intdb "hauling-backend/internal/db"
)

const extraDropRateKey = "extra_drop_unit_rate"

// defaultExtraDropRate applies until dispatch admin sets the surcharge.
var defaultExtraDropRate = decimal.NewFromInt(1000)

// SettingsRepository backs process-wide dispatch configuration kept in a
// small key/value table. Values are fetched once per edit or report session
// and passed into the pure calculators, never read mid-computation.
type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SettingsRepository) GetExtraDropUnitRate() (decimal.Decimal, error) {
	db := r.db()
	if !intdb.HasTable(db, "app_settings") {
		return defaultExtraDropRate, nil
	}

	var raw string
	err := db.QueryRow(`SELECT v FROM app_settings WHERE k=? LIMIT 1`, extraDropRateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultExtraDropRate, nil
	}
	if err != nil {
		return defaultExtraDropRate, err
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		// a corrupt row should not break every edit screen
		return defaultExtraDropRate, nil
	}
	return v, nil
}

func (r SettingsRepository) SetExtraDropUnitRate(rate decimal.Decimal) error {
	_, err := r.db().Exec(`
		INSERT INTO app_settings (k, v) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE v=VALUES(v)`,
		extraDropRateKey, rate.String(),
	)
	return err
}
