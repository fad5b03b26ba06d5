package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hauling-backend/internal/repositories"
)

// GET /api/settings/extra-drop-rate
func GetExtraDropRate(c *gin.Context) {
	rate, err := (repositories.SettingsRepository{}).GetExtraDropUnitRate()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load setting", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extra_drop_unit_rate": rate})
}

// PUT /api/settings/extra-drop-rate
func SetExtraDropRate(c *gin.Context) {
	var p struct {
		ExtraDropUnitRate decimal.Decimal `json:"extra_drop_unit_rate"`
	}
	if !BindJSONOrError(c, &p) {
		return
	}
	if p.ExtraDropUnitRate.IsNegative() {
		RespondError(c, http.StatusBadRequest, "extra_drop_unit_rate must not be negative", nil)
		return
	}

	if err := (repositories.SettingsRepository{}).SetExtraDropUnitRate(p.ExtraDropUnitRate); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save setting", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extra_drop_unit_rate": p.ExtraDropUnitRate})
}
