package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hauling-backend/internal/domain/models"
	"hauling-backend/internal/repositories"
)

// GET /api/trips/:waybillNo/drops
func GetTripDrops(c *gin.Context) {
	waybillNo := strings.TrimSpace(c.Param("waybillNo"))
	drops, err := (repositories.DropsRepository{}).ListByWaybill(waybillNo)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load drops", err)
		return
	}

	readOnly := duplicateService(c).IsReadOnly(c.Request.Context(), waybillNo)
	c.JSON(http.StatusOK, gin.H{
		"drops":     drops,
		"read_only": readOnly,
	})
}

// POST /api/trips/:waybillNo/drops
func CreateDrop(c *gin.Context) {
	var d models.Drop
	if !BindJSONOrError(c, &d) {
		return
	}
	d.WaybillNo = strings.TrimSpace(c.Param("waybillNo"))

	result, err := dropService(c).Create(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// PUT /api/drops/:id
func UpdateDrop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}
	var d models.Drop
	if !BindJSONOrError(c, &d) {
		return
	}

	result, err := dropService(c).Update(c.Request.Context(), id, d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DELETE /api/drops/:id
func DeleteDrop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}
	capacity, err := dropService(c).Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "capacity": capacity})
}
