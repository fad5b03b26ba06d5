package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	intconfig "hauling-backend/internal/config"

	"github.com/gin-gonic/gin"
)

type truck struct {
	ID          int64    `json:"id"`
	PlateNo     string   `json:"plateNo"`
	BodyType    string   `json:"bodyType"`
	CapacityCBM *float64 `json:"capacityCbm,omitempty"`
	Remarks     string   `json:"remarks,omitempty"`
}

type truckPayload struct {
	PlateNo     string   `json:"plateNo" binding:"required"`
	BodyType    string   `json:"bodyType"`
	CapacityCBM *float64 `json:"capacityCbm"`
	Remarks     string   `json:"remarks"`
}

// GET /api/trucks?q=ABC&page=1&limit=50
func GetTrucks(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	pageStr := strings.TrimSpace(c.Query("page"))
	limitStr := strings.TrimSpace(c.Query("limit"))

	baseSelect := `
		SELECT
			id,
			plate_no,
			COALESCE(body_type,'') AS body_type,
			capacity_cbm,
			COALESCE(remarks,'') AS remarks
		FROM trucks
	`

	where := ""
	args := []any{}
	if q != "" {
		where = " WHERE (plate_no LIKE ? OR body_type LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	order := " ORDER BY id DESC "

	query := baseSelect + where + order
	if pageStr != "" && limitStr != "" {
		page, _ := strconv.Atoi(pageStr)
		limit, _ := strconv.Atoi(limitStr)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 50
		}
		if limit > 200 {
			limit = 200
		}
		offset := (page - 1) * limit
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load trucks", err)
		return
	}
	defer rows.Close()

	list := []truck{}
	for rows.Next() {
		var t truck
		var capacity sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.PlateNo, &t.BodyType, &capacity, &t.Remarks); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan truck", err)
			return
		}
		if capacity.Valid {
			v := capacity.Float64
			t.CapacityCBM = &v
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to read trucks", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/trucks
func CreateTruck(c *gin.Context) {
	var p truckPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	p.PlateNo = strings.ToUpper(strings.TrimSpace(p.PlateNo))
	if p.PlateNo == "" {
		RespondError(c, http.StatusBadRequest, "plateNo required", nil)
		return
	}
	if p.CapacityCBM != nil && *p.CapacityCBM <= 0 {
		RespondError(c, http.StatusBadRequest, "capacityCbm must be greater than zero", nil)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO trucks (plate_no, body_type, capacity_cbm, remarks)
		VALUES (?,?,?,?)`,
		p.PlateNo, p.BodyType, nullFloat(p.CapacityCBM), p.Remarks,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create truck", err)
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, truck{ID: id, PlateNo: p.PlateNo, BodyType: p.BodyType, CapacityCBM: p.CapacityCBM, Remarks: p.Remarks})
}

// PUT /api/trucks/:id
func UpdateTruck(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}
	var p truckPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	p.PlateNo = strings.ToUpper(strings.TrimSpace(p.PlateNo))
	if p.CapacityCBM != nil && *p.CapacityCBM <= 0 {
		RespondError(c, http.StatusBadRequest, "capacityCbm must be greater than zero", nil)
		return
	}

	if _, err := intconfig.DB.Exec(`
		UPDATE trucks SET plate_no=?, body_type=?, capacity_cbm=?, remarks=?
		WHERE id=?`,
		p.PlateNo, p.BodyType, nullFloat(p.CapacityCBM), p.Remarks, id,
	); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update truck", err)
		return
	}

	c.JSON(http.StatusOK, truck{ID: id, PlateNo: p.PlateNo, BodyType: p.BodyType, CapacityCBM: p.CapacityCBM, Remarks: p.Remarks})
}

// DELETE /api/trucks/:id
func DeleteTruck(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}
	if _, err := intconfig.DB.Exec(`DELETE FROM trucks WHERE id=?`, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete truck", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
