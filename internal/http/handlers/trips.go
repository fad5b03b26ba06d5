package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hauling-backend/internal/domain/models"
	"hauling-backend/internal/repositories"
	"hauling-backend/internal/waybill"
)

// TripWithCalc is the list payload: the stored trip plus the live advisory
// computed from its current drops. The stored header fields and the live
// preview can differ until the next write-through.
type TripWithCalc struct {
	Trip       models.Trip           `json:"trip"`
	Allocation waybill.Allocation    `json:"allocation"`
	Capacity   waybill.CapacityCheck `json:"capacity"`

	TotalAmountFromDrops decimal.Decimal `json:"totalAmountFromDrops"`
}

// GET /api/trips?start_date=&end_date=&q=
func GetTrips(c *gin.Context) {
	tripsRepo := repositories.TripsRepository{}
	dropsRepo := repositories.DropsRepository{}
	settingsRepo := repositories.SettingsRepository{}

	trips, err := tripsRepo.List(c.Query("start_date"), c.Query("end_date"), c.Query("q"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load trips", err)
		return
	}

	waybillNos := make([]string, 0, len(trips))
	for _, t := range trips {
		waybillNos = append(waybillNos, t.WaybillNo)
	}
	dropsByTrip, err := dropsRepo.ListByWaybills(waybillNos)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load drops", err)
		return
	}
	unitRate, err := settingsRepo.GetExtraDropUnitRate()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load settings", err)
		return
	}

	out := make([]TripWithCalc, 0, len(trips))
	for _, t := range trips {
		drops := dropsByTrip[t.WaybillNo]
		row := TripWithCalc{
			Trip:                 t,
			Allocation:           waybill.Allocate(drops, t.AdditionalAdjustment, unitRate),
			TotalAmountFromDrops: waybill.TotalAmountFromDrops(drops),
		}
		if len(drops) > 0 {
			total := decimal.Zero
			for _, d := range drops {
				total = total.Add(d.CBM)
			}
			row.Capacity = waybill.CheckCapacity(t.TruckCBM, &total)
		}
		out = append(out, row)
	}

	c.JSON(http.StatusOK, out)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var t models.Trip
	if !BindJSONOrError(c, &t) {
		return
	}
	created, err := tripSvc.Create(t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/trips/:waybillNo
func GetTripDetail(c *gin.Context) {
	waybillNo := strings.TrimSpace(c.Param("waybillNo"))
	detail, err := tripSvc.Detail(c.Request.Context(), waybillNo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PUT /api/trips/:waybillNo
func UpdateTrip(c *gin.Context) {
	waybillNo := strings.TrimSpace(c.Param("waybillNo"))
	var t models.Trip
	if !BindJSONOrError(c, &t) {
		return
	}
	updated, err := tripSvc.UpdateMeta(waybillNo, t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/trips/:waybillNo
func DeleteTrip(c *gin.Context) {
	if err := tripSvc.Delete(strings.TrimSpace(c.Param("waybillNo"))); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// adjustmentPayload is shared by the two write-through endpoints. Seq is the
// client's issue counter for this trip's edit session; stale saves are
// discarded, not applied out of order.
type adjustmentPayload struct {
	Value decimal.Decimal `json:"value"`
	Seq   uint64          `json:"seq"`
}

type adjustmentResponse struct {
	Trip    models.Trip `json:"trip"`
	Applied bool        `json:"applied"`
}

// PUT /api/trips/:waybillNo/capacity
func UpdateTripCapacity(c *gin.Context) {
	waybillNo := strings.TrimSpace(c.Param("waybillNo"))
	var p adjustmentPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	trip, applied, err := tripSvc.UpdateTruckCBM(waybillNo, p.Value, p.Seq)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustmentResponse{Trip: trip, Applied: applied})
}

// PUT /api/trips/:waybillNo/adjustment
func UpdateTripAdjustment(c *gin.Context) {
	waybillNo := strings.TrimSpace(c.Param("waybillNo"))
	var p adjustmentPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	trip, applied, err := tripSvc.UpdateAdjustment(waybillNo, p.Value, p.Seq)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustmentResponse{Trip: trip, Applied: applied})
}

// GET /api/trips/:waybillNo/duplicate-status
func GetDuplicateStatus(c *gin.Context) {
	waybillNo := strings.TrimSpace(c.Param("waybillNo"))
	svc := duplicateService(c)
	status, err := svc.Status(c.Request.Context(), waybillNo)
	if err != nil {
		// fail-open: report editable rather than blocking the screen
		c.JSON(http.StatusOK, gin.H{"duplicated": false, "view_only": false, "degraded": true})
		return
	}
	c.JSON(http.StatusOK, status)
}
