package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"hauling-backend/internal/domain"
	"hauling-backend/internal/domain/models"
	"hauling-backend/internal/repositories"
	"hauling-backend/internal/utils"
	"hauling-backend/internal/waybill"
)

// DropService owns consignee entries. Every write is gated by the duplicate
// guard; the capacity result that comes back is advisory only and never
// blocks the write.
type DropService struct {
	DropsRepo    repositories.DropsRepository
	TripsRepo    repositories.TripsRepository
	SettingsRepo repositories.SettingsRepository
	Guard        DuplicateGuard
	RequestID    string
}

// DropWriteResult carries the written drop plus the recomputed advisory
// state for the edit screen.
type DropWriteResult struct {
	Drop       models.Drop           `json:"drop"`
	Capacity   waybill.CapacityCheck `json:"capacity"`
	Allocation waybill.Allocation    `json:"allocation"`
}

func (s DropService) Create(ctx context.Context, d models.Drop) (DropWriteResult, error) {
	d.WaybillNo = strings.TrimSpace(d.WaybillNo)
	d.ConsigneeLabel = utils.NormalizeSpace(d.ConsigneeLabel)
	if d.ConsigneeLabel == "" {
		return DropWriteResult{}, domain.ValidationError{Field: "consigneeLabel", Msg: "required"}
	}
	if d.DropType != models.DropTypeDC && d.DropType != models.DropTypeStore {
		d.DropType = models.DropTypeStore
	}

	trip, err := s.TripsRepo.GetByWaybillNo(d.WaybillNo)
	if err != nil {
		return DropWriteResult{}, err
	}
	if err := s.requireEditable(ctx, d.WaybillNo); err != nil {
		return DropWriteResult{}, err
	}

	created, err := s.DropsRepo.Create(d)
	if err != nil {
		return DropWriteResult{}, domain.PersistenceError{Op: "drop create", Err: err}
	}
	utils.LogEvent(s.RequestID, "drops", "create", fmt.Sprintf("waybill_no=%s drop_id=%d", d.WaybillNo, created.ID))
	return s.advisory(trip, created)
}

func (s DropService) Update(ctx context.Context, id int64, d models.Drop) (DropWriteResult, error) {
	existing, err := s.DropsRepo.GetByID(id)
	if err != nil {
		return DropWriteResult{}, err
	}
	if err := s.requireEditable(ctx, existing.WaybillNo); err != nil {
		return DropWriteResult{}, err
	}

	d.WaybillNo = existing.WaybillNo
	d.ConsigneeLabel = utils.NormalizeSpace(d.ConsigneeLabel)
	if d.ConsigneeLabel == "" {
		return DropWriteResult{}, domain.ValidationError{Field: "consigneeLabel", Msg: "required"}
	}
	if err := s.DropsRepo.Update(id, d); err != nil {
		return DropWriteResult{}, domain.PersistenceError{Op: "drop update", Err: err}
	}
	d.ID = id

	trip, err := s.TripsRepo.GetByWaybillNo(existing.WaybillNo)
	if err != nil {
		return DropWriteResult{}, err
	}
	utils.LogEvent(s.RequestID, "drops", "update", fmt.Sprintf("waybill_no=%s drop_id=%d", existing.WaybillNo, id))
	return s.advisory(trip, d)
}

// Delete removes a drop and returns the trip's refreshed capacity advisory;
// removing a stop can clear an overflow badge.
func (s DropService) Delete(ctx context.Context, id int64) (waybill.CapacityCheck, error) {
	existing, err := s.DropsRepo.GetByID(id)
	if err != nil {
		return waybill.CapacityCheck{}, err
	}
	if err := s.requireEditable(ctx, existing.WaybillNo); err != nil {
		return waybill.CapacityCheck{}, err
	}
	if err := s.DropsRepo.Delete(id); err != nil {
		return waybill.CapacityCheck{}, err
	}
	utils.LogEvent(s.RequestID, "drops", "delete", fmt.Sprintf("waybill_no=%s drop_id=%d", existing.WaybillNo, id))

	trip, err := s.TripsRepo.GetByWaybillNo(existing.WaybillNo)
	if err != nil {
		return waybill.CapacityCheck{}, nil
	}
	total, err := s.DropsRepo.TotalCBM(existing.WaybillNo)
	if err != nil {
		return waybill.CapacityCheck{}, nil
	}
	return waybill.CheckCapacity(trip.TruckCBM, total), nil
}

func (s DropService) requireEditable(ctx context.Context, waybillNo string) error {
	if s.Guard == nil {
		return nil
	}
	if s.Guard.IsReadOnly(ctx, waybillNo) {
		return domain.ConflictError{Resource: "trip", Msg: "flagged as duplicate, consignee data is view-only"}
	}
	return nil
}

// advisory recomputes the edit-screen badges after a write. Overflow never
// rolls the write back.
func (s DropService) advisory(trip models.Trip, written models.Drop) (DropWriteResult, error) {
	out := DropWriteResult{Drop: written}

	drops, err := s.DropsRepo.ListByWaybill(trip.WaybillNo)
	if err != nil {
		// the write itself succeeded; a failed refresh is not an error
		return out, nil
	}

	if len(drops) > 0 {
		total := decimal.Zero
		for _, d := range drops {
			total = total.Add(d.CBM)
		}
		out.Capacity = waybill.CheckCapacity(trip.TruckCBM, &total)
	}

	unitRate, err := s.SettingsRepo.GetExtraDropUnitRate()
	if err != nil {
		return out, nil
	}
	out.Allocation = waybill.Allocate(drops, trip.AdditionalAdjustment, unitRate)
	return out, nil
}
