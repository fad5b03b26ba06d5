package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"hauling-backend/internal/domain"
	"hauling-backend/internal/domain/models"
	"hauling-backend/internal/repositories"
	"hauling-backend/internal/utils"
	"hauling-backend/internal/waybill"
)

// TripService owns the dispatch edit path: trip CRUD plus the write-through
// of truck capacity and manual adjustment. Pointer receivers because the
// service carries per-trip locks.
type TripService struct {
	TripsRepo    repositories.TripsRepository
	DropsRepo    repositories.DropsRepository
	SettingsRepo repositories.SettingsRepository
	Guard        DuplicateGuard
	RequestID    string

	mu    sync.Mutex
	locks map[string]*tripLock
}

// tripLock serializes write-throughs for one waybill and remembers the
// newest client sequence so a slow save that was superseded gets discarded.
// Per-trip on purpose: editing trip A never blocks trip B.
type tripLock struct {
	mu      sync.Mutex
	lastSeq uint64
}

func (s *TripService) lockFor(waybillNo string) *tripLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = map[string]*tripLock{}
	}
	lk, ok := s.locks[waybillNo]
	if !ok {
		lk = &tripLock{}
		s.locks[waybillNo] = lk
	}
	return lk
}

// TripDetail is the edit-screen payload: the trip with its live drop list
// and everything the screen derives from it.
type TripDetail struct {
	Trip  models.Trip   `json:"trip"`
	Drops []models.Drop `json:"drops"`

	Capacity   waybill.CapacityCheck `json:"capacity"`
	Allocation waybill.Allocation    `json:"allocation"`

	// Both total-amount formulas are exposed side by side until one is
	// designated canonical; see waybill.TotalAmountFromDrops.
	TotalAmountFromDrops decimal.Decimal `json:"totalAmountFromDrops"`
	TotalAmountFromRate  decimal.Decimal `json:"totalAmountFromRate"`

	ReadOnly bool `json:"readOnly"`
}

func (s *TripService) Detail(ctx context.Context, waybillNo string) (TripDetail, error) {
	trip, err := s.TripsRepo.GetByWaybillNo(waybillNo)
	if err != nil {
		return TripDetail{}, err
	}
	drops, err := s.DropsRepo.ListByWaybill(waybillNo)
	if err != nil {
		return TripDetail{}, err
	}
	unitRate, err := s.SettingsRepo.GetExtraDropUnitRate()
	if err != nil {
		return TripDetail{}, err
	}

	detail := TripDetail{Trip: trip, Drops: drops}
	detail.Allocation = waybill.Allocate(drops, trip.AdditionalAdjustment, unitRate)
	detail.TotalAmountFromDrops = waybill.TotalAmountFromDrops(drops)
	detail.TotalAmountFromRate = waybill.TotalAmountFromRate(detail.Allocation.TotalRate, drops)

	if len(drops) > 0 {
		total := decimal.Zero
		for _, d := range drops {
			total = total.Add(d.CBM)
		}
		detail.Capacity = waybill.CheckCapacity(trip.TruckCBM, &total)
	}

	if s.Guard != nil {
		detail.ReadOnly = s.Guard.IsReadOnly(ctx, waybillNo)
	}
	return detail, nil
}

func (s *TripService) Create(t models.Trip) (models.Trip, error) {
	t.WaybillNo = strings.TrimSpace(t.WaybillNo)
	if t.WaybillNo == "" {
		return models.Trip{}, domain.ValidationError{Field: "waybillNo", Msg: "required"}
	}
	if t.TruckCBM != nil && !t.TruckCBM.IsPositive() {
		return models.Trip{}, domain.ValidationError{Field: "truckCbm", Msg: "must be greater than zero"}
	}
	if err := validTripDates(t); err != nil {
		return models.Trip{}, err
	}

	created, err := s.TripsRepo.Create(t)
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "create", "waybill_no="+created.WaybillNo)
	return created, nil
}

// validTripDates checks the plain-date fields that arrive as strings.
// Empty is fine, the columns are nullable.
func validTripDates(t models.Trip) error {
	for field, v := range map[string]string{"tripDate": t.TripDate, "preparedDate": t.PreparedDate} {
		if v == "" {
			continue
		}
		if _, err := utils.ParseDate(v); err != nil {
			return domain.ValidationError{Field: field, Msg: "must be YYYY-MM-DD", Err: err}
		}
	}
	return nil
}

func (s *TripService) UpdateMeta(waybillNo string, t models.Trip) (models.Trip, error) {
	if err := validTripDates(t); err != nil {
		return models.Trip{}, err
	}
	existing, err := s.TripsRepo.GetByWaybillNo(waybillNo)
	if err != nil {
		return models.Trip{}, err
	}
	if err := s.TripsRepo.UpdateMeta(waybillNo, t); err != nil {
		return existing, domain.PersistenceError{Op: "trip meta", Err: err}
	}
	return s.TripsRepo.GetByWaybillNo(waybillNo)
}

func (s *TripService) Delete(waybillNo string) error {
	if err := s.TripsRepo.Delete(waybillNo); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trips", "delete", "waybill_no="+waybillNo)
	return nil
}

// UpdateTruckCBM write-throughs a capacity edit: validate, recompute the
// allocation outputs against the live drop list, persist everything in one
// statement. seq is the client's issue counter for this trip; a save whose
// seq is older than one already applied is discarded (last write wins by
// issue order, not response order). seq 0 opts out of the guard.
//
// Returns the persisted trip and whether this save was applied. On a
// persistence failure the last-known-good trip comes back with the error so
// the caller can revert the field.
func (s *TripService) UpdateTruckCBM(waybillNo string, value decimal.Decimal, seq uint64) (models.Trip, bool, error) {
	if !value.IsPositive() {
		return models.Trip{}, false, domain.ValidationError{Field: "truckCbm", Msg: "must be a number greater than zero"}
	}
	return s.writeThrough(waybillNo, seq, "truck_cbm", func(t models.Trip) models.Trip {
		t.TruckCBM = &value
		return t
	})
}

// UpdateAdjustment write-throughs the manual adjustment. Any numeric value
// is allowed; a negative adjustment is a discount.
func (s *TripService) UpdateAdjustment(waybillNo string, value decimal.Decimal, seq uint64) (models.Trip, bool, error) {
	return s.writeThrough(waybillNo, seq, "additional_adjustment", func(t models.Trip) models.Trip {
		t.AdditionalAdjustment = value
		return t
	})
}

func (s *TripService) writeThrough(waybillNo string, seq uint64, op string, apply func(models.Trip) models.Trip) (models.Trip, bool, error) {
	lk := s.lockFor(waybillNo)
	lk.mu.Lock()
	defer lk.mu.Unlock()

	trip, err := s.TripsRepo.GetByWaybillNo(waybillNo)
	if err != nil {
		return models.Trip{}, false, err
	}

	if seq != 0 && seq <= lk.lastSeq {
		// superseded by a newer edit that already landed; discard silently
		utils.LogEvent(s.RequestID, "trips", "write_through_stale", fmt.Sprintf("waybill_no=%s op=%s seq=%d", waybillNo, op, seq))
		return trip, false, nil
	}
	if seq != 0 {
		lk.lastSeq = seq
	}

	drops, err := s.DropsRepo.ListByWaybill(waybillNo)
	if err != nil {
		return trip, false, domain.SourceUnavailableError{Source: "drops", Err: err}
	}
	unitRate, err := s.SettingsRepo.GetExtraDropUnitRate()
	if err != nil {
		return trip, false, domain.SourceUnavailableError{Source: "settings", Err: err}
	}

	updated := apply(trip)
	alloc := waybill.Allocate(drops, updated.AdditionalAdjustment, unitRate)
	updated.HighestRate = alloc.HighestRate
	updated.TotalRate = alloc.TotalRate
	// the header stores the per-drop formula; see TripDetail for both
	updated.TotalAmount = waybill.TotalAmountFromDrops(drops)

	if err := s.TripsRepo.UpdateAllocation(
		waybillNo, updated.TruckCBM, updated.AdditionalAdjustment,
		updated.HighestRate, updated.TotalRate, updated.TotalAmount,
	); err != nil {
		// hand back the pre-edit trip so the UI can revert the field
		return trip, false, domain.PersistenceError{Op: op, Err: err}
	}

	utils.LogEvent(s.RequestID, "trips", "write_through", fmt.Sprintf("waybill_no=%s op=%s seq=%d", waybillNo, op, seq))
	return updated, true, nil
}
