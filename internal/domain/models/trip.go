package models

import "github.com/shopspring/decimal"

// Trip is a single truck dispatch (the waybill/shipper record). The waybill
// number is human-assigned by dispatch and is the business key everywhere;
// the numeric id only exists for the database.
type Trip struct {
	ID            int64  `json:"id"`
	WaybillNo     string `json:"waybillNo"`
	TripDate      string `json:"tripDate"` // YYYY-MM-DD
	PlateNo       string `json:"plateNo"`
	DriverName    string `json:"driverName"`
	PickupAddress string `json:"pickupAddress"`
	PreparedDate  string `json:"preparedDate"`
	BodyType      string `json:"bodyType"`
	Remarks       string `json:"remarks,omitempty"`

	// TruckCBM is editable at any time; nil means capacity was never captured
	// and the capacity check stays silent.
	TruckCBM *decimal.Decimal `json:"truckCbm,omitempty"`

	// AdditionalAdjustment is a per-trip manual surcharge; negative values
	// represent a discount.
	AdditionalAdjustment decimal.Decimal `json:"additionalAdjustment"`

	// Write-through targets kept in sync by TripService whenever truck_cbm or
	// additional_adjustment change.
	HighestRate decimal.Decimal `json:"highestRate"`
	TotalRate   decimal.Decimal `json:"totalRate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
