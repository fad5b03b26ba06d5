package models

import "github.com/shopspring/decimal"

// EntityRollup is the per-trip, per-entity aggregate produced by an external
// process. It is a read-only input here and may be absent or incomplete for
// any given trip.
type EntityRollup struct {
	WaybillNo       string          `json:"waybillNo"`
	EntityAbbr      string          `json:"entityAbbr"`
	TotalPercentage decimal.Decimal `json:"totalPercentage"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`

	// SplitFlag marks a trip whose revenue is intentionally split across
	// entities.
	SplitFlag bool `json:"splitFlag"`
}

// SubDetail is itemized per-store financial data, finer grained than a
// rollup. Also external and read-only; may exist when the rollup does not.
type SubDetail struct {
	WaybillNo      string          `json:"waybillNo"`
	ConsigneeLabel string          `json:"consigneeLabel"`
	StoreName      string          `json:"storeName"`
	Amount         decimal.Decimal `json:"amount"`
	Percentage     decimal.Decimal `json:"percentage"`
}

// DuplicateStatus is the answer from the external duplicate-detection
// service for one waybill.
type DuplicateStatus struct {
	Duplicated bool `json:"duplicated"`
	ViewOnly   bool `json:"view_only"`
}
