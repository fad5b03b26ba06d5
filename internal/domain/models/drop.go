package models

import "github.com/shopspring/decimal"

const (
	DropTypeDC    = "DC"
	DropTypeStore = "Store"
)

// Drop is one consignee stop on a trip. ConsigneeLabel is free text following
// the "<EntityAbbreviation> - <StoreName>" convention; the abbreviation is
// parsed out by the waybill package, never stored separately.
type Drop struct {
	ID             int64  `json:"id"`
	WaybillNo      string `json:"waybillNo"`
	ConsigneeLabel string `json:"consigneeLabel"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`

	// Rate is the store's contracted rate; Percentage its share of the trip
	// (0-100, not hard-capped); CBM the cargo volume. Percentage and CBM are
	// independent inputs, one feeds allocation and the other the capacity
	// check.
	Rate       decimal.Decimal `json:"rate"`
	Percentage decimal.Decimal `json:"percentage"`
	CBM        decimal.Decimal `json:"cbm"`

	// Amount is the recorded consignee-level amount used by reporting. It may
	// legitimately diverge from the live rate-allocation preview.
	Amount decimal.Decimal `json:"amount"`

	DropType      string `json:"dropType"` // DC | Store
	HasSubDetails bool   `json:"hasSubDetails"`
}
