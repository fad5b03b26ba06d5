package waybill

import "github.com/shopspring/decimal"

// CapacityCheck is the advisory result of comparing aggregate drop volume
// against truck capacity.
type CapacityCheck struct {
	Overflow bool            `json:"overflow"`
	Excess   decimal.Decimal `json:"excess"`
}

// CheckCapacity compares total drop volume against truck capacity. Either
// side nil means the data was never captured and no warning is raised.
//
// Capacity is a soft business constraint: overloaded trips happen in the real
// world and must still be recorded, so this result is surfaced as a warning
// badge and MUST NOT be used to reject a drop write.
func CheckCapacity(truckCBM, totalDropCBM *decimal.Decimal) CapacityCheck {
	if truckCBM == nil || totalDropCBM == nil {
		return CapacityCheck{Overflow: false, Excess: decimal.Zero}
	}
	excess := totalDropCBM.Sub(*truckCBM).Round(2)
	if !excess.IsPositive() {
		// under capacity is not a finding; keep the payload at zero
		return CapacityCheck{Overflow: false, Excess: decimal.Zero}
	}
	return CapacityCheck{Overflow: true, Excess: excess}
}
