package waybill

import (
	"github.com/shopspring/decimal"

	"hauling-backend/internal/domain/models"
)

// freeDropCount is how many stops the base rate already covers; every drop
// beyond it incurs the configured per-drop surcharge.
const freeDropCount = 2

var hundred = decimal.NewFromInt(100)

// Allocation is the effective billing math for one trip's current drop list.
type Allocation struct {
	HighestRate decimal.Decimal `json:"highestRate"`
	Surcharge   decimal.Decimal `json:"surcharge"`
	TotalRate   decimal.Decimal `json:"totalRate"`

	// PercentageSum is advisory: shares are allowed to exceed 100, they are
	// only flagged, never rejected.
	PercentageSum decimal.Decimal `json:"percentageSum"`
	OverAllocated bool            `json:"overAllocated"`
}

// Allocate computes the trip's effective billing rate from its live drop
// list. The contracted rate of the highest-value drop anchors the trip
// price; extra stops and the manual adjustment are additive, never
// multiplicative, matching how dispatch negotiates trip pricing.
// extraDropUnitRate is process-wide config fetched once per session and
// passed in so this stays a pure function.
func Allocate(drops []models.Drop, additionalAdjustment, extraDropUnitRate decimal.Decimal) Allocation {
	highest := decimal.Zero
	pctSum := decimal.Zero
	for _, d := range drops {
		if d.Rate.GreaterThan(highest) {
			highest = d.Rate
		}
		pctSum = pctSum.Add(d.Percentage)
	}

	surcharge := decimal.Zero
	if extra := len(drops) - freeDropCount; extra > 0 {
		surcharge = extraDropUnitRate.Mul(decimal.NewFromInt(int64(extra)))
	}

	return Allocation{
		HighestRate:   highest,
		Surcharge:     surcharge,
		TotalRate:     highest.Add(additionalAdjustment).Add(surcharge),
		PercentageSum: pctSum,
		OverAllocated: pctSum.GreaterThan(hundred),
	}
}

// TotalAmountFromDrops sums each drop's own proportional amount,
// rate * percentage / 100. This is what the consignee editing screen shows.
//
// TotalAmountFromRate below is the competing formula; which one is canonical
// is still with the product owner, so both stay exported and tested and no
// caller mixes them on one screen.
func TotalAmountFromDrops(drops []models.Drop) decimal.Decimal {
	total := decimal.Zero
	for _, d := range drops {
		total = total.Add(d.Rate.Mul(d.Percentage).Div(hundred))
	}
	return total.Round(2)
}

// TotalAmountFromRate distributes the consolidated trip rate over the
// aggregate percentage, totalRate * sum(percentages) / 100. This is what the
// trip header historically stored.
func TotalAmountFromRate(totalRate decimal.Decimal, drops []models.Drop) decimal.Decimal {
	pctSum := decimal.Zero
	for _, d := range drops {
		pctSum = pctSum.Add(d.Percentage)
	}
	return totalRate.Mul(pctSum).Div(hundred).Round(2)
}
