package waybill

import (
	"sort"

	"github.com/shopspring/decimal"

	"hauling-backend/internal/domain/models"
)

// EntityBreakdown is one resolved (entity, percentage, amount) tuple for a
// trip. The slice returned by ResolveEntities is the authoritative financial
// breakdown used by reporting.
type EntityBreakdown struct {
	EntityAbbr string          `json:"entityAbbr"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// ResolveEntities reconstructs the per-entity breakdown of one trip from the
// three redundant captures, in order of authority:
//
//  1. the external rollup, used verbatim when present;
//  2. failing that, a derivation grouping the trip's drops by the entity
//     abbreviation parsed from their consignee labels;
//  3. always, sub-details fill in entities the first two missed. Sub-details
//     are supplementary, never authoritative: this tier only appends, it
//     never overwrites or removes an entity already resolved.
//
// DC ILOILO waypoint entries are excluded at every tier. The result is
// sorted by percentage descending (ties by entity name) so repeated runs on
// the same snapshot give byte-identical output; reports re-derive this on
// every refresh instead of caching it.
func ResolveEntities(drops []models.Drop, rollups []models.EntityRollup, subDetails []models.SubDetail) []EntityBreakdown {
	resolved := []EntityBreakdown{}
	seen := map[string]bool{}

	if len(rollups) > 0 {
		for _, r := range rollups {
			if IsInternalWaypoint(r.EntityAbbr) {
				continue
			}
			resolved = append(resolved, EntityBreakdown{
				EntityAbbr: r.EntityAbbr,
				Percentage: r.TotalPercentage,
				Amount:     r.TotalAmount,
			})
			seen[r.EntityAbbr] = true
		}
	} else {
		for _, b := range deriveFromDrops(drops) {
			resolved = append(resolved, b)
			seen[b.EntityAbbr] = true
		}
	}

	for _, b := range deriveFromSubDetails(subDetails) {
		if seen[b.EntityAbbr] {
			continue
		}
		resolved = append(resolved, b)
		seen[b.EntityAbbr] = true
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		if c := resolved[i].Percentage.Cmp(resolved[j].Percentage); c != 0 {
			return c > 0
		}
		return resolved[i].EntityAbbr < resolved[j].EntityAbbr
	})
	return resolved
}

func deriveFromDrops(drops []models.Drop) []EntityBreakdown {
	return accumulate(len(drops), func(i int) (string, decimal.Decimal, decimal.Decimal) {
		d := drops[i]
		return EntityAbbreviation(d.ConsigneeLabel), d.Percentage, d.Amount
	})
}

func deriveFromSubDetails(subDetails []models.SubDetail) []EntityBreakdown {
	return accumulate(len(subDetails), func(i int) (string, decimal.Decimal, decimal.Decimal) {
		sd := subDetails[i]
		return EntityAbbreviation(sd.ConsigneeLabel), sd.Percentage, sd.Amount
	})
}

// accumulate groups n records by entity abbreviation, summing percentage and
// amount, preserving first-seen order so derivation stays deterministic
// before the final sort.
func accumulate(n int, at func(i int) (abbr string, pct, amount decimal.Decimal)) []EntityBreakdown {
	order := []string{}
	groups := map[string]*EntityBreakdown{}
	for i := 0; i < n; i++ {
		abbr, pct, amount := at(i)
		if abbr == "" || IsInternalWaypoint(abbr) {
			continue
		}
		g, ok := groups[abbr]
		if !ok {
			g = &EntityBreakdown{EntityAbbr: abbr, Percentage: decimal.Zero, Amount: decimal.Zero}
			groups[abbr] = g
			order = append(order, abbr)
		}
		g.Percentage = g.Percentage.Add(pct)
		g.Amount = g.Amount.Add(amount)
	}

	out := make([]EntityBreakdown, 0, len(order))
	for _, abbr := range order {
		out = append(out, *groups[abbr])
	}
	return out
}

// BreakdownTotal sums resolved amounts for one trip.
func BreakdownTotal(breakdown []EntityBreakdown) decimal.Decimal {
	total := decimal.Zero
	for _, b := range breakdown {
		total = total.Add(b.Amount)
	}
	return total
}

// ReconcileDivergence compares the resolved breakdown total against the sum
// of recorded drop amounts. Trips diverging beyond tolerance used to get
// hard-coded data patches; they are now surfaced for manual review instead.
// Returns the absolute difference and whether it exceeds tolerance.
func ReconcileDivergence(breakdown []EntityBreakdown, drops []models.Drop, tolerance decimal.Decimal) (decimal.Decimal, bool) {
	recorded := decimal.Zero
	for _, d := range drops {
		if IsInternalWaypoint(EntityAbbreviation(d.ConsigneeLabel)) {
			continue
		}
		recorded = recorded.Add(d.Amount)
	}
	diff := BreakdownTotal(breakdown).Sub(recorded).Abs()
	return diff, diff.GreaterThan(tolerance)
}
