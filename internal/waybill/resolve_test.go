package waybill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauling-backend/internal/domain/models"
)

func TestEntityAbbreviation(t *testing.T) {
	for label, want := range map[string]string{
		"ACME - StoreX":             "ACME",
		"ACME - Store - With Dash":  "ACME",
		"NODELIM":                   "NODELIM",
		"  BETA - StoreZ  ":         "BETA",
		"GAMMA-NoSpacedDelim":       "GAMMA-NoSpacedDelim",
		"":                          "",
	} {
		assert.Equal(t, want, EntityAbbreviation(label), "label %q", label)
	}
}

func TestIsInternalWaypoint(t *testing.T) {
	assert.True(t, IsInternalWaypoint("DC ILOILO"))
	assert.True(t, IsInternalWaypoint("dc iloilo"))
	assert.True(t, IsInternalWaypoint("GAISANO DC ILOILO HUB"))
	assert.False(t, IsInternalWaypoint("ILOILO"))
	assert.False(t, IsInternalWaypoint("ACME"))
}

func TestResolveEntitiesDirectRollup(t *testing.T) {
	rollups := []models.EntityRollup{
		{EntityAbbr: "BETA", TotalPercentage: dec("30"), TotalAmount: dec("3000")},
		{EntityAbbr: "ACME", TotalPercentage: dec("70"), TotalAmount: dec("7000")},
	}
	// drops are present but tier 1 wins
	drops := []models.Drop{{ConsigneeLabel: "OTHER - Store", Percentage: dec("100"), Amount: dec("999")}}

	got := ResolveEntities(drops, rollups, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "ACME", got[0].EntityAbbr)
	assert.Equal(t, "BETA", got[1].EntityAbbr)
	assert.Equal(t, "7000", got[0].Amount.String())
}

func TestResolveEntitiesDerivedFromDrops(t *testing.T) {
	// no rollup: ACME StoreX(30) + StoreY(20), plus a sub-detail only BETA
	drops := []models.Drop{
		{ConsigneeLabel: "ACME - StoreX", Percentage: dec("30"), Amount: dec("300")},
		{ConsigneeLabel: "ACME - StoreY", Percentage: dec("20"), Amount: dec("200")},
	}
	subDetails := []models.SubDetail{
		{ConsigneeLabel: "BETA - StoreZ", Amount: dec("500"), Percentage: dec("10")},
	}

	got := ResolveEntities(drops, nil, subDetails)
	require.Len(t, got, 2)

	assert.Equal(t, "ACME", got[0].EntityAbbr)
	assert.Equal(t, "50", got[0].Percentage.String())
	assert.Equal(t, "500", got[0].Amount.String())

	assert.Equal(t, "BETA", got[1].EntityAbbr)
	assert.Equal(t, "10", got[1].Percentage.String())
	assert.Equal(t, "500", got[1].Amount.String())
}

func TestResolveEntitiesSubDetailNeverOverwrites(t *testing.T) {
	rollups := []models.EntityRollup{
		{EntityAbbr: "ACME", TotalPercentage: dec("60"), TotalAmount: dec("6000")},
	}
	subDetails := []models.SubDetail{
		// ACME exists already: must not change it
		{ConsigneeLabel: "ACME - StoreX", Amount: dec("1"), Percentage: dec("1")},
		{ConsigneeLabel: "BETA - StoreZ", Amount: dec("400"), Percentage: dec("40")},
	}

	got := ResolveEntities(nil, rollups, subDetails)
	require.Len(t, got, 2)
	assert.Equal(t, "6000", got[0].Amount.String(), "rollup value stays authoritative")
	assert.Equal(t, "BETA", got[1].EntityAbbr)
}

func TestResolveEntitiesSubDetailCompleteness(t *testing.T) {
	// every entity present in sub-details must appear in the final breakdown
	subDetails := []models.SubDetail{
		{ConsigneeLabel: "ACME - A", Amount: dec("10"), Percentage: dec("5")},
		{ConsigneeLabel: "BETA - B", Amount: dec("20"), Percentage: dec("15")},
		{ConsigneeLabel: "GAMMA - C", Amount: dec("30"), Percentage: dec("25")},
	}
	got := ResolveEntities(nil, nil, subDetails)

	entities := map[string]bool{}
	for _, b := range got {
		entities[b.EntityAbbr] = true
	}
	for _, want := range []string{"ACME", "BETA", "GAMMA"} {
		assert.True(t, entities[want], "missing %s", want)
	}
}

func TestResolveEntitiesExcludesInternalWaypoint(t *testing.T) {
	rollups := []models.EntityRollup{
		{EntityAbbr: "DC ILOILO", TotalPercentage: dec("40"), TotalAmount: dec("4000")},
		{EntityAbbr: "ACME", TotalPercentage: dec("60"), TotalAmount: dec("6000")},
	}
	drops := []models.Drop{
		{ConsigneeLabel: "DC ILOILO - Hub", Percentage: dec("40"), Amount: dec("4000")},
	}
	subDetails := []models.SubDetail{
		{ConsigneeLabel: "DC ILOILO - Hub", Amount: dec("4000"), Percentage: dec("40")},
	}

	got := ResolveEntities(drops, rollups, subDetails)
	require.Len(t, got, 1)
	assert.Equal(t, "ACME", got[0].EntityAbbr)
	assert.Equal(t, "6000", BreakdownTotal(got).String())
}

func TestResolveEntitiesIdempotent(t *testing.T) {
	drops := []models.Drop{
		{ConsigneeLabel: "ACME - StoreX", Percentage: dec("30"), Amount: dec("300")},
		{ConsigneeLabel: "ZETA - StoreQ", Percentage: dec("30"), Amount: dec("290")},
		{ConsigneeLabel: "BETA - StoreY", Percentage: dec("40"), Amount: dec("410")},
	}
	subDetails := []models.SubDetail{
		{ConsigneeLabel: "ETA - StoreW", Amount: dec("90"), Percentage: dec("9")},
	}

	first := ResolveEntities(drops, nil, subDetails)
	second := ResolveEntities(drops, nil, subDetails)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].EntityAbbr, second[i].EntityAbbr)
		assert.True(t, first[i].Percentage.Equal(second[i].Percentage))
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
	}

	// equal percentages (ACME/ZETA both 30) must order deterministically
	assert.Equal(t, "BETA", first[0].EntityAbbr)
	assert.Equal(t, "ACME", first[1].EntityAbbr)
	assert.Equal(t, "ZETA", first[2].EntityAbbr)
	assert.Equal(t, "ETA", first[3].EntityAbbr)
}

func TestReconcileDivergence(t *testing.T) {
	drops := []models.Drop{
		{ConsigneeLabel: "ACME - StoreX", Percentage: dec("60"), Amount: dec("600")},
		{ConsigneeLabel: "BETA - StoreY", Percentage: dec("40"), Amount: dec("400")},
	}

	clean := ResolveEntities(drops, nil, nil)
	diff, flagged := ReconcileDivergence(clean, drops, dec("1"))
	assert.True(t, diff.IsZero())
	assert.False(t, flagged)

	// a rollup patched out of line with recorded amounts gets flagged
	patched := []models.EntityRollup{
		{EntityAbbr: "ACME", TotalPercentage: dec("100"), TotalAmount: dec("1500")},
	}
	resolved := ResolveEntities(drops, patched, nil)
	diff, flagged = ReconcileDivergence(resolved, drops, dec("1"))
	assert.Equal(t, "500", diff.String())
	assert.True(t, flagged)
}

func TestBreakdownTotal(t *testing.T) {
	got := BreakdownTotal([]EntityBreakdown{
		{EntityAbbr: "A", Amount: dec("10.50")},
		{EntityAbbr: "B", Amount: dec("4.50")},
	})
	assert.True(t, got.Equal(decimal.RequireFromString("15")))
}
