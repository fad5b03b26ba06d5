package waybill

import "strings"

// labelDelimiter is the documented consignee label convention:
// "<EntityAbbreviation> - <StoreName>". Only the first occurrence counts.
const labelDelimiter = " - "

// internalWaypoint marks routing entries that must never reach reporting
// aggregates.
const internalWaypoint = "DC ILOILO"

// EntityAbbreviation parses the entity code out of a free-text consignee
// label: text before the first " - ", or the whole label when the delimiter
// is missing. Shared by drop derivation and sub-detail derivation so the
// convention lives in one place.
func EntityAbbreviation(label string) string {
	label = strings.TrimSpace(label)
	if abbr, _, found := strings.Cut(label, labelDelimiter); found {
		return strings.TrimSpace(abbr)
	}
	return label
}

// IsInternalWaypoint reports whether an entity abbreviation names the
// DC ILOILO routing waypoint, case-insensitively.
func IsInternalWaypoint(entityAbbr string) bool {
	return strings.Contains(strings.ToUpper(entityAbbr), internalWaypoint)
}
