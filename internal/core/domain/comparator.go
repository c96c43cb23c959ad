package domain

import (
	"sort"
	"strings"
)

// SortKey names a player attribute the catalog can be ordered by.
type SortKey string

const (
	SortByID            SortKey = "id"
	SortByName          SortKey = "name"
	SortByAge           SortKey = "age"
	SortByPosition      SortKey = "position"
	SortByNationality   SortKey = "nationality"
	SortByOverallRating SortKey = "overallRating"
	SortByIsActive      SortKey = "isActive"
	SortByBirthDate     SortKey = "birthDate"
	SortByClub          SortKey = "club"
	SortByImageURL      SortKey = "imageURL"
)

// SortDirection is the requested ordering direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortKey normalizes a query-string attribute to a known SortKey.
// Unknown values fall back to name, matching the listing's default order.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByID, SortByName, SortByAge, SortByPosition, SortByNationality,
		SortByOverallRating, SortByIsActive, SortByBirthDate, SortByClub, SortByImageURL:
		return SortKey(s)
	default:
		return SortByName
	}
}

// ParseSortDirection maps "desc" to descending; everything else is ascending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(s, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// Compare orders two players by the given key and direction, returning
// -1, 0, or 1. A pair where either resolved attribute is empty compares as
// equal so a stable sort leaves its relative order untouched.
func Compare(a, b Player, key SortKey, dir SortDirection) int {
	c := compareAsc(a, b, key)
	if dir == SortDesc {
		return -c
	}
	return c
}

func compareAsc(a, b Player, key SortKey) int {
	switch key {
	case SortByAge:
		return compareInt(a.Age, b.Age)
	case SortByOverallRating:
		return compareInt(a.OverallRating, b.OverallRating)
	case SortByIsActive:
		return compareBool(a.IsActive, b.IsActive)
	default:
		return compareString(resolveString(a, key), resolveString(b, key))
	}
}

// resolveString yields the textual attribute for string-valued keys.
// The club key resolves to the club name, not the embedded object.
func resolveString(p Player, key SortKey) string {
	switch key {
	case SortByID:
		return p.ID
	case SortByName:
		return p.Name
	case SortByPosition:
		return p.Position
	case SortByNationality:
		return p.Nationality
	case SortByBirthDate:
		return p.BirthDate
	case SortByClub:
		return p.Club.Name
	case SortByImageURL:
		return p.ImageURL
	default:
		return p.Name
	}
}

func compareString(a, b string) int {
	// Missing values never reorder a pair.
	if a == "" || b == "" {
		return 0
	}
	return strings.Compare(a, b)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareBool treats false < true.
func compareBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return 1
	default:
		return 0
	}
}

// SortPlayers orders players in place with a stable sort: ties and lenient
// (empty-attribute) pairs keep their original relative order.
func SortPlayers(players []Player, key SortKey, dir SortDirection) {
	sort.SliceStable(players, func(i, j int) bool {
		return Compare(players[i], players[j], key, dir) < 0
	})
}
