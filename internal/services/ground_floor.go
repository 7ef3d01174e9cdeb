package services

import "strings"

// GroundFloorPolicy decides which floors hold the building's main entrances.
// A floor qualifies if its name contains any token (case-insensitive) or
// equals one of Names exactly.
type GroundFloorPolicy struct {
	Tokens []string
	Names  []string
}

func DefaultGroundFloorPolicy() GroundFloorPolicy {
	return GroundFloorPolicy{
		Tokens: []string{"stue", "ground"},
		Names:  []string{"0"},
	}
}

func (p GroundFloorPolicy) IsGroundFloor(floorName string) bool {
	lower := strings.ToLower(floorName)
	for _, tok := range p.Tokens {
		if tok != "" && strings.Contains(lower, strings.ToLower(tok)) {
			return true
		}
	}
	for _, n := range p.Names {
		if floorName == n {
			return true
		}
	}
	return false
}
