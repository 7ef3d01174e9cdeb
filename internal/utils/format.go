package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatBuildingName capitalizes the first letter of a catalog building name.
func FormatBuildingName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// FormatFloorName turns catalog floor names into their Danish display form:
// "stue" -> "Stueetage", "2_sal" -> "2. sal". Anything else is returned as is.
func FormatFloorName(floor string) string {
	if floor == "stue" {
		return "Stueetage"
	}
	if strings.Contains(floor, "_sal") {
		return strings.Replace(floor, "_sal", ". sal", 1)
	}
	return floor
}
