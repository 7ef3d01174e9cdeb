package extraction

import (
	"regexp"
	"strings"
)

var (
	areaMeasurement = regexp.MustCompile(`(?i)^\d+\.\d+m2$`)
	metadataLabel   = regexp.MustCompile(`(?i)^(Area|Type|Room \d+\.\d+m2):`)
	longDecimal     = regexp.MustCompile(`^\d+\.\d+$`)
	pageProperty    = regexp.MustCompile(`(?i)^(width|height|scale|rotation|metadata|properties)$`)
	numbersAndDots  = regexp.MustCompile(`^[\d.]+$`)

	roomPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^[A-Z0-9]{1,4}[-._][A-Z0-9]{1,4}`), // PH-D1, A-01
		regexp.MustCompile(`^\d{2}_\d{2}$`),                        // 01_02
		regexp.MustCompile(`(?i)^[A-Z]\.\d\.\d{2}$`),               // A.1.01
		regexp.MustCompile(`(?i)^PH-D\d+\.?\d*_?\d*$`),             // PH-D1.11_01
		regexp.MustCompile(`(?i)^[A-Z]{1,2}\d{2,4}$`),              // A101, AB123
		regexp.MustCompile(`(?i)^\d{2,4}[A-Z]?$`),                  // 101, 202A
		regexp.MustCompile(`(?i)^[A-Z0-9]{2,8}$`),
	}
	looseRoom = regexp.MustCompile(`(?i)^[A-Z0-9.\-_]{2,10}$`)
)

// entranceMarkers are matched case-insensitively as substrings.
var entranceMarkers = []string{"indgang", "entrance"}

// IsRoomText reports whether a text span on a floor map looks like a room
// identifier rather than an area measurement or page metadata.
func IsRoomText(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if areaMeasurement.MatchString(text) || metadataLabel.MatchString(text) || pageProperty.MatchString(text) {
		return false
	}
	if longDecimal.MatchString(text) && len(text) > 6 {
		return false
	}

	for _, re := range roomPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return looseRoom.MatchString(text) && !numbersAndDots.MatchString(text)
}

// IsEntranceText reports whether a text span labels an entrance.
func IsEntranceText(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range entranceMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
