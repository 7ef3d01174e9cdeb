package models

// Room is a named, addressable space on a floor map. ID is stored in its
// canonical uppercase form; X and Y are fractions of the floor map's
// width and height.
type Room struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Entrance is a labelled way into the building drawn on a floor map.
type Entrance struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}
