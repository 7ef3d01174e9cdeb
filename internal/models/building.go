package models

// Building is the loaded view of one catalog entry: its floors keyed by
// name, with FloorOrder preserving load order.
type Building struct {
	Name       string            `json:"name"`
	Floors     map[string]*Floor `json:"floors"`
	FloorOrder []string          `json:"floor_order"`
}

// BuildingDescriptor is one entry of the building catalog configuration.
type BuildingDescriptor struct {
	Name      string            `json:"name" yaml:"name"`
	Latitude  float64           `json:"latitude,omitempty" yaml:"latitude"`
	Longitude float64           `json:"longitude,omitempty" yaml:"longitude"`
	Floors    []FloorDescriptor `json:"floors" yaml:"floors"`
}

// HasLocation reports whether the descriptor carries geographic coordinates.
func (b *BuildingDescriptor) HasLocation() bool {
	return b.Latitude != 0 || b.Longitude != 0
}
