package models

// Floor represents a level within a building, with its own map and
// normalized coordinate plane.
type Floor struct {
	Name         string     `json:"name"`
	MapReference string     `json:"map_reference"`
	Rooms        []Room     `json:"rooms"`
	Entrances    []Entrance `json:"entrances"`
}

// FloorDescriptor names a floor and where its map lives. It is catalog
// configuration, not loaded data.
type FloorDescriptor struct {
	Name         string `json:"name" yaml:"name"`
	MapReference string `json:"map" yaml:"map"`
}
