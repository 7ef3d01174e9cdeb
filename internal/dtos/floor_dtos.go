package dtos

type FloorDTO struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	MapReference string `json:"map_reference"`
	Rooms        int    `json:"rooms"`
	Entrances    int    `json:"entrances"`
}

type ListFloorsResponse struct {
	Building string     `json:"building"`
	Results  []FloorDTO `json:"results"`
	Total    int        `json:"total"`
}

type FloorMapResponse struct {
	Floor        string `json:"floor"`
	MapReference string `json:"map_reference"`
}
