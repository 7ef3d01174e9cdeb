package dtos

type HealthCheckResponse struct {
	Status    string `json:"status"`
	Buildings int    `json:"buildings_available"`
	Current   string `json:"current_building,omitempty"`
}
