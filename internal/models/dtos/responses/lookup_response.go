package responses

import (
	"sirms/console/internal/metobs"
	"sirms/console/internal/models/dtos"
	"sirms/console/internal/services"
)

// WeatherResponse is a runway weather report with the panels an operator
// console would show for it
type WeatherResponse struct {
	Report *dtos.WeatherReport          `json:"report"`
	Panels []services.ObservationPanel `json:"panels"`
}

type ParseObservationRequest struct {
	Raw string `json:"raw"`
}

// ParseObservationResponse carries the decoded pairs both as a map and in
// wire order
type ParseObservationResponse struct {
	Parsed dtos.ParsedObservation `json:"parsed"`
	Fields []metobs.Field         `json:"fields"`
}
