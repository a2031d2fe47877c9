package constants

const (
	MsgFlightLoaded       = "Flight plan loaded"
	MsgSchemaLoading      = "Loading default schema..."
	MsgWeatherLoaded      = "Runway weather loaded"
	MsgNoHomeLeg          = "Flight neither departs from nor arrives at the home aerodrome; no runway position shown."
	MsgConsoleReset       = "Console cleared"
	MsgInvalidRunwayQuery = "Please enter a runway and incident time."
)
