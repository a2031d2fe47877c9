package constants

// Flight data provider error codes

// Upstream transport errors
const (
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeUpstreamStatus    = "UPSTREAM_STATUS"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
)

// Lookup outcomes surfaced to the console and API
const (
	ErrCodeInvalidQuery   = "INVALID_QUERY"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodePartialData    = "PARTIAL_DATA"
	ErrCodeMissingContext = "MISSING_CONTEXT"
	ErrCodeNoWindData     = "NO_WIND_DATA"
)

// Fetch stages
const (
	StagePrimary   = "primary"
	StageSecondary = "secondary"
	StageSchema    = "schema"
	StageWeather   = "weather"
)

// Error Messages
// Human-readable messages corresponding to error codes

var DataProviderErrorMessages = map[string]string{
	// Transport
	ErrCodeNetworkError:      "Unable to reach the flight data service",
	ErrCodeUpstreamStatus:    "The flight data service returned an unexpected status",
	ErrCodeRateLimited:       "Rate limit exceeded. Please try again later",
	ErrCodeInvalidDataFormat: "The flight data service returned a malformed response",

	// Lookups
	ErrCodeInvalidQuery:   "Please enter a valid callsign and incident time.",
	ErrCodeFetchFailed:    "Error fetching flight plan or departure/arrival data.",
	ErrCodeNotFound:       "Flight plan not found for given callsign and time. Please try again.",
	ErrCodePartialData:    "No additional departure/arrival information found.",
	ErrCodeMissingContext: "Search for a flight plan before looking up runway weather.",
	ErrCodeNoWindData:     "No wind data found for the given runway and time.",
}

// stage-specific overrides, keyed by code then stage
var stageErrorMessages = map[string]map[string]string{
	ErrCodeFetchFailed: {
		StageSchema:  "Error fetching default schema.",
		StageWeather: "Error fetching runway weather data.",
	},
	ErrCodeInvalidQuery: {
		StageWeather: MsgInvalidRunwayQuery,
	},
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := DataProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

// GetStageErrorMessage is GetErrorMessage specialised for the stage that failed
func GetStageErrorMessage(code, stage string) string {
	if msg, ok := stageErrorMessages[code][stage]; ok {
		return msg
	}
	return GetErrorMessage(code)
}
