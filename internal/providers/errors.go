package providers

import "fmt"

// ProviderError describes a failed call to the flight data service
type ProviderError struct {
	Code     string
	Endpoint string
	Message  string
	Details  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
