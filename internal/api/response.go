package api

import (
	"encoding/json"
	"net/http"
	"time"

	"sirms/console/internal/constants"
	"sirms/console/internal/models/dtos/responses"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	respondWithWarning(w, statusCode, data, "", "")
}

// respondWithWarning is a success response that still carries an outcome
// code, used when a lookup returned usable but incomplete data
func respondWithWarning[T any](w http.ResponseWriter, statusCode int, data *T, code, warning string) {
	resp := responses.APIResponse[T]{
		Status:    string(constants.APIStatusOk),
		Timestamp: time.Now().UTC(),
		Code:      code,
		Warning:   warning,
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	resp := responses.APIResponse[any]{
		Status:    string(constants.APIStatusError),
		Timestamp: time.Now().UTC(),
		Code:      code,
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}
