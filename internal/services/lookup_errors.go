package services

import (
	"errors"
	"fmt"

	"sirms/console/internal/constants"
)

// LookupError is returned by every core lookup. Match it with errors.Is
// against the sentinels below; Stage names the fetch that failed.
type LookupError struct {
	Code    string
	Stage   string
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = constants.GetErrorMessage(e.Code)
	}
	if e.Stage != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Stage)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is matches on Code so that errors.Is(err, ErrNotFound) works for any stage
func (e *LookupError) Is(target error) bool {
	t, ok := target.(*LookupError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Notice is the operator-facing text for this error
func (e *LookupError) Notice() string {
	return constants.GetStageErrorMessage(e.Code, e.Stage)
}

var (
	ErrInvalidQuery   = &LookupError{Code: constants.ErrCodeInvalidQuery}
	ErrFetchFailed    = &LookupError{Code: constants.ErrCodeFetchFailed}
	ErrNotFound       = &LookupError{Code: constants.ErrCodeNotFound}
	ErrPartialData    = &LookupError{Code: constants.ErrCodePartialData}
	ErrMissingContext = &LookupError{Code: constants.ErrCodeMissingContext}
	ErrNoWindData     = &LookupError{Code: constants.ErrCodeNoWindData}
)

func lookupErr(code, stage, message string, err error) *LookupError {
	return &LookupError{Code: code, Stage: stage, Message: message, Err: err}
}

// RecordUsable reports whether a lookup that returned err still produced a
// valid flight plan: the departure/arrival stage was unavailable or failed
// after the primary fetch succeeded.
func RecordUsable(err error) bool {
	var le *LookupError
	if !errors.As(err, &le) {
		return false
	}
	switch le.Code {
	case constants.ErrCodePartialData:
		return true
	case constants.ErrCodeFetchFailed:
		return le.Stage == constants.StageSecondary
	}
	return false
}

// ErrorCode extracts the lookup code from err, or "" when err is not a LookupError
func ErrorCode(err error) string {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
