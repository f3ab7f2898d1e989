package gps

import (
	"errors"
	"fmt"
)

// ErrorCode код ошибки провайдера геолокации
type ErrorCode string

const (
	CodePermissionDenied ErrorCode = "permission_denied"
	CodeUnavailable      ErrorCode = "unavailable"
	CodeTimeout          ErrorCode = "timeout"
)

var (
	// ErrCaptureCleared is returned by Capture when Clear interrupts it.
	ErrCaptureCleared = errors.New("capture cleared")
)

// LocationError ошибка, сообщенная провайдером
type LocationError struct {
	Code    ErrorCode
	Message string
}

func (e *LocationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("location error: %s", e.Code)
	}
	return fmt.Sprintf("location error: %s: %s", e.Code, e.Message)
}

// Hint returns an actionable message for the operator.
func (e *LocationError) Hint() string {
	switch e.Code {
	case CodePermissionDenied:
		return "allow location access in the device settings"
	case CodeUnavailable:
		return "unable to determine location, turn GPS on"
	case CodeTimeout:
		return "location request timed out, try again"
	default:
		return "unable to get GPS position"
	}
}

func codeOf(err error) (ErrorCode, bool) {
	var le *LocationError
	if errors.As(err, &le) {
		return le.Code, true
	}
	return "", false
}

// IsPermissionDenied reports whether err is a permission denial from the provider.
func IsPermissionDenied(err error) bool {
	code, ok := codeOf(err)
	return ok && code == CodePermissionDenied
}

// IsTerminal reports whether retrying the provider cannot help.
func IsTerminal(err error) bool {
	code, ok := codeOf(err)
	return ok && (code == CodePermissionDenied || code == CodeUnavailable)
}
