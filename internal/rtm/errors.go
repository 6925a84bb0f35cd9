package rtm

import (
	"errors"
	"fmt"
)

// Service error codes this client cares about. The full catalogue lives in
// the service documentation; anything else is passed through untyped.
const (
	CodeInvalidSignature   = 96
	CodeMissingSignature   = 97
	CodeLoginFailed        = 98
	CodeInvalidAPIKey      = 100
	CodeServiceUnavailable = 105
	CodeInvalidTimeline    = 318
)

// Error is a failure reported by the service itself ("stat": "fail"), as
// opposed to a transport failure.
type Error struct {
	Code int    `json:"code,string"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rtm: %s (code %d)", e.Msg, e.Code)
}

// IsAuthError reports whether err is a service error that means the token or
// signature is no longer accepted and the user needs to re-authenticate.
func IsAuthError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case CodeInvalidSignature, CodeMissingSignature, CodeLoginFailed, CodeInvalidAPIKey:
		return true
	}
	return false
}
