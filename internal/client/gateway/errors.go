package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired reports that a 401 could not be recovered by a token
// refresh. The session-expired notice and the login redirect have already
// been issued when a caller sees it.
var ErrSessionExpired = errors.New("session expired")

// Default user-facing messages.
const (
	MsgBadRequest      = "bad request"
	MsgUnauthorized    = "authentication required"
	MsgForbidden       = "forbidden"
	MsgNotFound        = "not found"
	MsgConflict        = "conflict"
	MsgServerError     = "server error"
	MsgUnknown         = "unknown error"
	MsgNetwork         = "check your network connection"
	MsgInvalidResponse = "invalid response from server"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusUnauthorized:        MsgUnauthorized,
	http.StatusForbidden:           MsgForbidden,
	http.StatusNotFound:            MsgNotFound,
	http.StatusConflict:            MsgConflict,
	http.StatusInternalServerError: MsgServerError,
}

// StatusMessage returns the default message for an HTTP status code.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return MsgUnknown
}

// APIError describes a failed API call. Status is 0 when no response was
// obtained; Payload holds the raw response body when one was read.
type APIError struct {
	Message string
	Status  int
	Payload []byte
	Err     error
}

func (e *APIError) Error() string {
	if e == nil {
		return "api error"
	}
	if e.Status == 0 && e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func transportError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return &APIError{Message: MsgNetwork, Status: 0, Err: err}
}
