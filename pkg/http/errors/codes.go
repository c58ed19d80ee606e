package errors

import "net/http"

// Messages carried in the error envelope.
const (
	MsgBadRequest         = "bad request"
	MsgNotFound           = "resource not found"
	MsgMethodNotAllowed   = "method not allowed"
	MsgUnprocessable      = "unprocessable"
	MsgInternalError      = "internal server error"
	MsgServiceUnavailable = "service unavailable"
)

// MessageFor returns the envelope message for an HTTP status.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusServiceUnavailable:
		return MsgServiceUnavailable
	default:
		return MsgInternalError
	}
}
