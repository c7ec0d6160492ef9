package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable wraps transport failures (DNS, refused connection, cancelled context)
	ErrUnreachable = errors.New("server unreachable")
	// ErrMalformedResponse is returned when the body is not the expected JSON shape
	ErrMalformedResponse = errors.New("unexpected server response")
)

// RemoteError is a failure reported by the endpoint itself
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// UserMessage returns the text to show the user for err. Server messages are
// shown verbatim; fallback is used when the server gave none.
func UserMessage(err error, fallback string) string {
	var remote *RemoteError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &remote):
		if remote.Message != "" {
			return remote.Message
		}
		return fallback
	case errors.Is(err, ErrMalformedResponse):
		return "Unexpected server response"
	case errors.Is(err, ErrUnreachable):
		return "Could not connect to the server"
	default:
		return fallback
	}
}
