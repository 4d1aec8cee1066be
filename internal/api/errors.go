package api

import (
	"errors"
	"fmt"
)

// TransportError means the request never completed: connection failure,
// timeout, or an unreadable/undecodable response. The triggering state
// machine stays retryable.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError means the backend answered with success:false and a
// human-readable message. The message is safe to show as-is.
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// UserMessage extracts the text to show in the status line for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if re, ok := asRemote(err); ok {
		return re.Message
	}
	return "Network error. Please try again."
}

func asRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
